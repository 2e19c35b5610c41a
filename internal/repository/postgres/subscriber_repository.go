package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/internal/repository"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSubscriberRepository реализация репозитория подписчиков через PostgreSQL.
//
// Ожидаемая схема:
//
//	CREATE TABLE subscribers (
//	    id                  uuid PRIMARY KEY,
//	    email               text NOT NULL UNIQUE,
//	    access_origin       text NOT NULL DEFAULT 'inactive',
//	    access_status       text NOT NULL DEFAULT 'inactive',
//	    subscription_status text NOT NULL DEFAULT 'inactive',
//	    access_until        timestamptz,
//	    created_at          timestamptz NOT NULL DEFAULT now(),
//	    updated_at          timestamptz NOT NULL DEFAULT now()
//	);
type PostgresSubscriberRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresSubscriberRepository создает новый репозиторий подписчиков через PostgreSQL
func NewPostgresSubscriberRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{
		db:  db,
		log: log,
	}
}

// GetByEmail возвращает подписчика по email без учета регистра
func (r *PostgresSubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
		SELECT id, email, access_origin, access_status, subscription_status, access_until, created_at, updated_at
		FROM subscribers
		WHERE lower(email) = lower($1)
	`

	var sub domain.Subscriber
	err := r.db.QueryRow(ctx, query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.AccessOrigin,
		&sub.AccessStatus,
		&sub.SubscriptionStatus,
		&sub.AccessUntil,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return &sub, nil
}

// UpdateAccess перезаписывает поля доступа одной записи, ключ — id подписчика
func (r *PostgresSubscriberRepository) UpdateAccess(ctx context.Context, id uuid.UUID, upd domain.AccessUpdate) (*domain.Subscriber, error) {
	query := `
		UPDATE subscribers
		SET email = $1,
		    access_origin = $2,
		    access_status = $3,
		    subscription_status = $4,
		    access_until = $5,
		    updated_at = now()
		WHERE id = $6
		RETURNING id, email, access_origin, access_status, subscription_status, access_until, created_at, updated_at
	`

	var sub domain.Subscriber
	err := r.db.QueryRow(
		ctx,
		query,
		upd.Email,
		upd.AccessOrigin,
		upd.AccessStatus,
		upd.SubscriptionStatus,
		upd.AccessUntil,
		id,
	).Scan(
		&sub.ID,
		&sub.Email,
		&sub.AccessOrigin,
		&sub.AccessStatus,
		&sub.SubscriptionStatus,
		&sub.AccessUntil,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update subscriber access: %w", err)
	}

	r.log.Debugw("Subscriber access updated", "subscriberID", sub.ID, "origin", sub.AccessOrigin)
	return &sub, nil
}
