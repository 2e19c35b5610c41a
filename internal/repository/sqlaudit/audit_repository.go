package sqlaudit

import (
	"context"
	"fmt"
	"time"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// SQLAuditRepository пишет журнал аудита в PostgreSQL через собственное
// соединение, отдельное от пула подписчиков: недоступность журнала не
// должна задевать основной путь обработки.
//
// Ожидаемая схема:
//
//	CREATE TABLE webhook_audit_log (
//	    id             uuid PRIMARY KEY,
//	    email          text NOT NULL DEFAULT '',
//	    event          text NOT NULL DEFAULT '',
//	    status         text NOT NULL DEFAULT '',
//	    classification text NOT NULL,
//	    outcome        text NOT NULL,
//	    note           text NOT NULL DEFAULT '',
//	    provider_ref   text NOT NULL DEFAULT '',
//	    payload        jsonb,
//	    created_at     timestamptz NOT NULL DEFAULT now()
//	);
type SQLAuditRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// auditRow строка журнала для sqlx
type auditRow struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	Event          string    `db:"event"`
	Status         string    `db:"status"`
	Classification string    `db:"classification"`
	Outcome        string    `db:"outcome"`
	Note           string    `db:"note"`
	ProviderRef    string    `db:"provider_ref"`
	Payload        []byte    `db:"payload"`
	CreatedAt      time.Time `db:"created_at"`
}

// New открывает соединение с хранилищем журнала.
// Open не устанавливает соединение сразу: если хранилище недоступно,
// это выяснится при первой записи и будет проглочено сервисом.
func New(dsn string, log *logger.Logger) (*SQLAuditRepository, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(1 * time.Hour)

	return &SQLAuditRepository{db: db, log: log}, nil
}

// Ping проверяет доступность хранилища журнала (только для диагностики при старте)
func (r *SQLAuditRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close закрывает соединение с хранилищем журнала
func (r *SQLAuditRepository) Close() error {
	return r.db.Close()
}

// Append добавляет одну строку в журнал аудита
func (r *SQLAuditRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO webhook_audit_log (id, email, event, status, classification, outcome, note, provider_ref, payload, created_at)
		VALUES (:id, :email, :event, :status, :classification, :outcome, :note, :provider_ref, :payload, :created_at)
	`

	payload := entry.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	row := auditRow{
		ID:             entry.ID.String(),
		Email:          entry.Email,
		Event:          entry.Event,
		Status:         entry.Status,
		Classification: entry.Classification,
		Outcome:        entry.Outcome,
		Note:           entry.Note,
		ProviderRef:    entry.ProviderRef,
		Payload:        payload,
		CreatedAt:      entry.CreatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}
