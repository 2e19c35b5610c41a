package repository

import (
	"context"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/google/uuid"
)

// CachedSubscriberRepository реализует SubscriberRepository с кешированием.
// Любая ошибка кеша деградирует до прямого чтения из БД.
type CachedSubscriberRepository struct {
	repo  SubscriberRepository
	cache *RedisCacheRepository
	log   *logger.Logger
}

// NewCachedSubscriberRepository создает новый репозиторий с кешированием
func NewCachedSubscriberRepository(
	repo SubscriberRepository,
	cache *RedisCacheRepository,
	log *logger.Logger,
) SubscriberRepository {
	return &CachedSubscriberRepository{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetByEmail получает подписчика по email (сначала из кеша, потом из БД)
func (r *CachedSubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	cached, err := r.cache.GetCachedSubscriber(ctx, email)
	if err != nil {
		r.log.Warnw("Error getting subscriber from cache", "error", err, "email", email)
		// Продолжаем выполнение при ошибке кеша
	}
	if cached != nil {
		r.log.Debugw("Subscriber found in cache", "email", email)
		return cached, nil
	}

	sub, err := r.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := r.cache.CacheSubscriber(ctx, sub); err != nil {
		r.log.Warnw("Failed to cache subscriber after fetching", "error", err, "email", email)
	}

	return sub, nil
}

// UpdateAccess обновляет поля доступа в БД и инвалидирует кеш.
// Инвалидируются оба ключа: email из запроса и email обновленной записи —
// сверка могла нормализовать написание.
func (r *CachedSubscriberRepository) UpdateAccess(ctx context.Context, id uuid.UUID, upd domain.AccessUpdate) (*domain.Subscriber, error) {
	sub, err := r.repo.UpdateAccess(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if err := r.cache.InvalidateSubscriber(ctx, upd.Email); err != nil {
		r.log.Warnw("Failed to invalidate subscriber cache", "error", err, "email", upd.Email)
	}
	if sub.Email != upd.Email {
		if err := r.cache.InvalidateSubscriber(ctx, sub.Email); err != nil {
			r.log.Warnw("Failed to invalidate subscriber cache", "error", err, "email", sub.Email)
		}
	}

	return sub, nil
}
