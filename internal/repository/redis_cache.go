package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	subscriberKeyPrefix = "subscriber:"

	// TTL для кэша
	defaultCacheTTL = 15 * time.Minute
)

// RedisCacheRepository реализует кеширование записей подписчиков в Redis
type RedisCacheRepository struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCacheRepository создает новый экземпляр Redis репозитория
func NewRedisCacheRepository(redisAddr, redisPassword string, redisDB int, log *logger.Logger) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	// Проверяем соединение с Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", redisAddr)
	return &RedisCacheRepository{
		client: client,
		log:    log,
	}, nil
}

// Close закрывает соединение с Redis
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}

func subscriberKey(email string) string {
	return subscriberKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// CacheSubscriber кеширует запись подписчика по email
func (r *RedisCacheRepository) CacheSubscriber(ctx context.Context, sub *domain.Subscriber) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscriber: %w", err)
	}

	if err := r.client.Set(ctx, subscriberKey(sub.Email), data, defaultCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache subscriber: %w", err)
	}

	r.log.Debugw("Subscriber cached", "email", sub.Email)
	return nil
}

// GetCachedSubscriber получает запись подписчика из кеша.
// Отсутствие ключа — не ошибка, возвращается nil.
func (r *RedisCacheRepository) GetCachedSubscriber(ctx context.Context, email string) (*domain.Subscriber, error) {
	data, err := r.client.Get(ctx, subscriberKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscriber from cache: %w", err)
	}

	var sub domain.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached subscriber: %w", err)
	}

	return &sub, nil
}

// InvalidateSubscriber удаляет запись подписчика из кеша
func (r *RedisCacheRepository) InvalidateSubscriber(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, subscriberKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate subscriber cache: %w", err)
	}
	return nil
}
