package repository

import (
	"context"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/google/uuid"
)

// SubscriberRepository интерфейс репозитория подписчиков.
// Хранилище принадлежит внешней системе; ядро читает запись по email
// и перезаписывает только поля доступа.
type SubscriberRepository interface {
	// GetByEmail возвращает подписчика по email (без учета регистра).
	// Если записи нет, возвращает ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)

	// UpdateAccess перезаписывает поля доступа одной записи по id
	// и возвращает обновленную запись.
	UpdateAccess(ctx context.Context, id uuid.UUID, upd domain.AccessUpdate) (*domain.Subscriber, error)
}
