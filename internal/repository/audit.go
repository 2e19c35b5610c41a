package repository

import (
	"context"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
)

// AuditRepository append-only журнал обработанных вебхук-событий.
// Ядро только пишет в него; ошибки записи не влияют на основной исход.
type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}
