package domain

import (
	"time"

	"github.com/google/uuid"
)

// NormalizedEvent каноническое представление вебхук-события провайдера
type NormalizedEvent struct {
	Email       string `json:"email"`
	Event       string `json:"event"`
	Status      string `json:"status"`
	Paid        bool   `json:"paid"`
	Blocked     bool   `json:"blocked"`
	ProviderRef string `json:"provider_ref,omitempty"` // ID события/заказа у провайдера, если он его прислал
}

// Actionable сообщает, требует ли событие изменения состояния подписчика
func (e NormalizedEvent) Actionable() bool {
	return e.Paid || e.Blocked
}

// Classification возвращает итоговую классификацию события.
// При конфликте ключевых слов "paid" имеет приоритет.
func (e NormalizedEvent) Classification() string {
	switch {
	case e.Paid:
		return "paid"
	case e.Blocked:
		return "blocked"
	default:
		return "ignored"
	}
}

// ReconcileOutcome исход сверки события с записью подписчика
type ReconcileOutcome string

const (
	// OutcomeUpdated запись подписчика обновлена
	OutcomeUpdated ReconcileOutcome = "updated"

	// OutcomeNotFound подписчик с таким email не найден; запись не создается
	OutcomeNotFound ReconcileOutcome = "not_found"

	// OutcomeSkipped ручной доступ (admin/promo) защищен от перезаписи
	OutcomeSkipped ReconcileOutcome = "skipped"

	// OutcomeIgnored событие не требует изменения состояния
	OutcomeIgnored ReconcileOutcome = "ignored"
)

// ReconcileResult результат обработки вебхук-события
type ReconcileResult struct {
	Outcome    ReconcileOutcome
	Note       string      // причина для ignored/skipped/not_found исходов
	Subscriber *Subscriber // обновленная запись при OutcomeUpdated
}

// AuditEntry строка журнала аудита; append-only, ядро её никогда не читает
type AuditEntry struct {
	ID             uuid.UUID
	Email          string
	Event          string
	Status         string
	Classification string
	Outcome        string
	Note           string
	ProviderRef    string
	Payload        []byte
	CreatedAt      time.Time
}

// Причины, попадающие в note журнала аудита и в ответ провайдеру.
const (
	NoteMissingEmail          = "missing_email_in_payload"
	NoteEventNotActionable    = "event_not_actionable"
	NoteProfileNotFound       = "profile_not_found"
	NoteManualAccessProtected = "manual_access_protected"
)
