package webhook

import (
	"strings"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
)

// Таблицы путей извлечения. Порядок имеет значение: побеждает первое
// совпадение. Таблицы, а не цепочки условий, чтобы набор путей можно
// было проверять независимо.
var (
	emailPaths = [][]string{
		{"customer", "email"},
		{"Customer", "email"},
		{"buyer", "email"},
		{"email"},
		{"data", "customer", "email"},
		{"data", "buyer", "email"},
		{"data", "email"},
	}

	eventPaths = [][]string{
		{"event"},
		{"type"},
		{"event_type"},
		{"webhook_event_type"},
		{"data", "event"},
		{"data", "type"},
	}

	statusPaths = [][]string{
		{"status"},
		{"order_status"},
		{"subscription_status"},
		{"data", "status"},
		{"data", "order_status"},
	}

	// Необязательный идентификатор доставки у провайдера; используется
	// только как пометка в журнале аудита, дедупликация не выполняется.
	refPaths = [][]string{
		{"order_id"},
		{"order_ref"},
		{"ref"},
		{"id"},
		{"data", "order_id"},
		{"data", "id"},
	}
)

// Два независимых набора ключевых слов; payload может не совпасть ни с
// одним или, при противоречивом содержимом, с обоими сразу.
var (
	paidKeywords = []string{
		"paid", "approved", "active", "renewed", "completed", "success",
		"pago", "aprovad", "renovad", "ativo", "ativa", "conclu", "sucesso",
	}

	blockedKeywords = []string{
		"canceled", "cancelled", "refunded", "chargeback", "past_due",
		"expired", "refused", "failed",
		"cancelad", "reembols", "estorn", "atrasad", "expirad", "recusad", "falh",
	}
)

// Normalize извлекает из разобранного payload email подписчика, имя
// события и статус провайдера и классифицирует событие.
// Пустой email — допустимый результат, не ошибка.
func Normalize(payload map[string]any) domain.NormalizedEvent {
	email := strings.ToLower(strings.TrimSpace(extract(payload, emailPaths)))
	event := extract(payload, eventPaths)
	status := extract(payload, statusPaths)

	haystack := strings.ToLower(event + " " + status)

	return domain.NormalizedEvent{
		Email:       email,
		Event:       event,
		Status:      status,
		Paid:        containsAny(haystack, paidKeywords),
		Blocked:     containsAny(haystack, blockedKeywords),
		ProviderRef: extract(payload, refPaths),
	}
}

// extract возвращает первое непустое строковое значение по таблице путей
func extract(payload map[string]any, paths [][]string) string {
	for _, path := range paths {
		if v, ok := lookupPath(payload, path); ok && v != "" {
			return v
		}
	}
	return ""
}

// lookupPath спускается по вложенным объектам и возвращает строку в листе
func lookupPath(m map[string]any, path []string) (string, bool) {
	current := m
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return "", false
		}
		if i == len(path)-1 {
			s, ok := value.(string)
			return s, ok
		}
		current, ok = value.(map[string]any)
		if !ok {
			return "", false
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
