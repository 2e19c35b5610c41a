package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_EmailPaths(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			name:    "customer email",
			payload: map[string]any{"customer": map[string]any{"email": "a@b.com"}},
			want:    "a@b.com",
		},
		{
			name:    "capitalized Customer email",
			payload: map[string]any{"Customer": map[string]any{"email": "a@b.com"}},
			want:    "a@b.com",
		},
		{
			name:    "buyer email",
			payload: map[string]any{"buyer": map[string]any{"email": "buyer@b.com"}},
			want:    "buyer@b.com",
		},
		{
			name:    "top level email",
			payload: map[string]any{"email": "top@b.com"},
			want:    "top@b.com",
		},
		{
			name:    "nested under data",
			payload: map[string]any{"data": map[string]any{"customer": map[string]any{"email": "d@b.com"}}},
			want:    "d@b.com",
		},
		{
			name:    "lowercased and trimmed",
			payload: map[string]any{"email": "  USER@Example.COM  "},
			want:    "user@example.com",
		},
		{
			name: "customer path wins over top level",
			payload: map[string]any{
				"customer": map[string]any{"email": "first@b.com"},
				"email":    "second@b.com",
			},
			want: "first@b.com",
		},
		{
			name:    "missing email is empty, not an error",
			payload: map[string]any{"event": "compra aprovada"},
			want:    "",
		},
		{
			name:    "non-string email ignored",
			payload: map[string]any{"email": 42.0},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.payload).Email)
		})
	}
}

func TestNormalize_EventAndStatusPaths(t *testing.T) {
	evt := Normalize(map[string]any{
		"type":   "order.updated",
		"event":  "order_approved",
		"status": "paid",
	})
	// event побеждает type
	assert.Equal(t, "order_approved", evt.Event)
	assert.Equal(t, "paid", evt.Status)

	evt = Normalize(map[string]any{
		"data": map[string]any{"event": "assinatura renovada", "status": "ativa"},
	})
	assert.Equal(t, "assinatura renovada", evt.Event)
	assert.Equal(t, "ativa", evt.Status)
}

func TestNormalize_Classification(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		paid    bool
		blocked bool
	}{
		{
			name:    "portuguese approved purchase",
			payload: map[string]any{"event": "compra aprovada"},
			paid:    true,
		},
		{
			name:    "english renewed",
			payload: map[string]any{"event": "subscription.renewed"},
			paid:    true,
		},
		{
			name:    "status paid",
			payload: map[string]any{"status": "paid"},
			paid:    true,
		},
		{
			name:    "portuguese canceled status",
			payload: map[string]any{"status": "cancelado"},
			blocked: true,
		},
		{
			name:    "chargeback",
			payload: map[string]any{"event": "chargeback.created"},
			blocked: true,
		},
		{
			name:    "past due",
			payload: map[string]any{"status": "past_due"},
			blocked: true,
		},
		{
			name:    "refund in portuguese",
			payload: map[string]any{"event": "compra reembolsada"},
			blocked: true,
		},
		{
			name:    "unclassifiable event",
			payload: map[string]any{"event": "pix.generated"},
		},
		{
			name:    "empty payload",
			payload: map[string]any{},
		},
		{
			// Наборы независимы: противоречивый payload может совпасть с обоими
			name:    "contradictory payload matches both",
			payload: map[string]any{"event": "approved", "status": "refunded"},
			paid:    true,
			blocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := Normalize(tt.payload)
			assert.Equal(t, tt.paid, evt.Paid, "paid")
			assert.Equal(t, tt.blocked, evt.Blocked, "blocked")
		})
	}
}

func TestNormalize_ClassificationPrecedence(t *testing.T) {
	evt := Normalize(map[string]any{"event": "approved", "status": "refunded"})
	// Когда нужен один ответ, paid имеет приоритет
	assert.Equal(t, "paid", evt.Classification())

	evt = Normalize(map[string]any{"status": "cancelado"})
	assert.Equal(t, "blocked", evt.Classification())

	evt = Normalize(map[string]any{})
	assert.Equal(t, "ignored", evt.Classification())
	assert.False(t, evt.Actionable())
}

func TestNormalize_ProviderRef(t *testing.T) {
	evt := Normalize(map[string]any{"order_id": "ord_123", "id": "evt_1"})
	assert.Equal(t, "ord_123", evt.ProviderRef)

	evt = Normalize(map[string]any{"data": map[string]any{"id": "evt_9"}})
	assert.Equal(t, "evt_9", evt.ProviderRef)

	evt = Normalize(map[string]any{})
	assert.Equal(t, "", evt.ProviderRef)
}
