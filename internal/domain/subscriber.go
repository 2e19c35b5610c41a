package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessOrigin источник доступа подписчика
type AccessOrigin string

const (
	// AccessOriginAdmin доступ выдан администратором вручную
	AccessOriginAdmin AccessOrigin = "admin"

	// AccessOriginPromo промо-доступ, выдан вручную
	AccessOriginPromo AccessOrigin = "promo"

	// AccessOriginPaid доступ получен через оплату
	AccessOriginPaid AccessOrigin = "paid"

	// AccessOriginInactive доступ отозван или не выдавался
	AccessOriginInactive AccessOrigin = "inactive"
)

// AccessStatus статус доступа или подписки
type AccessStatus string

const (
	AccessStatusActive   AccessStatus = "active"
	AccessStatusInactive AccessStatus = "inactive"
)

// Subscriber представляет запись подписчика во внешнем хранилище.
// Ядро мутирует только поля, управляемые платежными событиями.
type Subscriber struct {
	ID                 uuid.UUID    `json:"id"`
	Email              string       `json:"email"`
	AccessOrigin       AccessOrigin `json:"access_origin"`
	AccessStatus       AccessStatus `json:"access_status"`
	SubscriptionStatus AccessStatus `json:"subscription_status"`
	AccessUntil        *time.Time   `json:"access_until"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// ManuallyGranted сообщает, что доступ выдан вручную (admin/promo).
// Такие записи ядро никогда не изменяет.
func (s *Subscriber) ManuallyGranted() bool {
	return s.AccessOrigin == AccessOriginAdmin || s.AccessOrigin == AccessOriginPromo
}

// AccessUpdate набор полей, перезаписываемых при сверке платежного события
type AccessUpdate struct {
	Email              string
	AccessOrigin       AccessOrigin
	AccessStatus       AccessStatus
	SubscriptionStatus AccessStatus
	AccessUntil        *time.Time
}
