package domain

import "errors"

// Application errors
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrAuthNotConfigured не задан ни секрет подписи, ни фиксированный токен
	ErrAuthNotConfigured = errors.New("webhook auth is not configured")

	// ErrInvalidSignature подпись тела запроса не совпала
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidToken фиксированный токен не совпал или отсутствует
	ErrInvalidToken = errors.New("invalid webhook token")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
