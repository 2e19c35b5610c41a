package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/internal/metrics"
	"github.com/Dhoini/subscriber-access-service/internal/service"
	"github.com/Dhoini/subscriber-access-service/internal/webhook"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/Dhoini/subscriber-access-service/pkg/res"
	"github.com/gin-gonic/gin"
)

// WebhookHandler обрабатывает входящие вебхуки платежного провайдера
type WebhookHandler struct {
	auth       *webhook.Authenticator
	reconciler *service.ReconcilerService
	metrics    metrics.WebhookMetrics
	log        *logger.Logger
}

// NewWebhookHandler создает новый обработчик вебхуков
func NewWebhookHandler(
	auth *webhook.Authenticator,
	reconciler *service.ReconcilerService,
	m metrics.WebhookMetrics,
	log *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		auth:       auth,
		reconciler: reconciler,
		metrics:    m,
		log:        log,
	}
}

// Handle принимает доставку вебхука: аутентификация, нормализация, сверка.
//
// Не-200 возвращается только при подлинной невозможности завершить сверку
// (аутентификация, конфигурация, слой данных). Все исходы "нечего делать"
// отвечают 200, чтобы провайдер не ретраил доставку бесконечно.
func (h *WebhookHandler) Handle(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	// Тело читаем один раз: точные байты нужны для проверки подписи
	raw, err := webhook.ReadRequest(c.Writer, c.Request)
	if err != nil {
		h.log.Errorw("Failed to read webhook request body", "error", err)
		res.JsonErrorResponse(c.Writer, "Cannot read request body", http.StatusBadRequest, h.log)
		h.observe("bad_request", start)
		return
	}

	if err := h.auth.Authenticate(raw); err != nil {
		reason := authFailureReason(err)
		h.log.Warnw("Webhook authentication rejected", "reason", reason, "ip", c.ClientIP())
		h.metrics.IncAuthFailure(reason)
		// Ошибка конфигурации и несовпадение секрета неразличимы для вызывающей стороны
		res.JsonErrorResponse(c.Writer, "Unauthorized", http.StatusUnauthorized, h.log)
		h.observe("unauthorized", start)
		return
	}

	evt := webhook.Normalize(raw.JSON)

	result, err := h.reconciler.Process(ctx, evt, raw.Body)
	if err != nil {
		h.log.Errorw("Webhook reconciliation failed",
			"error", err, "email", evt.Email, "event", evt.Event)
		res.JsonErrorResponse(c.Writer, "Internal server error", http.StatusInternalServerError, h.log)
		h.observe("error", start)
		return
	}

	switch result.Outcome {
	case domain.OutcomeIgnored:
		if result.Note == domain.NoteMissingEmail {
			c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true, "reason": domain.NoteMissingEmail})
		} else {
			c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true, "norm": evt})
		}
	case domain.OutcomeNotFound:
		c.JSON(http.StatusOK, gin.H{"ok": true, "warning": domain.NoteProfileNotFound, "norm": evt})
	case domain.OutcomeSkipped:
		c.JSON(http.StatusOK, gin.H{"ok": true, "skipped": domain.NoteManualAccessProtected, "norm": evt})
	case domain.OutcomeUpdated:
		c.JSON(http.StatusOK, gin.H{"ok": true, "updated": result.Subscriber, "norm": evt})
	default:
		// Неизвестный исход — дефект сверки
		h.log.Errorw("Unknown reconcile outcome", "outcome", result.Outcome)
		res.JsonErrorResponse(c.Writer, "Internal server error", http.StatusInternalServerError, h.log)
	}

	h.observe(string(result.Outcome), start)
}

// Options отвечает на CORS preflight пустым 200
func (h *WebhookHandler) Options(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h *WebhookHandler) observe(outcome string, start time.Time) {
	h.metrics.ObserveRequest(outcome, time.Since(start))
}

func authFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "signature_mismatch"
	case errors.Is(err, domain.ErrInvalidToken):
		return "token_mismatch"
	default:
		return "unknown"
	}
}
