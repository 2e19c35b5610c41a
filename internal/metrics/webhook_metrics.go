package metrics

import (
	"time"

	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WebhookMetrics интерфейс для метрик обработки вебхуков
type WebhookMetrics interface {
	ObserveRequest(outcome string, duration time.Duration)
	IncAuthFailure(reason string)
}

type webhookMetrics struct {
	log          *logger.Logger
	requests     *prometheus.CounterVec
	authFailures *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewWebhookMetrics создает новые метрики вебхуков
func NewWebhookMetrics(registry *prometheus.Registry, log *logger.Logger) WebhookMetrics {
	requests := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "The total number of processed webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	authFailures := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_auth_failures_total",
			Help: "The total number of rejected webhook deliveries by reason",
		},
		[]string{"reason"},
	)

	duration := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_request_duration_seconds",
			Help:    "Webhook processing duration distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	return &webhookMetrics{
		log:          log,
		requests:     requests,
		authFailures: authFailures,
		duration:     duration,
	}
}

// ObserveRequest учитывает одну обработанную доставку
func (m *webhookMetrics) ObserveRequest(outcome string, duration time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// IncAuthFailure увеличивает счетчик отклоненных доставок
func (m *webhookMetrics) IncAuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}
