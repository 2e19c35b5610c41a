package rest

import (
	"net/http"

	"github.com/Dhoini/subscriber-access-service/internal/api/rest/handlers"
	"github.com/Dhoini/subscriber-access-service/internal/api/rest/middleware"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(webhookHandler *handlers.WebhookHandler, log *logger.Logger, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(gin.Recovery())

	// Контракт вебхука: не-POST методы получают 405 с JSON-телом
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "Method not allowed"})
	})

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", handlers.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Вебхуки на корневом уровне роутера
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/kiwify", webhookHandler.Handle)
		webhooks.OPTIONS("/kiwify", webhookHandler.Options)
	}

	return r
}
