package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhoini/subscriber-access-service/config"
	"github.com/Dhoini/subscriber-access-service/internal/api/rest"
	"github.com/Dhoini/subscriber-access-service/internal/api/rest/handlers"
	"github.com/Dhoini/subscriber-access-service/internal/metrics"
	"github.com/Dhoini/subscriber-access-service/internal/repository"
	"github.com/Dhoini/subscriber-access-service/internal/repository/postgres"
	"github.com/Dhoini/subscriber-access-service/internal/repository/sqlaudit"
	"github.com/Dhoini/subscriber-access-service/internal/service"
	"github.com/Dhoini/subscriber-access-service/internal/webhook"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Загружаем переменные окружения; отсутствие .env не ошибка
	_ = godotenv.Load()

	// Загрузка конфигурации; без DSN хранилища сервис не стартует
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.INFO)
		fallback.Fatal("Failed to load configuration: %v", err)
	}

	log := logger.New(logger.ParseLevel(cfg.Logging.Level))
	defer func() { _ = log.Sync() }()

	log.Infow("Subscriber access service starting up...")

	if !cfg.HasWebhookAuth() {
		// Не фатально, но каждый запрос будет отклонен с 401
		log.Warnw("Neither WEBHOOK_SIGNING_SECRET nor WEBHOOK_FIXED_TOKEN is set, all deliveries will be rejected")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Prometheus
	promRegistry := prometheus.NewRegistry()
	webhookMetrics := metrics.NewWebhookMetrics(promRegistry, log)

	// Подключение к хранилищу подписчиков
	dbPool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	var subsRepo repository.SubscriberRepository = postgres.NewPostgresSubscriberRepository(dbPool, log)

	// Кеш подписчиков опционален; без Redis читаем напрямую из БД
	if cfg.Redis.Addr != "" {
		redisCache, err := repository.NewRedisCacheRepository(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Warnw("Failed to initialize Redis cache, continuing without caching", "error", err)
		} else {
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Errorw("Error closing Redis connection", "error", err)
				}
			}()
			subsRepo = repository.NewCachedSubscriberRepository(subsRepo, redisCache, log)
			log.Infow("Redis cache initialized successfully")
		}
	}

	// Журнал аудита живет на собственном соединении: его недоступность
	// не должна ронять обработку вебхуков
	auditRepo, err := sqlaudit.New(cfg.Audit.DSN, log)
	if err != nil {
		log.Fatal("Failed to open audit store: %v", err)
	}
	defer func() {
		if err := auditRepo.Close(); err != nil {
			log.Errorw("Error closing audit store", "error", err)
		}
	}()
	if err := auditRepo.Ping(ctx); err != nil {
		log.Warnw("Audit store is unreachable, entries will be dropped until it recovers", "error", err)
	}

	// Сборка ядра
	reconciler := service.NewReconcilerService(subsRepo, auditRepo, log)
	authenticator := webhook.NewAuthenticator(cfg.Webhook.SigningSecret, cfg.Webhook.FixedToken, cfg.Webhook.Debug, log)
	webhookHandler := handlers.NewWebhookHandler(authenticator, reconciler, webhookMetrics, log)

	// Установка режима Gin
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.SetupRouter(webhookHandler, log, promRegistry)
	server := rest.NewServer(router, cfg, log)

	// Запуск сервера в горутине
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
