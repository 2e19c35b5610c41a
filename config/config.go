package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config структура конфигурации приложения.
// Строится один раз при старте процесса и передается по ссылке;
// ядро никогда не читает переменные окружения напрямую.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Audit    AuditConfig
	Redis    RedisConfig
	Webhook  WebhookConfig
	Logging  LoggingConfig
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	Port            string `validate:"required"`
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig конфигурация хранилища подписчиков
type DatabaseConfig struct {
	DSN string `validate:"required"`
}

// AuditConfig конфигурация хранилища журнала аудита
type AuditConfig struct {
	DSN string `validate:"required"`
}

// RedisConfig конфигурация кеша. Пустой Addr отключает кеширование.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// WebhookConfig секреты аутентификации вебхука.
// Оба поля опциональны, но если не задано ни одно — каждый запрос
// будет отклонен с 401.
type WebhookConfig struct {
	SigningSecret string
	FixedToken    string
	Debug         bool
}

// LoggingConfig конфигурация логгера
type LoggingConfig struct {
	Level string
}

// HasWebhookAuth сообщает, настроен ли хотя бы один механизм аутентификации
func (c *Config) HasWebhookAuth() bool {
	return c.Webhook.SigningSecret != "" || c.Webhook.FixedToken != ""
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("DATABASE_URL"),
		},
		Audit: AuditConfig{
			DSN: v.GetString("AUDIT_DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Webhook: WebhookConfig{
			SigningSecret: v.GetString("WEBHOOK_SIGNING_SECRET"),
			FixedToken:    v.GetString("WEBHOOK_FIXED_TOKEN"),
			Debug:         v.GetBool("WEBHOOK_DEBUG"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// Журнал по умолчанию живет в той же базе, что и подписчики
	if cfg.Audit.DSN == "" {
		cfg.Audit.DSN = cfg.Database.DSN
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
