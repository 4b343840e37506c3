package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config содержит настройки приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Indicators IndicatorsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" env-default:"postgres"`
	Host         string `env:"DB_HOST" env-default:"localhost"`
	Port         string `env:"DB_PORT" env-default:"5432"`
	User         string `env:"DB_USER" env-default:"postgres"`
	Password     string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName       string `env:"DB_NAME" env-default:"gestion"`
	SSLMode      string `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath   string `env:"DB_SQLITE_PATH" env-default:"gestion.db"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"4"`
}

// MinJWTSecretLen - минимальная длина ключа подписи сессий (HS256)
const MinJWTSecretLen = 32

// AuthConfig - настройки сессий администраторов
type AuthConfig struct {
	JWTSecret  string        `env:"AUTH_JWT_SECRET"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" env-default:"8h"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

// IndicatorsConfig - настройки внешнего API экономических индикаторов
type IndicatorsConfig struct {
	URL          string        `env:"INDICATORS_URL" env-default:"https://mindicador.cl/api"`
	Timeout      time.Duration `env:"INDICATORS_TIMEOUT" env-default:"10s"`
	HistoryLimit int           `env:"INDICATORS_HISTORY_LIMIT" env-default:"50"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	// Секрет подписи обязателен, значения по умолчанию нет
	if len(cfg.Auth.JWTSecret) < MinJWTSecretLen {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set and at least %d bytes long", MinJWTSecretLen)
	}

	return &cfg, nil
}
