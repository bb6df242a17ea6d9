package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml.
// Секреты (пароль БД, пароль Redis) переопределяются переменными окружения.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки канала уведомлений о событиях бронирований
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
	Timeout  int    `toml:"timeout"` // секунды на publish
}

// BookingConfig политика обработки бронирований
type BookingConfig struct {
	// AutoConfirmAIOnly ограничивает автоподтверждение бронированиями
	// от AI ассистента
	AutoConfirmAIOnly bool `toml:"auto_confirm_ai_only"`

	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

// Load читает конфигурацию из toml файла поверх значений по умолчанию
// и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// DSN собирает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "calendar_service",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-calendar-service",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
			Channel: "booking-events",
			Timeout: 2,
		},
		Booking: BookingConfig{
			AutoConfirmAIOnly: true,
			RateLimitRPS:      20,
			RateLimitBurst:    40,
		},
	}
}

// applyEnvOverrides переопределяет секреты и адреса из окружения
func (c *Config) applyEnvOverrides() {
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvAsInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
