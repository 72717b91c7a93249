package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	MemberService MemberServiceConfig `toml:"member_service"`
	NotifyService NotifyServiceConfig `toml:"notify_service"`
	Booking       BookingConfig       `toml:"booking"`
	Reminder      ReminderConfig      `toml:"reminder"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`  // пустая строка - stdout
	Level string `toml:"level"` // debug, info, warn, error
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MemberServiceConfig настройки клиента MemberService
type MemberServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// NotifyServiceConfig настройки клиента NotifyService
type NotifyServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// TokenSecret HS256-секрет бронировочных токенов
	TokenSecret string `toml:"token_secret"`

	// TokenTTLMinutes срок жизни подписи токена
	TokenTTLMinutes int `toml:"token_ttl_minutes"`

	// Timezone операционная зона залов, например "Europe/Moscow"
	Timezone string `toml:"timezone"`

	// HardCapacityLimit true - отклонять брони в заполненный слот,
	// false - принимать с пометкой переполнения и уведомлением владельца
	HardCapacityLimit bool `toml:"hard_capacity_limit"`
}

// ReminderConfig настройки ежедневной рассылки напоминаний
type ReminderConfig struct {
	Enabled bool `toml:"enabled"`

	// Hour час локального времени запуска рассылки (0-23)
	Hour int `toml:"hour"`

	// WindowDays окно анализа привычек участника
	WindowDays int `toml:"window_days"`

	// AutoBook автоматически бронировать привычный слот
	AutoBook bool `toml:"auto_book"`

	// LinkBase база публичной ссылки бронирования
	LinkBase string `toml:"link_base"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Booking.TokenSecret == "" {
		return fmt.Errorf("booking.token_secret is required")
	}
	if c.Booking.TokenTTLMinutes <= 0 {
		return fmt.Errorf("booking.token_ttl_minutes must be positive")
	}
	if c.Reminder.Enabled && (c.Reminder.Hour < 0 || c.Reminder.Hour > 23) {
		return fmt.Errorf("reminder.hour must be between 0 and 23")
	}
	return nil
}
