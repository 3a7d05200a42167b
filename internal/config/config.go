package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Scheduler реализации отложенных уведомлений
const (
	SchedulerTimer = "timer" // in-process таймеры
	SchedulerAsynq = "asynq" // очередь asynq в Redis
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Notifier NotifierConfig `toml:"notifier"`
	Redis    RedisConfig    `toml:"redis"`
	Telegram TelegramConfig `toml:"telegram"`
	Admin    AdminConfig    `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения в формате URL (подходит и для lib/pq, и для golang-migrate)
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
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

// ScheduleConfig рабочее окно мойки; читается один раз при старте
type ScheduleConfig struct {
	WorkStartHour int `toml:"work_start_hour"`
	WorkEndHour   int `toml:"work_end_hour"`
	BufferMinutes int `toml:"buffer_minutes"`
}

// ToDomain конвертирует в domain.Schedule
func (s ScheduleConfig) ToDomain() domain.Schedule {
	return domain.Schedule{
		WorkStartHour: s.WorkStartHour,
		WorkEndHour:   s.WorkEndHour,
		BufferMinutes: s.BufferMinutes,
	}
}

type NotifierConfig struct {
	Scheduler   string `toml:"scheduler"`   // timer | asynq
	Concurrency int    `toml:"concurrency"` // воркеры asynq
	Queue       string `toml:"queue"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
	APIURL   string `toml:"api_url"`
	Timeout  int    `toml:"timeout"` // секунды
}

type AdminConfig struct {
	MainAdminID int64 `toml:"main_admin_id"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию
// и проверяет их
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "carwash_service",
		},
		Schedule: ScheduleConfig{
			WorkStartHour: domain.DefaultWorkStartHour,
			WorkEndHour:   domain.DefaultWorkEndHour,
			BufferMinutes: domain.DefaultBufferMinutes,
		},
		Notifier: NotifierConfig{
			Scheduler:   SchedulerTimer,
			Concurrency: 5,
			Queue:       "notifications",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Telegram: TelegramConfig{
			APIURL:  "https://api.telegram.org",
			Timeout: 10,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	s := c.Schedule
	if s.WorkStartHour < 0 || s.WorkEndHour > 24 || s.WorkStartHour >= s.WorkEndHour {
		return fmt.Errorf("%w: schedule window %d-%d", ErrInvalidConfig, s.WorkStartHour, s.WorkEndHour)
	}
	if s.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer_minutes must not be negative", ErrInvalidConfig)
	}

	switch c.Notifier.Scheduler {
	case SchedulerTimer:
	case SchedulerAsynq:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for asynq scheduler", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifier.scheduler %q", ErrInvalidConfig, c.Notifier.Scheduler)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}

	return nil
}
