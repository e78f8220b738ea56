package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса (config.toml)
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Twilio    TwilioConfig    `toml:"twilio"`
	Reminders RemindersConfig `toml:"reminders"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort     int `toml:"http_port"`
	ReadTimeout  int `toml:"read_timeout"`  // секунды
	WriteTimeout int `toml:"write_timeout"` // секунды
	IdleTimeout  int `toml:"idle_timeout"`  // секунды

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

// DSN собирает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки подключения к Redis (сессии клиентов)
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig настройки аутентификации management-эндпоинтов
type AuthConfig struct {
	AdminToken string `toml:"admin_token"`
}

// OpenAIConfig настройки клиента chat completions
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// TwilioConfig настройки исходящих WhatsApp-сообщений
type TwilioConfig struct {
	AccountSID   string `toml:"account_sid"`
	AuthToken    string `toml:"auth_token"`
	WhatsAppFrom string `toml:"whatsapp_from"`
	BaseURL      string `toml:"base_url"`
	Timeout      int    `toml:"timeout"` // секунды
}

// RemindersConfig настройки диспетчера напоминаний
type RemindersConfig struct {
	Enabled     bool   `toml:"enabled"`
	LeadMinutes int    `toml:"lead_minutes"` // за сколько минут до записи напоминать
	Timezone    string `toml:"timezone"`
	CronSpec    string `toml:"cron_spec"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Redis.SessionTTLHours == 0 {
		cfg.Redis.SessionTTLHours = 24
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "smc-chatbot-service"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 30
	}
	if cfg.Twilio.BaseURL == "" {
		cfg.Twilio.BaseURL = "https://api.twilio.com"
	}
	if cfg.Twilio.Timeout == 0 {
		cfg.Twilio.Timeout = 10
	}
	if cfg.Reminders.LeadMinutes == 0 {
		cfg.Reminders.LeadMinutes = 60
	}
	if cfg.Reminders.Timezone == "" {
		cfg.Reminders.Timezone = "UTC"
	}
	if cfg.Reminders.CronSpec == "" {
		cfg.Reminders.CronSpec = "* * * * *"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("config: openai.api_key is required")
	}
	return nil
}
