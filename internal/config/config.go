package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	PMS      PMSConfig      `toml:"pms"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Capacity CapacityConfig `toml:"capacity"`
	Admin    AdminConfig    `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
	MaxStayNights   int `toml:"max_stay_nights"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PMSConfig параметры подключения к PMS
type PMSConfig struct {
	BaseURL      string `toml:"base_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Timeout      int    `toml:"timeout"` // секунды, общий для токена и отчета
}

// DatabaseConfig Postgres для таблицы переопределений вместимости
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig кэш отчетов о доступности
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
	Prefix   string `toml:"prefix"`
}

// CapacityRule правило эвристики вместимости
type CapacityRule struct {
	Capacity     int      `toml:"capacity"`
	CodeContains []string `toml:"code_contains"`
	NameContains []string `toml:"name_contains"`
}

type CapacityConfig struct {
	DefaultCapacity  int            `toml:"default_capacity"`
	OverrideCacheTTL int            `toml:"override_cache_ttl"` // секунды
	Rules            []CapacityRule `toml:"rules"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает конфигурацию из TOML-файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"PMS_BASE_URL":      &c.PMS.BaseURL,
		"PMS_CLIENT_ID":     &c.PMS.ClientID,
		"PMS_CLIENT_SECRET": &c.PMS.ClientSecret,
		"DB_PASSWORD":       &c.Database.Password,
		"REDIS_PASSWORD":    &c.Redis.Password,
		"ADMIN_TOKEN":       &c.Admin.Token,
	}

	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Server.MaxStayNights == 0 {
		c.Server.MaxStayNights = 60
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "room_availability"
	}

	c.PMS.BaseURL = strings.TrimRight(c.PMS.BaseURL, "/")
	if c.PMS.Timeout == 0 {
		c.PMS.Timeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 5
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 2
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 30
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "pms:availability"
	}

	if c.Capacity.DefaultCapacity == 0 {
		c.Capacity.DefaultCapacity = 2
	}
	if c.Capacity.OverrideCacheTTL == 0 {
		c.Capacity.OverrideCacheTTL = 60
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.PMS.BaseURL == "" {
		return fmt.Errorf("%w: pms.base_url is required", ErrInvalidConfig)
	}
	if c.PMS.ClientID == "" || c.PMS.ClientSecret == "" {
		return fmt.Errorf("%w: pms client_id and client_secret are required", ErrInvalidConfig)
	}
	if c.PMS.Timeout < 0 {
		return fmt.Errorf("%w: pms.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.MaxStayNights < 0 {
		return fmt.Errorf("%w: server.max_stay_nights must be positive", ErrInvalidConfig)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("%w: redis.ttl must not be negative", ErrInvalidConfig)
	}
	if c.Capacity.OverrideCacheTTL < 0 {
		return fmt.Errorf("%w: capacity.override_cache_ttl must not be negative", ErrInvalidConfig)
	}
	if c.Capacity.DefaultCapacity < 1 || c.Capacity.DefaultCapacity > 5 {
		return fmt.Errorf("%w: capacity.default_capacity must be in 1..5", ErrInvalidConfig)
	}
	for i, rule := range c.Capacity.Rules {
		if rule.Capacity < 1 || rule.Capacity > 5 {
			return fmt.Errorf("%w: capacity.rules[%d].capacity must be in 1..5", ErrInvalidConfig, i)
		}
		if len(rule.CodeContains) == 0 && len(rule.NameContains) == 0 {
			return fmt.Errorf("%w: capacity.rules[%d] has no patterns", ErrInvalidConfig, i)
		}
	}
	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		return fmt.Errorf("%w: database host and dbname are required when database is enabled", ErrInvalidConfig)
	}
	if c.Database.Enabled && c.Admin.Token == "" {
		return fmt.Errorf("%w: admin.token is required when capacity overrides are enabled", ErrInvalidConfig)
	}

	return nil
}
