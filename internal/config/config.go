package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса без зависимости от системной tzdata

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, перекрывающие секреты из файла
const (
	EnvDBPassword    = "DB_PASSWORD"
	EnvRedisPassword = "REDIS_PASSWORD"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Timetable TimetableConfig `toml:"timetable"`
	Grid      GridConfig      `toml:"grid"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// RedisConfig настройки кэша снимков баланса
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL возвращает время жизни записи кэша
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// CORSConfig настройки CORS для браузерного клиента
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	// TrustedProxies адреса или подсети прокси, чьему X-Forwarded-For можно верить.
	// Пусто - заголовок игнорируется, клиент определяется по адресу соединения
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyPrefixes разбирает TrustedProxies: "10.0.0.0/8" или одиночный адрес "10.0.0.1"
func (r RateLimitConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(r.TrustedProxies))
	for _, raw := range r.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %v", raw, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// TimetableConfig настройки расписания
type TimetableConfig struct {
	TimeZone       string `toml:"time_zone"`       // IANA, например "Asia/Seoul"
	CurrencySuffix string `toml:"currency_suffix"` // суффикс валюты в подсказке
}

// Location возвращает часовой пояс расписания
func (t TimetableConfig) Location() (*time.Location, error) {
	return time.LoadLocation(t.TimeZone)
}

// GridConfig геометрия сетки расписания
type GridConfig struct {
	BayCount          int     `toml:"bay_count"`
	StartHour         int     `toml:"start_hour"`
	HourSpan          int     `toml:"hour_span"`
	RowHeightPx       float64 `toml:"row_height_px"`
	HeaderHeightPx    float64 `toml:"header_height_px"`
	TimeColumnWidthPx float64 `toml:"time_column_width_px"`
	BayColumnWidthPx  float64 `toml:"bay_column_width_px"`
	MinBoxHeightPx    float64 `toml:"min_box_height_px"`
	BoxGapPx          float64 `toml:"box_gap_px"`
}

// ToDomain конвертирует настройки сетки в доменную модель
func (g GridConfig) ToDomain() domain.GridConfig {
	return domain.GridConfig{
		BayCount:          g.BayCount,
		StartHour:         g.StartHour,
		HourSpan:          g.HourSpan,
		RowHeightPx:       g.RowHeightPx,
		HeaderHeightPx:    g.HeaderHeightPx,
		TimeColumnWidthPx: g.TimeColumnWidthPx,
		BayColumnWidthPx:  g.BayColumnWidthPx,
		MinBoxHeightPx:    g.MinBoxHeightPx,
		BoxGapPx:          g.BoxGapPx,
	}
}

// Load читает конфигурацию из TOML файла
// Секреты могут быть переопределены переменными окружения (в том числе из .env)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	grid := domain.DefaultGridConfig()

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "timetable_service",
			Path:        "/metrics",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 60,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Timetable: TimetableConfig{
			TimeZone:       "Asia/Seoul",
			CurrencySuffix: "원",
		},
		Grid: GridConfig{
			BayCount:          grid.BayCount,
			StartHour:         grid.StartHour,
			HourSpan:          grid.HourSpan,
			RowHeightPx:       grid.RowHeightPx,
			HeaderHeightPx:    grid.HeaderHeightPx,
			TimeColumnWidthPx: grid.TimeColumnWidthPx,
			BayColumnWidthPx:  grid.BayColumnWidthPx,
			MinBoxHeightPx:    grid.MinBoxHeightPx,
			BoxGapPx:          grid.BoxGapPx,
		},
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		cfg.Redis.Password = v
	}
}

// Validate проверяет конфигурацию
// Геометрия сетки проверяется здесь же, чтобы сервис не стартовал с неработающей раскладкой
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in [1, 65535]", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.TTLSeconds <= 0) {
		return fmt.Errorf("%w: redis.addr and positive redis.ttl_seconds are required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}
	if _, err := c.RateLimit.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("%w: rate_limit.trusted_proxies: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Timetable.Location(); err != nil {
		return fmt.Errorf("%w: timetable.time_zone: %v", ErrInvalidConfig, err)
	}
	if err := c.Grid.ToDomain().Validate(); err != nil {
		return fmt.Errorf("%w: grid: %v", ErrInvalidConfig, err)
	}
	return nil
}
