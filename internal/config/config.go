package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	// ErrReadConfig не удалось прочитать или разобрать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Hotel          HotelConfig          `toml:"hotel"`
	Booking        BookingConfig        `toml:"booking"`
	Availability   AvailabilityConfig   `toml:"availability"`
	Pricing        PricingConfig        `toml:"pricing"`
	Cancellation   CancellationConfig   `toml:"cancellation"`
	Redis          RedisConfig          `toml:"redis"`
	RabbitMQ       RabbitMQConfig       `toml:"rabbitmq"`
	ServiceCatalog ServiceCatalogConfig `toml:"service_catalog"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

type HotelConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

// Location часовой пояс отеля, по нему считается "сегодня"
func (h HotelConfig) Location() (*time.Location, error) {
	if h.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(h.Timezone)
}

type BookingConfig struct {
	// PendingBlocks - бронь в статусе pending занимает номер
	PendingBlocks         *bool `toml:"pending_blocks"`
	RequireAdvancePayment bool  `toml:"require_advance_payment"`
}

// PendingBlocksRoom значение флага с учетом дефолта (true)
func (b BookingConfig) PendingBlocksRoom() bool {
	if b.PendingBlocks == nil {
		return true
	}
	return *b.PendingBlocks
}

type AvailabilityConfig struct {
	LookaheadDays int `toml:"lookahead_days"`
}

type PricingConfig struct {
	ExtraGuestRate string `toml:"extra_guest_rate"`
	Currency       string `toml:"currency"`
}

// ExtraGuestRateDecimal доплата за гостя сверх вместимости за ночь
func (p PricingConfig) ExtraGuestRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(p.ExtraGuestRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

type CancellationConfig struct {
	FeePercent string `toml:"fee_percent"`
}

// FeePercentDecimal процент штрафа за отмену по политике
func (c CancellationConfig) FeePercentDecimal() decimal.Decimal {
	pct, err := decimal.NewFromString(c.FeePercent)
	if err != nil {
		return decimal.NewFromInt(DefaultFeePercent)
	}
	return pct
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type ServiceCatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Значения по умолчанию
const (
	DefaultHTTPPort        = 8080
	DefaultLookaheadDays   = 30
	DefaultFeePercent      = 20
	MoneyScale             = 2
	DefaultExtraGuestRate  = "0"
	DefaultRedisTTLSeconds = 60
	DefaultCatalogTimeout  = 5
	DefaultShutdownTimeout = 10
	DefaultLogLevel        = "info"
	DefaultMetricsPath     = "/metrics"
	DefaultServiceName     = "hotel-booking-service"
	defaultEnvFile         = ".env"
	envDatabasePassword    = "DB_PASSWORD"
	envRedisPassword       = "REDIS_PASSWORD"
	envRabbitMQURL         = "RABBITMQ_URL"
	envServiceCatalogURL   = "SERVICE_CATALOG_URL"
	envHTTPPort            = "HTTP_PORT"
)

// Load читает конфигурацию из TOML файла.
// Перед этим подгружает .env (если он есть) и применяет переопределения из окружения.
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load(defaultEnvFile)

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envDatabasePassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(envRedisPassword); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv(envRabbitMQURL); ok {
		c.RabbitMQ.URL = v
	}
	if v, ok := os.LookupEnv(envServiceCatalogURL); ok {
		c.ServiceCatalog.URL = v
	}
	if v, ok := os.LookupEnv(envHTTPPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Logs.Level == "" {
		c.Logs.Level = DefaultLogLevel
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = DefaultServiceName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Availability.LookaheadDays == 0 {
		c.Availability.LookaheadDays = DefaultLookaheadDays
	}
	if c.Pricing.ExtraGuestRate == "" {
		c.Pricing.ExtraGuestRate = DefaultExtraGuestRate
	}
	if c.Cancellation.FeePercent == "" {
		c.Cancellation.FeePercent = strconv.Itoa(DefaultFeePercent)
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = DefaultRedisTTLSeconds
	}
	if c.ServiceCatalog.Timeout == 0 {
		c.ServiceCatalog.Timeout = DefaultCatalogTimeout
	}
}

// Validate проверяет значения, которые нельзя молча исправить
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Availability.LookaheadDays < 0 {
		return fmt.Errorf("%w: availability.lookahead_days must not be negative", ErrInvalidConfig)
	}

	rate, err := decimal.NewFromString(c.Pricing.ExtraGuestRate)
	if err != nil || rate.IsNegative() {
		return fmt.Errorf("%w: pricing.extra_guest_rate must be a non-negative decimal", ErrInvalidConfig)
	}
	// Денежные колонки NUMERIC(12,2): тариф с дробными копейками разошелся бы с сохраненной суммой
	if !rate.Equal(rate.Round(MoneyScale)) {
		return fmt.Errorf("%w: pricing.extra_guest_rate must have at most %d decimal places", ErrInvalidConfig, MoneyScale)
	}

	pct, err := decimal.NewFromString(c.Cancellation.FeePercent)
	if err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: cancellation.fee_percent must be within 0..100", ErrInvalidConfig)
	}

	if _, err := c.Hotel.Location(); err != nil {
		return fmt.Errorf("%w: hotel.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	return nil
}
