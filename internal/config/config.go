package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Источники профилей пользователей
const (
	IdentitySourceStorage = "storage"
	IdentitySourceHTTP    = "http"
)

// Режимы сериализации проверки пересечений и вставки
const (
	SerializationNone        = "none"
	SerializationTransaction = "transaction"
	SerializationRedis       = "redis"
	SerializationLocal       = "local"
)

var (
	// ErrInvalidConfig возвращается из Validate
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Identity  IdentityConfig  `toml:"identity"`
	Booking   BookingConfig   `toml:"booking"`
	Metrics   MetricsConfig   `toml:"metrics"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логгера
type LogsConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// StorageConfig выбор хранилища данных
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// DatabaseConfig настройки PostgreSQL
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MongoConfig настройки MongoDB
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
	Timeout  int    `toml:"timeout"`
}

// RedisConfig настройки Redis, используется блокировкой слотов и сессиями бронирования
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	DialTimeout  int    `toml:"dial_timeout"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

// KafkaConfig публикация событий записей
type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// IdentityConfig откуда берутся профили мастеров и клиентов.
// storage читает providers и customers из хранилища, http запрашивает user service.
type IdentityConfig struct {
	Source  string `toml:"source"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig настройки расписания
type BookingConfig struct {
	SlotGranularityMinutes int    `toml:"slot_granularity_minutes"`
	CleaningTimeMinutes    int    `toml:"cleaning_time_minutes"`
	Serialization          string `toml:"serialization"`
	LockTTLSeconds         int    `toml:"lock_ttl_seconds"`
	LockWaitSeconds        int    `toml:"lock_wait_seconds"`
	SessionTTLMinutes      int    `toml:"session_ttl_minutes"`
	IdentityTimeoutSeconds int    `toml:"identity_timeout_seconds"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RateLimitConfig ограничение запросов на клиента
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Load читает TOML файл, применяет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse декодирует TOML документ
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path возвращает путь к конфигу из флага, CONFIG_PATH или значение по умолчанию
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "config.toml"
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Logs.MaxSizeMB == 0 {
		c.Logs.MaxSizeMB = 100
	}
	if c.Logs.MaxBackups == 0 {
		c.Logs.MaxBackups = 5
	}
	if c.Logs.MaxAgeDays == 0 {
		c.Logs.MaxAgeDays = 30
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPostgres
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Mongo.Database == "" {
		c.Mongo.Database = "beautybooking"
	}
	if c.Mongo.Timeout == 0 {
		c.Mongo.Timeout = 10
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "appointments.events"
	}
	if c.Kafka.WriteTimeout == 0 {
		c.Kafka.WriteTimeout = 5
	}

	if c.Identity.Source == "" {
		c.Identity.Source = IdentitySourceStorage
	}
	if c.Identity.Timeout == 0 {
		c.Identity.Timeout = 3
	}

	if c.Booking.SlotGranularityMinutes == 0 {
		c.Booking.SlotGranularityMinutes = 15
	}
	if c.Booking.CleaningTimeMinutes == 0 {
		c.Booking.CleaningTimeMinutes = 15
	}
	if c.Booking.Serialization == "" {
		c.Booking.Serialization = c.defaultSerialization()
	}
	if c.Booking.LockTTLSeconds == 0 {
		c.Booking.LockTTLSeconds = 10
	}
	if c.Booking.LockWaitSeconds == 0 {
		c.Booking.LockWaitSeconds = 3
	}
	if c.Booking.SessionTTLMinutes == 0 {
		c.Booking.SessionTTLMinutes = 30
	}
	if c.Booking.IdentityTimeoutSeconds == 0 {
		c.Booking.IdentityTimeoutSeconds = 5
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "beautybookingsystem"
	}

	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
}

func (c *Config) defaultSerialization() string {
	switch {
	case c.Storage.Driver == DriverPostgres:
		return SerializationTransaction
	case c.Redis.Enabled:
		return SerializationRedis
	default:
		return SerializationLocal
	}
}

// Validate проверяет значения и сочетания настроек
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for the postgres driver")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			problems = append(problems, "mongo.uri is required for the mongo driver")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	switch c.Booking.Serialization {
	case SerializationNone, SerializationLocal:
	case SerializationTransaction:
		if c.Storage.Driver != DriverPostgres {
			problems = append(problems, "booking.serialization=transaction requires storage.driver=postgres")
		}
	case SerializationRedis:
		if !c.Redis.Enabled {
			problems = append(problems, "booking.serialization=redis requires redis.enabled")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown booking.serialization %q", c.Booking.Serialization))
	}

	if c.Booking.SlotGranularityMinutes < 0 || c.Booking.SlotGranularityMinutes > 60 {
		problems = append(problems, "booking.slot_granularity_minutes must be between 1 and 60")
	}
	if c.Booking.CleaningTimeMinutes < 0 {
		problems = append(problems, "booking.cleaning_time_minutes must not be negative")
	}
	if c.Booking.IdentityTimeoutSeconds < 0 {
		problems = append(problems, "booking.identity_timeout_seconds must not be negative")
	}

	switch c.Identity.Source {
	case IdentitySourceStorage:
	case IdentitySourceHTTP:
		if c.Identity.URL == "" {
			problems = append(problems, "identity.url is required for identity.source=http")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown identity.source %q", c.Identity.Source))
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
