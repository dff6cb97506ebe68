package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPAddress        = ":3000"
	DefaultSeatCapacity       = 10
	DefaultManifestCacheTTL   = 30
	DefaultNotificationsGroup = "seatbook-notifier"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// Enabled reports whether a database is configured. The journal is
// optional and only used by the worker.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type BookingConfig struct {
	SeatCapacity            int `yaml:"seat_capacity"`
	ManifestCacheTTLSeconds int `yaml:"manifest_cache_ttl_seconds"`
}

// Default returns the configuration used when no file is present: HTTP on
// :3000, ten seats per flight, no Redis, Kafka or database.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Booking.SeatCapacity < 0 {
		return nil, fmt.Errorf("booking.seat_capacity must not be negative, got %d", cfg.Booking.SeatCapacity)
	}
	if cfg.Booking.ManifestCacheTTLSeconds < 0 {
		return nil, fmt.Errorf("booking.manifest_cache_ttl_seconds must not be negative, got %d", cfg.Booking.ManifestCacheTTLSeconds)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Load reads path, falling back to Default when the file does not exist,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = DefaultHTTPAddress
	}
	if c.Booking.SeatCapacity == 0 {
		c.Booking.SeatCapacity = DefaultSeatCapacity
	}
	if c.Booking.ManifestCacheTTLSeconds == 0 {
		c.Booking.ManifestCacheTTLSeconds = DefaultManifestCacheTTL
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = DefaultNotificationsGroup
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// PORT overrides only the port of the HTTP address.
func (c *Config) applyEnv(getenv func(string) string) {
	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		return
	}
	host := c.HTTP.Address
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	c.HTTP.Address = host + ":" + port
}
