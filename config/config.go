package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Broker   BrokerConfig   `mapstructure:"broker"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	SecretKey string        `mapstructure:"secretKey"`
	Port      string        `mapstructure:"port"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Username     string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DatabaseName string `mapstructure:"name"`
	Port         string `mapstructure:"port"`
	SSLMode      string `mapstructure:"sslMode"`
	SeedFile     string `mapstructure:"seedFile"`
}

type PaymentConfig struct {
	SecretKey string `mapstructure:"secretKey"`
	Currency  string `mapstructure:"currency"`
	Verify    bool   `mapstructure:"verify"`
}

type BrokerConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type LogConfig struct {
	Service string `mapstructure:"service"`
	Env     string `mapstructure:"env"`
}

var defaults = map[string]any{
	"server.port":       "5000",
	"server.tokenTTL":   "24h",
	"database.host":     "localhost",
	"database.port":     "5432",
	"database.user":     "postgres",
	"database.name":     "axel_motors",
	"database.sslMode":  "disable",
	"database.seedFile": "data/tools.json",
	"payment.currency":  "usd",
	"payment.verify":    true,
	"broker.queue":      "marketplace_events",
	"log.service":       "axel-motors",
	"log.env":           "dev",
}

// env lists the environment variables bound to each key, first match wins.
var env = map[string][]string{
	"server.port":       {"PORT", "SERVER_PORT"},
	"server.secretKey":  {"ACCESS_TOKEN_SECRET", "SECRET_KEY"},
	"server.tokenTTL":   {"TOKEN_TTL"},
	"database.host":     {"DATABASE_HOST"},
	"database.port":     {"DATABASE_PORT"},
	"database.user":     {"DATABASE_USER", "DB_USER"},
	"database.password": {"DATABASE_PASSWORD", "DB_PASS"},
	"database.name":     {"DATABASE_NAME"},
	"database.sslMode":  {"DATABASE_SSLMODE"},
	"database.seedFile": {"DATABASE_SEED_FILE"},
	"payment.secretKey": {"STRIPE_SECRET_KEY"},
	"payment.currency":  {"PAYMENT_CURRENCY"},
	"payment.verify":    {"PAYMENT_VERIFY"},
	"broker.url":        {"AMQP_URL"},
	"broker.queue":      {"AMQP_QUEUE"},
	"log.service":       {"SERVICE_NAME"},
	"log.env":           {"ENV"},
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the HTTP server cannot start without.
func (config *Config) Validate() error {
	if config.Server.SecretKey == "" {
		return errors.New("config: token secret is empty (set ACCESS_TOKEN_SECRET)")
	}
	if config.Server.TokenTTL <= 0 {
		return errors.New("config: token ttl must be positive")
	}
	return nil
}

// DSN renders the postgres connection string.
func (database DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		database.Host,
		database.Username,
		database.Password,
		database.DatabaseName,
		database.Port,
		database.SSLMode)
}
