// Package config loads client and dev-server settings with viper.
//
// Values come from defaults, then an optional config.yaml in the home directory,
// then MOOLA_* environment variables (nested keys use "_", e.g.
// MOOLA_PAYMENT_MIN_AMOUNT).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "MOOLA"

// Token store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Variant holds the per-wizard recipient pattern and minimum amount.
type Variant struct {
	Pattern   string `mapstructure:"pattern"`
	MinAmount int64  `mapstructure:"min_amount"`
}

// Mock configures the development API server.
type Mock struct {
	Addr      string        `mapstructure:"addr"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// Config is the full settings tree.
type Config struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Home            string        `mapstructure:"home"`
	TokenBackend    string        `mapstructure:"token_backend"`
	RedisURL        string        `mapstructure:"redis_url"`
	RedisPrefix     string        `mapstructure:"redis_prefix"`
	StorePassphrase string        `mapstructure:"store_passphrase"`
	Currency        string        `mapstructure:"currency"`
	CountryCode     string        `mapstructure:"country_code"`
	Payment         Variant       `mapstructure:"payment"`
	Airtime         Variant       `mapstructure:"airtime"`
	ContactsAccess  string        `mapstructure:"contacts_access"`
	ContactsFile    string        `mapstructure:"contacts_file"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	Mock            Mock          `mapstructure:"mock"`
}

// ErrUnknownBackend is returned for an unsupported token_backend.
var ErrUnknownBackend = errors.New("config: unknown token backend")

// DefaultHome is ~/.moola, or .moola when the home directory is unknown.
func DefaultHome() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".moola")
	}
	return ".moola"
}

func defaults(v *viper.Viper) {
	v.SetDefault("api_base_url", "http://127.0.0.1:8080/v1")
	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("home", DefaultHome())
	v.SetDefault("token_backend", BackendFile)
	v.SetDefault("redis_url", "redis://127.0.0.1:6379/0")
	v.SetDefault("redis_prefix", "moola")
	v.SetDefault("store_passphrase", "")
	v.SetDefault("currency", "Rwf")
	v.SetDefault("country_code", "250")
	v.SetDefault("payment.pattern", `^07[2-9]\d{7}$`)
	v.SetDefault("payment.min_amount", 1)
	v.SetDefault("airtime.pattern", `^07[2389]\d{7}$`)
	v.SetDefault("airtime.min_amount", 100)
	v.SetDefault("contacts_access", "prompt")
	v.SetDefault("contacts_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("mock.addr", ":8080")
	v.SetDefault("mock.jwt_secret", "dev-secret-change-me")
	v.SetDefault("mock.access_ttl", 15*time.Minute)
}

// Load resolves the configuration. A non-empty home overrides every other
// source for the home directory and is also where config.yaml is looked up.
func Load(home string) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if home == "" {
		// Env may move the home before the file is looked up.
		home = v.GetString("home")
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Home = home
	if cfg.ContactsFile == "" {
		cfg.ContactsFile = filepath.Join(home, "contacts.json")
	}
	switch cfg.TokenBackend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.TokenBackend)
	}
	return cfg, nil
}
