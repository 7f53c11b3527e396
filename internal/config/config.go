// Package config loads process configuration from environment variables,
// optionally overlaid by a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config aggregates all service settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Flow     FlowConfig     `mapstructure:"flow"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// TelegramConfig describes the bot transport and operator destination.
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	AdminChatID int64  `mapstructure:"admin_chat_id"`
}

// Enabled reports whether the Telegram transport can start.
func (c TelegramConfig) Enabled() bool {
	return c.Token != ""
}

// RedisConfig describes the optional Redis session backend. When Addr is
// empty, sessions live in memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether the Redis backend is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// FlowConfig carries the business parameters of the intake flow.
type FlowConfig struct {
	MinimumUSD    float64       `mapstructure:"minimum_usd"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// Load builds the configuration: defaults, then environment, then the YAML
// file at path (if non-empty).
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Addr: ":8080"},
		Flow: FlowConfig{
			MinimumUSD:    1000.0,
			IdleTimeout:   600 * time.Second,
			SweepInterval: 60 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) loadEnv() error {
	if addr := getEnv("TRADEDESK_ADDR"); addr != "" {
		c.Server.Addr = normalizeAddr(addr)
	}
	c.Telegram.Token = getEnv("BOT_TOKEN")

	adminID, err := parseInt64Env("ADMIN_ID", 0)
	if err != nil {
		return err
	}
	c.Telegram.AdminChatID = adminID

	c.Redis.Addr = getEnv("REDIS_ADDR")
	c.Redis.Password = getEnv("REDIS_PASSWORD")
	db, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return err
	}
	c.Redis.DB = db

	if minUSD, err := parseFloatEnv("TRADE_MINIMUM_USD", c.Flow.MinimumUSD); err != nil {
		return err
	} else {
		c.Flow.MinimumUSD = minUSD
	}
	if d, err := parseDurationEnv("SESSION_IDLE_TIMEOUT", c.Flow.IdleTimeout); err != nil {
		return err
	} else {
		c.Flow.IdleTimeout = d
	}
	if d, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", c.Flow.SweepInterval); err != nil {
		return err
	} else {
		c.Flow.SweepInterval = d
	}

	if lvl := getEnv("LOG_LEVEL"); lvl != "" {
		c.Log.Level = strings.ToLower(lvl)
	}
	if format := getEnv("LOG_FORMAT"); format != "" {
		c.Log.Format = strings.ToLower(format)
	}
	return nil
}

// loadFile overlays a YAML document. The file is parsed into a generic map
// and decoded with mapstructure so duration strings like "10m" work and
// unset keys keep their current values.
func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

func normalizeAddr(addr string) string {
	if strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw := getEnv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseInt64Env(key string, fallback int64) (int64, error) {
	raw := getEnv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	raw := getEnv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key)
	if raw == "" {
		return fallback, nil
	}
	// Accept bare seconds for compatibility with the original deployment.
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
