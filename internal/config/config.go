package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the console service
type Config struct {
	AppEnv           string
	HTTPAddr         string
	FlightAPI        FlightAPIConfig
	HomeAerodrome    string
	IncidentTimezone string
	Session          SessionConfig
	Redis            RedisConfig
	RateLimit        RateLimitConfig
	CORSOrigins      []string
}

// FlightAPIConfig describes the upstream flight data service
type FlightAPIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	// ProbeInterval of 0 disables the background reachability check
	ProbeInterval time.Duration
}

// SessionConfig selects where console view state lives
type SessionConfig struct {
	Backend string
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load loads configuration from .env, an optional config file and SIRMS_* environment variables
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("flight_api.base_url", "http://localhost:8080/flights")
	v.SetDefault("flight_api.timeout", "10s")
	v.SetDefault("flight_api.probe_interval", "1m")
	v.SetDefault("home_aerodrome", "WSSS")
	v.SetDefault("incident_timezone", "UTC")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.rps", 2)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("cors.allowed_origins", "https://*,http://localhost:3000")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/sirms")
	v.AddConfigPath(".")

	if configPath := os.Getenv("SIRMS_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SIRMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:   v.GetString("app_env"),
		HTTPAddr: v.GetString("http.addr"),
		FlightAPI: FlightAPIConfig{
			BaseURL:       strings.TrimRight(v.GetString("flight_api.base_url"), "/"),
			Timeout:       v.GetDuration("flight_api.timeout"),
			ProbeInterval: v.GetDuration("flight_api.probe_interval"),
		},
		HomeAerodrome:    strings.ToUpper(strings.TrimSpace(v.GetString("home_aerodrome"))),
		IncidentTimezone: v.GetString("incident_timezone"),
		Session: SessionConfig{
			Backend: strings.ToLower(v.GetString("session.backend")),
			TTL:     v.GetDuration("session.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("rate_limit.rps"),
			Burst: v.GetInt("rate_limit.burst"),
		},
		CORSOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Location resolves IncidentTimezone; validate guarantees it loads
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.IncidentTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validate(cfg *Config) error {
	if cfg.FlightAPI.BaseURL == "" {
		return fmt.Errorf("flight_api.base_url is required")
	}
	if cfg.FlightAPI.Timeout <= 0 {
		return fmt.Errorf("flight_api.timeout must be greater than 0")
	}
	if cfg.FlightAPI.ProbeInterval < 0 {
		return fmt.Errorf("flight_api.probe_interval cannot be negative")
	}
	if cfg.HomeAerodrome == "" {
		return fmt.Errorf("home_aerodrome is required")
	}
	if _, err := time.LoadLocation(cfg.IncidentTimezone); err != nil {
		return fmt.Errorf("invalid incident_timezone %q: %w", cfg.IncidentTimezone, err)
	}

	switch cfg.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid session.backend: %s (must be memory or redis)", cfg.Session.Backend)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be greater than 0")
	}
	if cfg.Session.Backend == "redis" && cfg.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when session.backend is redis")
	}

	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be greater than 0")
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
