// Package config loads runtime settings from defaults, an optional
// config/config.yaml, a .env file and the environment, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	ErrInvalidEnv     = errors.New("env must be local, development or production")
	ErrInvalidPort    = errors.New("server port must be between 1 and 65535")
	ErrInvalidLog     = errors.New("log format must be json, text or pretty")
	ErrInvalidOrigins = errors.New("cors.allowed_origins must be a comma list or a list of strings")
)

// Config holds application configuration.
type Config struct {
	Env       string    `mapstructure:"env"`
	Server    Server    `mapstructure:"server"`
	RateLimit RateLimit `mapstructure:"ratelimit"`
	Log       Log       `mapstructure:"log"`
	// CORSOrigins is parsed from a comma-separated list.
	CORSOrigins []string `mapstructure:"-"`
}

type Server struct {
	Host                    string `mapstructure:"host"`
	Port                    int    `mapstructure:"port"`
	CPUCores                int    `mapstructure:"cpu_cores"`
	MaxConnectionsPerWorker int    `mapstructure:"max_connections_per_worker"`
}

// Addr is the listen address.
func (s Server) Addr() string { return net.JoinHostPort(s.Host, strconv.Itoa(s.Port)) }

// MaxConnections is the listener cap, or 0 for none.
func (s Server) MaxConnections() int {
	if s.CPUCores <= 0 || s.MaxConnectionsPerWorker <= 0 {
		return 0
	}
	return s.CPUCores * s.MaxConnectionsPerWorker
}

type RateLimit struct {
	Window time.Duration `mapstructure:"window"`
	Max    int           `mapstructure:"max"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env when present, then ./config/config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom("./config")
}

// LoadFrom is Load without .env, looking for config.yaml in dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("env", EnvLocal)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 9000)
	v.SetDefault("server.cpu_cores", 0)
	v.SetDefault("server.max_connections_per_worker", 0)
	v.SetDefault("ratelimit.window", "5m")
	v.SetDefault("ratelimit.max", 299)
	v.SetDefault("cors.allowed_origins", "*")

	// Only the names below are read from the environment.
	_ = v.BindEnv("env", "APP_ENV", "NODE_ENV")
	_ = v.BindEnv("server.host", "SERVER_HOST")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.cpu_cores", "SERVER_CPU_CORES")
	_ = v.BindEnv("server.max_connections_per_worker", "MAX_CONNECTIONS_PER_WORKER")
	_ = v.BindEnv("ratelimit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("ratelimit.max", "RATE_LIMIT_MAX")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	origins, err := originsFrom(v.Get("cors.allowed_origins"))
	if err != nil {
		return nil, err
	}
	cfg.CORSOrigins = origins
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Env == EnvLocal {
			cfg.Log.Level = "debug"
		}
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
		if cfg.Env == EnvLocal {
			cfg.Log.Format = "pretty"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidEnv, c.Env)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	switch c.Log.Format {
	case "json", "text", "pretty":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLog, c.Log.Format)
	}
	return nil
}

// originsFrom accepts the env form ("a, b") and the YAML list form.
func originsFrom(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return splitList(v), nil
	case []string:
		return splitList(strings.Join(v, ",")), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got item %v", ErrInvalidOrigins, item)
			}
			out = append(out, splitList(s)...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidOrigins, raw)
	}
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
