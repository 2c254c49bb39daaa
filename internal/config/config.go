package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultMySQLDSN  = "root:password@tcp(127.0.0.1:3306)/cyberkittens?parseTime=true"
	defaultSQLiteDSN = "cyberkittens.db"
)

var (
	ErrUnknownDriver = errors.New("unknown database driver")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

type Config struct {
	Port               string
	Env                string
	CORSAllowedOrigins []string

	DBDriver       string
	DatabaseDSN    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// JWTSecret is not required at startup; token operations fail at request time when empty.
	JWTSecret string
	JWTExpiry time.Duration

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	LogFormat string
	LogLevel  string

	MetricsEnabled bool
}

// fileConfig mirrors the optional YAML file pointed to by CONFIG_FILE.
type fileConfig struct {
	Server struct {
		Port               string   `yaml:"port"`
		Env                string   `yaml:"env"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		DSN          string `yaml:"dsn"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret      string  `yaml:"jwt_secret"`
		JWTExpiry      string  `yaml:"jwt_expiry"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps"`
		RateLimitBurst int     `yaml:"rate_limit_burst"`
	} `yaml:"auth"`
	Logging struct {
		Format string `yaml:"format"`
		Level  string `yaml:"level"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// Load reads .env, the optional YAML file named by CONFIG_FILE, and then the
// environment. Environment variables win over file values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN(cfg.DBDriver)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; token signing and verification will fail")
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:               "8080",
		Env:                "development",
		DBDriver:           DriverMySQL,
		DBMaxOpenConns:     25,
		DBMaxIdleConns:     5,
		JWTExpiry:          24 * time.Hour,
		AuthRateLimitRPS:   5,
		AuthRateLimitBurst: 10,
		LogFormat:          "text",
		LogLevel:           "info",
		MetricsEnabled:     true,
	}
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return defaultSQLiteDSN
	}
	return defaultMySQLDSN
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	setString(&c.Port, fc.Server.Port)
	setString(&c.Env, fc.Server.Env)
	if len(fc.Server.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = fc.Server.CORSAllowedOrigins
	}

	setString(&c.DBDriver, fc.Database.Driver)
	setString(&c.DatabaseDSN, fc.Database.DSN)
	setInt(&c.DBMaxOpenConns, fc.Database.MaxOpenConns)
	setInt(&c.DBMaxIdleConns, fc.Database.MaxIdleConns)

	setString(&c.JWTSecret, fc.Auth.JWTSecret)
	if fc.Auth.JWTExpiry != "" {
		d, err := time.ParseDuration(fc.Auth.JWTExpiry)
		if err != nil {
			return fmt.Errorf("%w: auth.jwt_expiry %q", ErrInvalidValue, fc.Auth.JWTExpiry)
		}
		c.JWTExpiry = d
	}
	if fc.Auth.RateLimitRPS > 0 {
		c.AuthRateLimitRPS = fc.Auth.RateLimitRPS
	}
	setInt(&c.AuthRateLimitBurst, fc.Auth.RateLimitBurst)

	setString(&c.LogFormat, fc.Logging.Format)
	setString(&c.LogLevel, fc.Logging.Level)

	if fc.Metrics.Enabled != nil {
		c.MetricsEnabled = *fc.Metrics.Enabled
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = parseList(v)
	}

	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	if err := getEnvInt("DB_MAX_OPEN_CONNS", &c.DBMaxOpenConns); err != nil {
		return err
	}
	if err := getEnvInt("DB_MAX_IDLE_CONNS", &c.DBMaxIdleConns); err != nil {
		return err
	}

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: JWT_EXPIRY %q", ErrInvalidValue, v)
		}
		c.JWTExpiry = d
	}

	if v := os.Getenv("AUTH_RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: AUTH_RATE_LIMIT_RPS %q", ErrInvalidValue, v)
		}
		c.AuthRateLimitRPS = f
	}
	if err := getEnvInt("AUTH_RATE_LIMIT_BURST", &c.AuthRateLimitBurst); err != nil {
		return err
	}

	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: METRICS_ENABLED %q", ErrInvalidValue, v)
		}
		c.MetricsEnabled = b
	}

	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DBDriver)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("%w: jwt expiry must be positive", ErrInvalidValue)
	}
	return nil
}

// IsProduction reports whether ENV is set to production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func parseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// getEnvInt overwrites dst with the positive integer in key, if set.
func getEnvInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %s %q", ErrInvalidValue, key, v)
	}
	*dst = n
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
