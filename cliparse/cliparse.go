package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/danielhkuo/lotto-hub/auth"
)

// Store types
const (
	StoreFile   = "file"
	StoreSQL    = "sql"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Port         int
	StoreType    string
	DataDir      string
	DatabaseURL  string
	DatabaseType string
	RedisURL     string
	TokenSecret  string
	Timezone     string
	SettingsFile string
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("lotto-hub", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "s", "", "Store type (file, sql, redis or memory)")
	fs.StringVar(&cfg.DataDir, "data", "", "Data directory for the file store")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL")
	fs.StringVar(&cfg.Timezone, "tz", "", "Time zone for draw dates")
	fs.StringVar(&cfg.SettingsFile, "settings", "", "Settings file (yaml)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.StoreType = firstNonEmpty(cfg.StoreType, os.Getenv("STORE_TYPE"), StoreFile)
	cfg.DataDir = firstNonEmpty(cfg.DataDir, os.Getenv("DATA_DIR"), "./data")
	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), "sqlite")
	cfg.RedisURL = firstNonEmpty(cfg.RedisURL, os.Getenv("REDIS_URL"))
	cfg.Timezone = firstNonEmpty(cfg.Timezone, os.Getenv("APP_TIMEZONE"), "Local")
	cfg.SettingsFile = firstNonEmpty(cfg.SettingsFile, os.Getenv("SETTINGS_FILE"))

	switch cfg.StoreType {
	case StoreFile, StoreMemory:
	case StoreSQL:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for sql store (use -d or DATABASE_URL env)")
		}
	case StoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, errors.New("redis URL required for redis store (use -redis or REDIS_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid time zone: %w", err)
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	return cfg, nil
}

// TokenRequest holds the arguments of the "token" subcommand.
type TokenRequest struct {
	UID  string
	Role string
	TTL  time.Duration
}

// ParseTokenFlags parses "lotto-hub token -uid alice -role seller -ttl 12h".
func ParseTokenFlags(args []string) (TokenRequest, error) {
	var req TokenRequest

	fs := flag.NewFlagSet("lotto-hub token", flag.ContinueOnError)
	fs.StringVar(&req.UID, "uid", "", "User id")
	fs.StringVar(&req.Role, "role", "", "Role (admin or seller)")
	fs.DurationVar(&req.TTL, "ttl", 24*time.Hour, "Token lifetime")

	if err := fs.Parse(args); err != nil {
		return TokenRequest{}, err
	}
	if req.UID == "" {
		return TokenRequest{}, errors.New("-uid is required")
	}
	if !auth.ValidRole(req.Role) {
		return TokenRequest{}, errors.New("-role must be admin or seller")
	}
	if req.TTL <= 0 {
		return TokenRequest{}, errors.New("-ttl must be positive")
	}

	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
