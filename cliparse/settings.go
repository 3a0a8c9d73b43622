package cliparse

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Settings are tunables read from an optional settings file, overridable
// with LOTTOHUB_* environment variables (e.g. LOTTOHUB_RETENTION_SALES).
type Settings struct {
	Retention      RetentionSettings      `mapstructure:"retention"`
	Redis          RedisSettings          `mapstructure:"redis"`
	CircuitBreaker CircuitBreakerSettings `mapstructure:"circuit_breaker"`
}

// RetentionSettings control the storage hygiene sweep. A zero horizon
// disables purging for that collection.
type RetentionSettings struct {
	Sales         time.Duration `mapstructure:"sales"`
	Winners       time.Duration `mapstructure:"winners"`
	Results       time.Duration `mapstructure:"results"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type RedisSettings struct {
	PoolSize      int           `mapstructure:"pool_size"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

type CircuitBreakerSettings struct {
	Enabled      bool          `mapstructure:"enabled"`
	Name         string        `mapstructure:"name"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

// Validate checks the settings for values the service cannot run with.
func (s *Settings) Validate() error {
	r := s.Retention
	if r.Sales < 0 || r.Winners < 0 || r.Results < 0 {
		return errors.New("retention horizons cannot be negative")
	}
	if r.SweepInterval < time.Second {
		return errors.New("retention.sweep_interval must be at least 1s")
	}
	if s.Redis.RetryAttempts < 0 || s.Redis.RetryAttempts > 10 {
		return errors.New("redis.retry_attempts must be between 0 and 10")
	}
	if s.CircuitBreaker.FailureRatio <= 0 || s.CircuitBreaker.FailureRatio > 1 {
		return errors.New("circuit_breaker.failure_ratio must be in (0, 1]")
	}
	return nil
}

// SettingsManager loads settings and reloads them when the file changes.
type SettingsManager struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	settings *Settings
}

// NewSettingsManager reads from path when given; otherwise it looks for
// lottohub.yaml in the working directory and ./config.
func NewSettingsManager(path string) *SettingsManager {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lottohub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("LOTTOHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return &SettingsManager{viper: v}
}

func setDefaults(v *viper.Viper) {
	// Retention
	v.SetDefault("retention.sales", "12h")
	v.SetDefault("retention.winners", "24h")
	v.SetDefault("retention.results", "168h")
	v.SetDefault("retention.sweep_interval", "10m")

	// Redis
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.retry_attempts", 3)
	v.SetDefault("redis.retry_interval", "100ms")

	// Circuit breaker
	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.name", "lotto-hub-store")
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", "60s")
	v.SetDefault("circuit_breaker.timeout", "30s")
	v.SetDefault("circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("circuit_breaker.min_requests", 3)
}

// Load reads the settings file (a missing file means defaults) and
// validates the result.
func (m *SettingsManager) Load() (*Settings, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	settings, err := m.decode()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()

	return settings, nil
}

func (m *SettingsManager) decode() (*Settings, error) {
	settings := &Settings{}
	if err := m.viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Current returns the last successfully loaded settings.
func (m *SettingsManager) Current() *Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Watch calls onChange with the new settings whenever the settings file
// changes. Invalid edits are logged and ignored. Without a settings file
// there is nothing to watch.
func (m *SettingsManager) Watch(onChange func(*Settings)) {
	if m.viper.ConfigFileUsed() == "" {
		return
	}
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		settings, err := m.decode()
		if err != nil {
			slog.Error("ignoring settings change", "file", e.Name, "error", err)
			return
		}

		m.mu.Lock()
		m.settings = settings
		m.mu.Unlock()

		slog.Info("settings reloaded", "file", e.Name)
		if onChange != nil {
			onChange(settings)
		}
	})
	m.viper.WatchConfig()
}
