// Package config provides configuration management for DriftLab.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like SERVER_PORT, LOG_LEVEL)
// 3. Default values
//
// Simulator timings default to the published fixture contract (order
// processing at 2s/3s, propagation at 2s/5s/10s). They are configurable so
// test suites can compress time; tools exercised against a deployed
// instance should leave them at the defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// SimulatorConfig contains the timing and probability knobs of the
// simulation engine.
type SimulatorConfig struct {
	// Order lifecycle: pending →(processing_delay)→ processing
	// →(completion_delay)→ completed|failed.
	OrderProcessingDelay time.Duration `mapstructure:"order_processing_delay"`
	OrderCompletionDelay time.Duration `mapstructure:"order_completion_delay"`
	OrderSuccessRate     float64       `mapstructure:"order_success_rate"`

	// Job lifecycle: queued → running →(caller delay)→ completed|failed.
	JobDefaultDelay time.Duration `mapstructure:"job_default_delay"`
	JobSuccessRate  float64       `mapstructure:"job_success_rate"`

	// Resource lifecycle: provisioning →(init_delay)→ initializing
	// →(ready_delay)→ ready|error.
	ResourceInitDelay   time.Duration `mapstructure:"resource_init_delay"`
	ResourceReadyDelay  time.Duration `mapstructure:"resource_ready_delay"`
	ResourceSuccessRate float64       `mapstructure:"resource_success_rate"`

	// Eventual consistency propagation offsets, absolute from write time.
	CachedAfter    time.Duration `mapstructure:"cached_after"`
	SearchAfter    time.Duration `mapstructure:"search_after"`
	AnalyticsAfter time.Duration `mapstructure:"analytics_after"`

	// Seed for the simulator's random source. 0 seeds from the OS; any
	// other value makes outcome branches reproducible.
	Seed uint64 `mapstructure:"seed"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/driftlab")

	// Environment variable override without prefix: SERVER_PORT,
	// LOG_LEVEL, SIMULATOR_SEED, etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Worker.PoolSize <= 0 {
		return fmt.Errorf("worker.pool_size must be positive")
	}
	for name, rate := range map[string]float64{
		"simulator.order_success_rate":    c.Simulator.OrderSuccessRate,
		"simulator.job_success_rate":      c.Simulator.JobSuccessRate,
		"simulator.resource_success_rate": c.Simulator.ResourceSuccessRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, rate)
		}
	}
	s := c.Simulator
	if s.CachedAfter < 0 || s.SearchAfter < s.CachedAfter || s.AnalyticsAfter < s.SearchAfter {
		return fmt.Errorf("propagation offsets must be non-negative and non-decreasing")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Worker pool
	v.SetDefault("worker.pool_size", 256)

	// Simulator timing contract
	v.SetDefault("simulator.order_processing_delay", "2s")
	v.SetDefault("simulator.order_completion_delay", "3s")
	v.SetDefault("simulator.order_success_rate", 0.9)
	v.SetDefault("simulator.job_default_delay", "5s")
	v.SetDefault("simulator.job_success_rate", 0.85)
	v.SetDefault("simulator.resource_init_delay", "2s")
	v.SetDefault("simulator.resource_ready_delay", "4s")
	v.SetDefault("simulator.resource_success_rate", 0.8)
	v.SetDefault("simulator.cached_after", "2s")
	v.SetDefault("simulator.search_after", "5s")
	v.SetDefault("simulator.analytics_after", "10s")
	v.SetDefault("simulator.seed", 0)
}
