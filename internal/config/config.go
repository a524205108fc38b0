// Package config loads poolbench settings from the environment and an
// optional .env file.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	bperrors "github.com/vnykmshr/boundpool/pkg/common/errors"
	"github.com/vnykmshr/boundpool/pkg/common/validation"
)

const module = "config"

// Config holds runtime configuration.
type Config struct {
	Workers       []int
	QueueCapacity int
	Tasks         int
	Complexity    int
	Producers     int
	Workload      string
	Schedule      string
	MetricsAddr   string
	PinWorkers    bool
	LogLevel      logrus.Level
	LogFormat     string
}

// LoadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return bperrors.NewOperationError(module, "LoadDotEnv", err).WithContext(path)
	}
	return nil
}

// Load loads from environment variables, falling back to defaults. It only
// rejects values that do not parse; call Validate once overrides are applied.
func Load() (*Config, error) {
	cfg := &Config{
		Workload:    getEnv("POOLBENCH_WORKLOAD", "primes"),
		Schedule:    os.Getenv("POOLBENCH_SCHEDULE"),
		MetricsAddr: os.Getenv("POOLBENCH_METRICS_ADDR"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Workers, err = getEnvInts("POOLBENCH_WORKERS", DefaultSweep(runtime.GOMAXPROCS(0))); err != nil {
		return nil, err
	}
	if cfg.QueueCapacity, err = getEnvInt("POOLBENCH_QUEUE_CAPACITY", 0); err != nil {
		return nil, err
	}
	if cfg.Tasks, err = getEnvInt("POOLBENCH_TASKS", 2000); err != nil {
		return nil, err
	}
	if cfg.Complexity, err = getEnvInt("POOLBENCH_COMPLEXITY", 20000); err != nil {
		return nil, err
	}
	if cfg.Producers, err = getEnvInt("POOLBENCH_PRODUCERS", 1); err != nil {
		return nil, err
	}
	if cfg.PinWorkers, err = getEnvBool("POOLBENCH_PIN_WORKERS", false); err != nil {
		return nil, err
	}

	level := getEnv("LOG_LEVEL", "info")
	if cfg.LogLevel, err = logrus.ParseLevel(level); err != nil {
		return nil, bperrors.NewValidationError(module, "LOG_LEVEL", level, "unknown level").
			WithHint("use one of: debug, info, warn, error")
	}
	return cfg, nil
}

// Validate checks the settings after flags have been applied on top.
func (c *Config) Validate() error {
	if len(c.Workers) == 0 {
		return bperrors.NewValidationError(module, "Workers", c.Workers, "empty sweep")
	}
	for _, w := range c.Workers {
		if err := validation.ValidatePositive(module, "Workers", w); err != nil {
			return err
		}
	}
	if err := validation.ValidateNotEmpty(module, "Workload", c.Workload); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative(module, "QueueCapacity", c.QueueCapacity); err != nil {
		return err
	}
	if err := validation.ValidatePositive(module, "Tasks", c.Tasks); err != nil {
		return err
	}
	if err := validation.ValidatePositive(module, "Complexity", c.Complexity); err != nil {
		return err
	}
	if err := validation.ValidatePositive(module, "Producers", c.Producers); err != nil {
		return err
	}
	return validation.ValidateOneOf(module, "LogFormat", c.LogFormat, "text", "json")
}

// DefaultSweep returns 1, 2, 4, ... up to and including limit.
func DefaultSweep(limit int) []int {
	var sweep []int
	for n := 1; n < limit; n *= 2 {
		sweep = append(sweep, n)
	}
	return append(sweep, limit)
}

// ParseInts parses a comma-separated list such as "1,2,8".
func ParseInts(field, s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, bperrors.NewValidationError(module, field, s, "not an integer list").
				WithHint("use comma-separated integers, e.g. 1,2,4")
		}
		out = append(out, n)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, bperrors.NewValidationError(module, key, v, "not an integer")
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, bperrors.NewValidationError(module, key, v, "not a boolean")
	}
	return b, nil
}

func getEnvInts(key string, fallback []int) ([]int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return ParseInts(key, v)
}
