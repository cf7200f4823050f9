package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Config
	Addr        string
	CacheTTL    time.Duration
	CacheSize   int
	CORSOrigins []string
	MetricsPath string
	Errors      string
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"addr":         ":8080",
		"cache-ttl":    30 * time.Second,
		"cache-size":   16,
		"cors-origins": []string{"*"},
		"metrics-path": "/metrics",
		"errors":       "",
	})
	if err != nil {
		return ServeConfig{}, err
	}

	common, err := loadCommon(v)
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Config:      common,
		Addr:        v.GetString("addr"),
		CacheTTL:    v.GetDuration("cache-ttl"),
		CacheSize:   v.GetInt("cache-size"),
		CORSOrigins: getStringSlice(v, "cors-origins"),
		MetricsPath: v.GetString("metrics-path"),
		Errors:      v.GetString("errors"),
	}

	if cfg.Addr == "" {
		return ServeConfig{}, fmt.Errorf("addr is required")
	}
	if cfg.CacheTTL < 0 {
		return ServeConfig{}, fmt.Errorf("cache-ttl must not be negative")
	}
	if cfg.CacheSize <= 0 {
		return ServeConfig{}, fmt.Errorf("cache-size must be positive")
	}
	if cfg.MetricsPath != "" && !strings.HasPrefix(cfg.MetricsPath, "/") {
		return ServeConfig{}, fmt.Errorf("metrics-path must start with /")
	}

	return cfg, nil
}
