package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stakeScope/internal/chain"
)

const (
	DefaultRPC        = "https://api.mainnet-beta.solana.com"
	DefaultPool       = "2uBHsavcfVQAgs8nMuMwogaap9BV1MwQuADearz1e6Kg"
	DefaultProgram    = "STAKEvGqQTtzJZH6BWDcbpzXXn2BBerPAgQ3EGLN2GH"
	DefaultDecimals   = 9
	DefaultExpiry     = "2027-01-26T05:00:00Z"
	DefaultRPCTimeout = 15 * time.Second
)

// Config holds the settings shared by every command.
type Config struct {
	RPCURL        string
	Pool          solana.PublicKey
	Program       solana.PublicKey
	Decimals      uint8
	Expiry        time.Time
	RPCTimeout    time.Duration
	RPCRate       int
	ParallelFetch bool
	LogLevel      string
}

// newViper merges config file, environment variables, and flags.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("STAKESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", DefaultRPC)
	v.SetDefault("pool", DefaultPool)
	v.SetDefault("program", DefaultProgram)
	v.SetDefault("decimals", DefaultDecimals)
	v.SetDefault("expiry", DefaultExpiry)
	v.SetDefault("rpc-timeout", DefaultRPCTimeout)
	v.SetDefault("rpc-rate", 0)
	v.SetDefault("parallel-fetch", false)
	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadCommon(v *viper.Viper) (Config, error) {
	cfg := Config{
		RPCURL:        strings.TrimSpace(v.GetString("rpc")),
		RPCTimeout:    v.GetDuration("rpc-timeout"),
		RPCRate:       v.GetInt("rpc-rate"),
		ParallelFetch: v.GetBool("parallel-fetch"),
		LogLevel:      v.GetString("log-level"),
	}

	if cfg.RPCURL == "" {
		return Config{}, fmt.Errorf("rpc url is required")
	}
	if cfg.RPCTimeout <= 0 {
		return Config{}, fmt.Errorf("rpc-timeout must be positive")
	}
	if cfg.RPCRate < 0 {
		return Config{}, fmt.Errorf("rpc-rate must not be negative")
	}

	var err error
	if cfg.Pool, err = chain.ParsePublicKey(v.GetString("pool")); err != nil {
		return Config{}, fmt.Errorf("parse pool: %w", err)
	}
	if cfg.Program, err = chain.ParsePublicKey(v.GetString("program")); err != nil {
		return Config{}, fmt.Errorf("parse program: %w", err)
	}

	decimals := v.GetInt("decimals")
	if decimals < 0 || decimals > math.MaxUint8 {
		return Config{}, fmt.Errorf("decimals out of range: %d", decimals)
	}
	cfg.Decimals = uint8(decimals)

	if cfg.Expiry, err = ParseTimestamp(v.GetString("expiry")); err != nil {
		return Config{}, fmt.Errorf("parse expiry: %w", err)
	}
	if cfg.Expiry.IsZero() {
		return Config{}, fmt.Errorf("expiry is required")
	}

	return cfg, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339) into UTC.
// An empty input yields the zero time.
func ParseTimestamp(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(val, 0).UTC(), nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, err
	}
	return tm.UTC(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
