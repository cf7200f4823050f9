package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
	flags.String("rpc", DefaultRPC, "")
	flags.String("pool", DefaultPool, "")
	flags.Int("decimals", DefaultDecimals, "")
	flags.String("expiry", DefaultExpiry, "")
	flags.Duration("rpc-timeout", DefaultRPCTimeout, "")
	flags.Bool("parallel-fetch", false, "")
	flags.String("out", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadSnapshotDefaults(t *testing.T) {
	cfg, err := LoadSnapshot("", snapshotFlags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultRPC, cfg.RPCURL)
	assert.Equal(t, DefaultPool, cfg.Pool.String())
	assert.Equal(t, DefaultProgram, cfg.Program.String())
	assert.Equal(t, uint8(9), cfg.Decimals)
	assert.Equal(t, time.Date(2027, 1, 26, 5, 0, 0, 0, time.UTC), cfg.Expiry)
	assert.Equal(t, 15*time.Second, cfg.RPCTimeout)
	assert.False(t, cfg.ParallelFetch)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.Out)
	assert.True(t, cfg.Pretty)
}

func TestLoadSnapshotFlagsOverride(t *testing.T) {
	cfg, err := LoadSnapshot("", snapshotFlags(t,
		"--rpc", "http://localhost:8899",
		"--decimals", "6",
		"--parallel-fetch",
		"--rpc-timeout", "2s",
		"--out", "snap.json",
	))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8899", cfg.RPCURL)
	assert.Equal(t, uint8(6), cfg.Decimals)
	assert.True(t, cfg.ParallelFetch)
	assert.Equal(t, 2*time.Second, cfg.RPCTimeout)
	assert.Equal(t, "snap.json", cfg.Out)
}

func TestLoadSnapshotEnv(t *testing.T) {
	t.Setenv("STAKESCOPE_RPC_RATE", "5")
	t.Setenv("STAKESCOPE_EXPIRY", "1800000000")

	cfg, err := LoadSnapshot("", snapshotFlags(t))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.RPCRate)
	assert.Equal(t, time.Unix(1800000000, 0).UTC(), cfg.Expiry)
}

func TestLoadSnapshotConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stakescope.yaml")
	content := "rpc: http://example.invalid\ndecimals: 0\nerrors: ./data/errors.jsonl\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadSnapshot(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://example.invalid", cfg.RPCURL)
	assert.Equal(t, uint8(0), cfg.Decimals)
	assert.Equal(t, "./data/errors.jsonl", cfg.Errors)
}

func TestLoadSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad pool", args: []string{"--pool", "not-base58-0OIl"}},
		{name: "empty rpc", args: []string{"--rpc", " "}},
		{name: "bad expiry", args: []string{"--expiry", "next tuesday"}},
		{name: "empty expiry", args: []string{"--expiry", " "}},
		{name: "negative decimals", args: []string{"--decimals", "-1"}},
		{name: "decimals too large", args: []string{"--decimals", "300"}},
		{name: "zero timeout", args: []string{"--rpc-timeout", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot("", snapshotFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLoadServe(t *testing.T) {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	flags.StringSlice("cors-origins", []string{"*"}, "")
	flags.Duration("cache-ttl", 30*time.Second, "")
	require.NoError(t, flags.Parse([]string{"--addr", "127.0.0.1:9000", "--cors-origins", "https://a.example, https://b.example"}))

	cfg, err := LoadServe("", flags)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.Equal(t, DefaultPool, cfg.Pool.String())
}

func TestLoadServeRejectsBadMetricsPath(t *testing.T) {
	t.Setenv("STAKESCOPE_METRICS_PATH", "metrics")

	_, err := LoadServe("", nil)
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty", input: "", want: time.Time{}},
		{name: "unix seconds", input: "1700000000", want: time.Unix(1700000000, 0).UTC()},
		{name: "rfc3339", input: "2027-01-26T05:00:00Z", want: time.Date(2027, 1, 26, 5, 0, 0, 0, time.UTC)},
		{name: "rfc3339 offset", input: "2027-01-26T07:00:00+02:00", want: time.Date(2027, 1, 26, 5, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}
