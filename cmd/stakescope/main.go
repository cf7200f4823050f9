package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stakeScope/internal/chain"
	"stakeScope/internal/config"
	"stakeScope/internal/metrics"
	"stakeScope/internal/snapshot"
	"stakeScope/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:          "stakescope",
		Short:        "Staking pool snapshot decoder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the pool and its stakers once and print the snapshot",
		RunE:  runSnapshot,
	}

	addCommonFlags(snapshotCmd.Flags())
	snapshotCmd.Flags().String("out", "", "write the snapshot JSON to this path instead of stdout")
	snapshotCmd.Flags().String("errors", "", "append skipped accounts to this JSONL file")
	snapshotCmd.Flags().Bool("pretty", true, "indent stdout JSON")

	root.AddCommand(snapshotCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots over HTTP",
		RunE:  runServe,
	}

	addCommonFlags(serveCmd.Flags())
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Duration("cache-ttl", 30*time.Second, "how long a snapshot is served from cache (0 disables)")
	serveCmd.Flags().Int("cache-size", 16, "maximum cached snapshots")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins (comma-separated)")
	serveCmd.Flags().String("metrics-path", "/metrics", "Prometheus metrics path (empty disables)")
	serveCmd.Flags().String("errors", "", "append skipped accounts to this JSONL file")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(flags *pflag.FlagSet) {
	flags.String("rpc", config.DefaultRPC, "Solana JSON-RPC URL")
	flags.String("pool", config.DefaultPool, "stake pool address")
	flags.String("program", config.DefaultProgram, "staking program address")
	flags.Int("decimals", config.DefaultDecimals, "stake mint decimals")
	flags.String("expiry", config.DefaultExpiry, "pool expiry (unix seconds or RFC3339)")
	flags.Duration("rpc-timeout", config.DefaultRPCTimeout, "deadline for each RPC call")
	flags.Int("rpc-rate", 0, "maximum RPC calls per second (0 means unlimited)")
	flags.Bool("parallel-fetch", false, "issue the two RPC calls concurrently")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

// newBuilder connects the chain client and wires a snapshot builder for cfg.
// The returned close function releases the client.
func newBuilder(ctx context.Context, cfg config.Config, errorsPath string, logger *zap.Logger) (*snapshot.Builder, func(), error) {
	chainClient, err := chain.NewClient(ctx, cfg.RPCURL, chain.Options{
		Timeout:   cfg.RPCTimeout,
		RateLimit: cfg.RPCRate,
		Observer:  metrics.NewRPCClient("solana"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}

	var sink storage.DecodeErrorSink
	if errorsPath != "" {
		sink = storage.NewJsonlStorage(errorsPath)
	}

	builder := snapshot.NewBuilder(snapshot.Config{
		Pool:          cfg.Pool,
		Program:       cfg.Program,
		Decimals:      cfg.Decimals,
		Expiry:        cfg.Expiry,
		ParallelFetch: cfg.ParallelFetch,
	}, chainClient, sink, metrics.NewSnapshotBuilds(cfg.Pool.String()), logger)

	return builder, chainClient.Close, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
