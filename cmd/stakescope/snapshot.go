package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stakeScope/internal/config"
	"stakeScope/internal/storage"
)

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSnapshot(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, closeClient, err := newBuilder(ctx, cfg.Config, cfg.Errors, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	logger.Info("snapshot start",
		zap.String("pool", cfg.Pool.String()),
		zap.String("program", cfg.Program.String()),
		zap.Uint8("decimals", cfg.Decimals),
		zap.Duration("rpc_timeout", cfg.RPCTimeout),
		zap.Bool("parallel_fetch", cfg.ParallelFetch),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
	)

	snap, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	if cfg.Out != "" {
		if err := storage.WriteJSONFile(cfg.Out, snap); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(snap)
}
