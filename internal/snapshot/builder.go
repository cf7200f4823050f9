// Package snapshot fetches a staking pool and its stake entries and turns
// them into a model.Snapshot.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stakeScope/internal/aggregate"
	"stakeScope/internal/chain"
	"stakeScope/internal/model"
	"stakeScope/internal/staking"
	"stakeScope/internal/storage"
)

// Fetcher is the subset of chain.Client a build needs.
type Fetcher interface {
	GetAccountInfo(ctx context.Context, address solana.PublicKey) (*chain.Account, error)
	GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...chain.Memcmp) ([]chain.Account, error)
}

// Observer records build outcomes. metrics.SnapshotBuilds implements it.
type Observer interface {
	ObserveBuild(err error, started time.Time)
	ObserveEntries(open, closed, skipped int)
	ObservePoolFallback()
}

// Config describes which pool to build and how to present it.
type Config struct {
	Pool          solana.PublicKey
	Program       solana.PublicKey
	Decimals      uint8
	Expiry        time.Time
	ParallelFetch bool
}

// Builder runs snapshot builds. Each Build is independent; a Builder keeps
// no state between builds and is safe for concurrent use.
type Builder struct {
	cfg        Config
	fetcher    Fetcher
	aggregator *aggregate.Aggregator
	sink       storage.DecodeErrorSink
	observer   Observer
	logger     *zap.Logger
	now        func() time.Time
}

// NewBuilder creates a Builder. sink and observer may be nil.
func NewBuilder(cfg Config, fetcher Fetcher, sink storage.DecodeErrorSink, observer Observer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		cfg:     cfg,
		fetcher: fetcher,
		aggregator: aggregate.NewAggregator(aggregate.Config{
			PoolAddress: cfg.Pool,
			Decimals:    cfg.Decimals,
			Expiry:      cfg.Expiry,
		}),
		sink:     sink,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Pool returns the pool address the builder serves.
func (b *Builder) Pool() solana.PublicKey {
	return b.cfg.Pool
}

// Build fetches and decodes the pool and its entries. It fails only when a
// remote call fails; malformed accounts degrade the snapshot instead.
func (b *Builder) Build(ctx context.Context) (snap model.Snapshot, err error) {
	started := time.Now()
	logger := b.logger.With(
		zap.String("build_id", uuid.NewString()),
		zap.String("pool", b.cfg.Pool.String()),
	)
	if b.observer != nil {
		defer func() { b.observer.ObserveBuild(err, started) }()
	}

	poolAccount, entryAccounts, err := b.fetch(ctx)
	if err != nil {
		logger.Error("snapshot fetch failed", zap.Error(err))
		return model.Snapshot{}, err
	}

	var decodeErrs []model.DecodeError

	pool, poolErr := b.decodePool(poolAccount)
	if poolErr != nil {
		if errors.Is(poolErr, staking.ErrAccountNotFound) {
			logger.Warn("pool account not found, using zero pool")
		} else {
			logger.Warn("pool decode failed, using zero pool", zap.Error(poolErr))
		}
		if b.observer != nil {
			b.observer.ObservePoolFallback()
		}
		decodeErrs = append(decodeErrs, b.poolDecodeError(poolAccount, poolErr))
	}

	batch := staking.DecodeEntries(entryAccounts, b.cfg.Pool)
	for _, decodeErr := range batch.Errors {
		logger.Warn("skip stake entry",
			zap.String("account", decodeErr.Account),
			zap.Int("index", decodeErr.Index),
			zap.Int("length", decodeErr.Length),
			zap.String("error", decodeErr.Error),
		)
	}
	decodeErrs = append(decodeErrs, batch.Errors...)

	if b.observer != nil {
		b.observer.ObserveEntries(len(batch.Open), batch.Closed, batch.Skipped())
	}
	if b.sink != nil && len(decodeErrs) > 0 {
		if sinkErr := b.sink.PutDecodeErrors(decodeErrs); sinkErr != nil {
			logger.Warn("write decode errors failed", zap.Error(sinkErr))
		}
	}

	snap = b.aggregator.Aggregate(pool, batch.Open, b.now())

	logger.Info("snapshot complete",
		zap.Int("total", batch.Total),
		zap.Int("decoded", batch.Decoded()),
		zap.Int("closed", batch.Closed),
		zap.Int("skipped", batch.Skipped()),
		zap.Int("stakers", len(snap.Stakers)),
		zap.Bool("pool_fallback", poolErr != nil),
		zap.Duration("duration", time.Since(started)),
	)

	return snap, nil
}

func (b *Builder) fetch(ctx context.Context) (*chain.Account, []chain.Account, error) {
	if !b.cfg.ParallelFetch {
		poolAccount, err := b.fetchPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		entryAccounts, err := b.fetchEntries(ctx)
		if err != nil {
			return nil, nil, err
		}
		return poolAccount, entryAccounts, nil
	}

	var (
		poolAccount   *chain.Account
		entryAccounts []chain.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		poolAccount, err = b.fetchPool(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entryAccounts, err = b.fetchEntries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return poolAccount, entryAccounts, nil
}

func (b *Builder) fetchPool(ctx context.Context) (*chain.Account, error) {
	account, err := b.fetcher.GetAccountInfo(ctx, b.cfg.Pool)
	if err != nil {
		return nil, fmt.Errorf("fetch stake pool: %w", err)
	}
	return account, nil
}

func (b *Builder) fetchEntries(ctx context.Context) ([]chain.Account, error) {
	accounts, err := b.fetcher.GetProgramAccounts(ctx, b.cfg.Program, staking.EntryFilters(b.cfg.Pool)...)
	if err != nil {
		return nil, fmt.Errorf("fetch stake entries: %w", err)
	}
	return accounts, nil
}

func (b *Builder) decodePool(account *chain.Account) (model.PoolRecord, error) {
	if account == nil {
		return staking.DecodePool(nil, false)
	}
	data, err := account.Data.Bytes()
	if err != nil {
		return model.PoolRecord{}, fmt.Errorf("decode stake pool: %w", err)
	}
	return staking.DecodePool(data, true)
}

func (b *Builder) poolDecodeError(account *chain.Account, err error) model.DecodeError {
	length := 0
	if account != nil {
		if data, dataErr := account.Data.Bytes(); dataErr == nil {
			length = len(data)
		}
	}
	return model.DecodeError{
		Kind:    staking.KindPool,
		Account: b.cfg.Pool.String(),
		Length:  length,
		Error:   err.Error(),
	}
}
