// Package httpapi serves staking snapshots over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"stakeScope/internal/model"
)

const (
	cacheControl   = "s-maxage=30, stale-while-revalidate=60"
	failureMessage = "Failed to fetch staking data"

	// DefaultBuildTimeout bounds a shared build once it is detached from the
	// request that started it.
	DefaultBuildTimeout = time.Minute
)

// SnapshotBuilder builds a fresh snapshot for one pool. snapshot.Builder implements it.
type SnapshotBuilder interface {
	Pool() solana.PublicKey
	Build(ctx context.Context) (model.Snapshot, error)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StakingHandler serves GET /api/staking.
type StakingHandler struct {
	builder      SnapshotBuilder
	cache        *snapshotCache
	group        singleflight.Group
	buildTimeout time.Duration
	logger       *zap.Logger
}

// NewStakingHandler creates the handler. A zero cacheSize or cacheTTL
// disables caching and every request builds a new snapshot.
func NewStakingHandler(builder SnapshotBuilder, cacheSize int, cacheTTL time.Duration, logger *zap.Logger) *StakingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StakingHandler{
		builder:      builder,
		cache:        newSnapshotCache(cacheSize, cacheTTL),
		buildTimeout: DefaultBuildTimeout,
		logger:       logger,
	}
}

func (h *StakingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)

	snap, err := h.snapshot(r.Context())
	if err != nil {
		h.logger.Error("staking api error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: failureMessage, Message: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, snap)
}

func (h *StakingHandler) snapshot(ctx context.Context) (model.Snapshot, error) {
	key := h.builder.Pool().String()
	if snap, ok := h.cache.Get(key); ok {
		return snap, nil
	}

	// The build outlives any single waiter; each waiter gives up on its own context.
	ch := h.group.DoChan(key, func() (interface{}, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.buildTimeout)
		defer cancel()

		snap, err := h.builder.Build(buildCtx)
		if err != nil {
			return nil, err
		}
		h.cache.Add(key, snap)
		return snap, nil
	})

	select {
	case <-ctx.Done():
		return model.Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Snapshot{}, res.Err
		}
		return res.Val.(model.Snapshot), nil
	}
}

func (h *StakingHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("write response failed", zap.Int("status", status), zap.Error(err))
	}
}
