package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stakescope"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of ledger RPC operations.",
	}, []string{"operation", "endpoint", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "endpoint", "status"})
)

// RPCClient tracks metrics for calls to the ledger RPC endpoint.
type RPCClient struct {
	endpoint string
}

// NewRPCClient constructs a metrics collector for RPC calls. The endpoint
// label should be a short name, never a URL carrying credentials.
func NewRPCClient(endpoint string) *RPCClient {
	if endpoint == "" {
		endpoint = "unknown"
	}
	return &RPCClient{endpoint: endpoint}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)

	rpcRequestsTotal.WithLabelValues(operation, m.endpoint, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.endpoint, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
