package httpapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
	MetricsPath string
}

// NewServer wires the staking handler, health check and metrics endpoint
// behind CORS.
func NewServer(cfg ServerConfig, staking http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/api/staking", staking)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsPath != "" {
		mux.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           newCORS(cfg.CORSOrigins).Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})
}
