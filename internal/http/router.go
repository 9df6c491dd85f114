package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"fairvalue/backend-go/internal/config"
	"fairvalue/backend-go/internal/handlers"
)

// NewRouter wires the API routes and the bundled front-end behind the
// middleware chain.
func NewRouter(cfg config.Config, api *handlers.API, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", api.Evaluate)
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	h := http.Handler(mux)
	h = withRecovery(h, log)
	h = withLogging(h, log)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
