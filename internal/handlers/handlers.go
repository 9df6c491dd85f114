package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"fairvalue/backend-go/internal/config"
	"fairvalue/backend-go/internal/models"
	"fairvalue/backend-go/internal/valuation"
)

// TickerResolver is what the evaluate handler needs from the resolver.
type TickerResolver interface {
	Resolve(ctx context.Context, rawTicker string) (models.MarketSnapshot, error)
}

// Pinger reports upstream reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	cfg      config.Config
	resolver TickerResolver
	engine   *valuation.Engine
	upstream Pinger
	log      zerolog.Logger
}

func New(cfg config.Config, resolver TickerResolver, engine *valuation.Engine, upstream Pinger, log zerolog.Logger) *API {
	return &API{
		cfg:      cfg,
		resolver: resolver,
		engine:   engine,
		upstream: upstream,
		log:      log,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
