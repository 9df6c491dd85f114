package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"fairvalue/backend-go/internal/config"
	"fairvalue/backend-go/internal/handlers"
	internalhttp "fairvalue/backend-go/internal/http"
	"fairvalue/backend-go/internal/logging"
	"fairvalue/backend-go/internal/services"
	"fairvalue/backend-go/internal/valuation"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	cache := services.NewCache(cfg)
	client := services.NewYahooClient(cfg, cache, log)
	pool := services.NewFetchPool(cfg.FetchWorkers)
	defer pool.Stop()
	resolver := services.NewResolver(client, pool, log)
	engine := valuation.NewEngine(valuation.DefaultProfiles())

	api := handlers.New(cfg, resolver, engine, client, log)
	h := internalhttp.NewRouter(cfg, api, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("fairvalue backend listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
