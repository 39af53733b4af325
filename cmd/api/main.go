package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"navigo_ranking/internal/adapters/geojson"
	server "navigo_ranking/internal/adapters/http_server"
	"navigo_ranking/internal/adapters/lta"
	"navigo_ranking/internal/adapters/observability"
	redisad "navigo_ranking/internal/adapters/redis"
	"navigo_ranking/internal/app"
	"navigo_ranking/internal/domain"
	"navigo_ranking/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// data sources
	datasets := geojson.New(cfg.DataDir)
	feed := lta.New(cfg.LTABase, cfg.LTAKey, cfg.FetchTimeout)

	// redis snapshot cache is optional; the directory runs without it
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; running without feed snapshots")
		} else {
			cache = rc
		}
		cancel()
	}

	dir := app.NewFacilityDirectory(datasets, feed, cache, cfg.SnapshotTTL, cfg.Workers)
	svc := app.NewRankingService(datasets, dir, app.NewScorer(nil))

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Str("data_dir", cfg.DataDir).Msg("ranking API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
