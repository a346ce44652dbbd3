package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movienest/internal/catalog"
	"movienest/internal/config"
	"movienest/internal/omdb"
	"movienest/internal/web"
	"movienest/pkg/logger"
)

func main() {
	boot := logger.New("info", "console")
	if err := config.LoadDotEnv(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := datasetSource(cfg.Dataset)
	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	table, err := catalog.Load(loadCtx, src)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading dataset")
	}
	log.Info().Str("source", src.Name()).Int("rows", table.Len()).Msg("dataset loaded")

	if cfg.OMDb.APIKey == "" {
		log.Warn().Msg("OMDB_API_KEY not set; movie details will be unavailable")
	}
	client := omdb.NewClient(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, cfg.OMDb.Timeout, log)
	memo := omdb.NewMemo(client, cfg.Cache.Size, cfg.Cache.TTL)

	srv, err := web.NewServer(table, memo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build web server")
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", httpSrv.Addr).Msg("movienest listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func datasetSource(cfg config.DatasetConfig) catalog.Source {
	switch cfg.Source {
	case config.SourcePostgres:
		return catalog.PostgresSource{URL: cfg.DBURL, Table: cfg.Table}
	case config.SourceScylla:
		return catalog.ScyllaSource{
			Hosts:       cfg.ScyllaHosts,
			Port:        cfg.ScyllaPort,
			Keyspace:    cfg.ScyllaKeyspace,
			Table:       cfg.Table,
			Consistency: cfg.ScyllaConsistency,
			Timeout:     10 * time.Second,
		}
	default:
		return catalog.FileSource{Path: cfg.Path}
	}
}
