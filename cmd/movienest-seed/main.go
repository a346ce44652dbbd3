// Command movienest-seed loads the movie CSV into the Postgres or Scylla
// table that movienest reads when DATASET_SOURCE is not "file".
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movienest/internal/catalog"
	"movienest/internal/config"
	"movienest/pkg/logger"
)

func main() {
	truncate := flag.Bool("truncate", false, "empty the postgres table before loading")
	flag.Parse()

	boot := logger.New("info", "console")
	if err := config.LoadDotEnv(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Dataset.Source == config.SourceFile {
		log.Fatal().Msg("DATASET_SOURCE is file; set postgres or scylla to seed a table")
	}

	f, err := os.Open(cfg.Dataset.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("open dataset")
	}
	rows, err := catalog.ReadCSV(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("read dataset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	start := time.Now()
	var written int64
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		written, err = catalog.SeedPostgres(ctx, cfg.Dataset.DBURL, cfg.Dataset.Table, rows, *truncate)
	case config.SourceScylla:
		if *truncate {
			log.Warn().Msg("-truncate is ignored for scylla")
		}
		var n int
		n, err = catalog.SeedScylla(ctx, catalog.ScyllaSource{
			Hosts:       cfg.Dataset.ScyllaHosts,
			Port:        cfg.Dataset.ScyllaPort,
			Keyspace:    cfg.Dataset.ScyllaKeyspace,
			Table:       cfg.Dataset.Table,
			Consistency: cfg.Dataset.ScyllaConsistency,
			Timeout:     10 * time.Second,
		}, cfg.Dataset.ScyllaReplication, rows)
		written = int64(n)
	}
	if err != nil {
		log.Fatal().Err(err).Int64("written", written).Msg("seed failed")
	}
	log.Info().
		Str("source", string(cfg.Dataset.Source)).
		Str("table", cfg.Dataset.Table).
		Int64("rows", written).
		Dur("took", time.Since(start)).
		Msg("dataset seeded")
}
