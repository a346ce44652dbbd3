// Command movienest-healthcheck probes the local /health endpoint and exits
// non-zero when it is not healthy. Meant for container HEALTHCHECK lines.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"movienest/internal/config"
	"movienest/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if !probe(context.Background(), &http.Client{Timeout: cfg.CheckTimeout}, healthURL(cfg), log) {
		os.Exit(1)
	}
}

// loadConfig reads .env (or the given files) before the environment, the same
// way the server does, so both agree on PORT.
func loadConfig(dotenv ...string) (config.Config, error) {
	if err := config.LoadDotEnv(dotenv...); err != nil {
		return config.Config{}, err
	}
	return config.LoadFromEnv()
}

func healthURL(cfg config.Config) string {
	return "http://127.0.0.1:" + cfg.Port + "/health"
}

func probe(ctx context.Context, client *http.Client, url string, log zerolog.Logger) bool {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error().Err(err).Msg("build request")
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("health check failed")
		return false
	}
	defer resp.Body.Close()
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	ev := log.Info()
	if !ok {
		ev = log.Error().Err(fmt.Errorf("status %d", resp.StatusCode))
	}
	ev.Str("url", url).Dur("latency", time.Since(start)).Msg("health check")
	return ok
}
