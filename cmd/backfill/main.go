// Command backfill generates a historical window of clickstream events
// in one shot and delivers it day by day to the configured sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/catalog"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/clock"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/config"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/driver"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/logging"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sim"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sink"
)

const (
	ExitSuccess   = 0
	ExitRunFailed = 1
	ExitError     = 2
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	catalogPath := flag.String("catalog", "", "path to the product catalog CSV (overrides config)")
	days := flag.Int("days", 0, "number of historical days to generate (overrides config)")
	sessions := flag.Int("sessions", 0, "average sessions per day (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	output := flag.String("output", "text", "summary format: text, json")
	verbose := flag.Bool("verbose", false, "enable debug output")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
	}
	cfg.ApplyEnv()

	// CLI flags override config file values.
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if *days > 0 {
		cfg.Backfill.Days = *days
	}
	if *sessions > 0 {
		cfg.Backfill.AvgSessionsPerDay = *sessions
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}

	log, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: initializing logger: %v\n", err)
		os.Exit(ExitError)
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		log.Error("loading catalog", zap.Error(err))
		os.Exit(ExitError)
	}

	rng := rand.New(rand.NewSource(effectiveSeed(cfg.Seed)))

	s, err := sim.New(cat, nil, cfg.BackfillParams(), rng)
	if err != nil {
		log.Error("configuring simulator", zap.Error(err))
		os.Exit(ExitError)
	}

	out, err := sink.Open(cfg.Sink)
	if err != nil {
		log.Error("opening sink", zap.Error(err))
		os.Exit(ExitError)
	}
	defer out.Close()

	b, err := driver.NewBackfill(s, out, cfg.Backfill, clock.Real{}, rng, log)
	if err != nil {
		log.Error("configuring backfill", zap.Error(err))
		os.Exit(ExitError)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received interrupt signal, shutting down")
		cancel()
	}()

	summary, runErr := b.Run(ctx)

	if *output == "json" {
		if err := summary.WriteJSON(os.Stdout); err != nil {
			log.Error("writing summary", zap.Error(err))
		}
	} else {
		summary.WriteText(os.Stderr)
	}

	if runErr != nil && ctx.Err() == nil {
		log.Error("backfill failed", zap.Error(runErr))
		os.Exit(ExitRunFailed)
	}
	os.Exit(ExitSuccess)
}

func effectiveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
