// Command stream continuously generates clickstream sessions in real
// time and publishes their events to the configured sink until
// interrupted.
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
	ExitSuccess = 0
	ExitError   = 2
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	catalogPath := flag.String("catalog", "", "path to the product catalog CSV (overrides config)")
	rate := flag.Int("rate", 0, "max events per second, 0 = uncapped (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	output := flag.String("output", "text", "summary format: text, json")
	verbose := flag.Bool("verbose", false, "enable debug output")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

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

	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if *rate > 0 {
		cfg.Stream.MaxEventsPerSec = *rate
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

	seedVal := cfg.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedVal))

	memory := sim.NewMemory(cfg.Stream.MemoryCapacity)
	s, err := sim.New(cat, memory, cfg.StreamParams(), rng)
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

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received interrupt signal, shutting down")
		cancel()
	}()

	stream := driver.NewStream(s, out, cfg.Stream, clock.Real{}, rng, log)
	summary := stream.Run(ctx)

	if *output == "json" {
		if err := summary.WriteJSON(os.Stdout); err != nil {
			log.Error("writing summary", zap.Error(err))
		}
	} else {
		summary.WriteText(os.Stderr)
	}
	os.Exit(ExitSuccess)
}
