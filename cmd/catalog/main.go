// Command catalog generates a synthetic product catalog CSV for the
// event generators to sample from.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/catalog"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/logging"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

func main() {
	count := flag.Int("count", 500, "number of products to generate")
	out := flag.String("out", "products.csv", "output CSV path")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	verbose := flag.Bool("verbose", false, "enable debug output")
	flag.Parse()

	if *count < 1 {
		fmt.Fprintln(os.Stderr, "error: --count must be >= 1")
		os.Exit(ExitError)
	}

	log, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: initializing logger: %v\n", err)
		os.Exit(ExitError)
	}
	defer log.Sync()

	seedVal := *seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedVal))

	products := catalog.Generate(*count, rng)
	if err := catalog.WriteCSV(*out, products); err != nil {
		log.Error("writing catalog", zap.Error(err))
		os.Exit(ExitError)
	}

	log.Info("catalog written",
		zap.String("path", *out),
		zap.Int("products", len(products)),
		zap.Int64("seed", seedVal))
	os.Exit(ExitSuccess)
}
