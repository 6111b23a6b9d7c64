// Package config handles YAML configuration parsing for the generators.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sim"
)

// Config is the root configuration structure shared by the generator CLIs.
type Config struct {
	Catalog       string        `yaml:"catalog"`
	Seed          int64         `yaml:"seed"` // 0 = time-based
	Probabilities Probabilities `yaml:"probabilities"`
	Backfill      Backfill      `yaml:"backfill"`
	Stream        Stream        `yaml:"stream"`
	Sink          Sink          `yaml:"sink"`
}

// Probabilities are the user-behavior branch probabilities.
type Probabilities struct {
	AddToCart      float64 `yaml:"add_to_cart"`
	Checkout       float64 `yaml:"checkout"`
	ReturnItem     float64 `yaml:"return_item"`
	RepeatUser     float64 `yaml:"repeat_user"`
	RepeatPurchase float64 `yaml:"repeat_purchase"`
	OnSale         float64 `yaml:"on_sale"`
	Review         float64 `yaml:"review"`
}

// Backfill configures the historical one-shot generator.
type Backfill struct {
	Days              int      `yaml:"days"`
	AvgSessionsPerDay int      `yaml:"avg_sessions_per_day"`
	SurgeWeekdays     []string `yaml:"surge_weekdays"`
	SurgeMultiplier   float64  `yaml:"surge_multiplier"`
	// HourWeights is a 24-entry relative weight table for session start
	// hours; heavier entries favor evening traffic by default.
	HourWeights []int `yaml:"hour_weights"`
	UserPool    int   `yaml:"user_pool"`
}

// Stream configures the continuous generator.
type Stream struct {
	PeakStartHour   int           `yaml:"peak_start_hour"`
	PeakEndHour     int           `yaml:"peak_end_hour"`
	PeakPauseMin    time.Duration `yaml:"peak_pause_min"`
	PeakPauseMax    time.Duration `yaml:"peak_pause_max"`
	OffPeakPauseMin time.Duration `yaml:"off_peak_pause_min"`
	OffPeakPauseMax time.Duration `yaml:"off_peak_pause_max"`
	ErrorBackoff    time.Duration `yaml:"error_backoff"`
	MemoryCapacity  int           `yaml:"memory_capacity"`
	// MaxEventsPerSec caps the global emission rate; 0 = uncapped.
	MaxEventsPerSec int `yaml:"max_events_per_sec"`
	UserPool        int `yaml:"user_pool"`
}

// Sink selects and configures the event destination.
type Sink struct {
	Kind    string   `yaml:"kind"` // "stdout", "file" or "kafka"
	Path    string   `yaml:"path"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Catalog: "products.csv",
		Probabilities: Probabilities{
			AddToCart:      sim.DefaultProbAddToCart,
			Checkout:       sim.DefaultProbCheckout,
			ReturnItem:     sim.DefaultProbReturnItem,
			RepeatUser:     sim.DefaultProbRepeatUser,
			RepeatPurchase: sim.DefaultProbRepeatPurchase,
			OnSale:         sim.DefaultProbOnSale,
			Review:         sim.DefaultProbReview,
		},
		Backfill: Backfill{
			Days:              90,
			AvgSessionsPerDay: 250,
			SurgeWeekdays:     []string{"Friday", "Saturday"},
			SurgeMultiplier:   1.5,
			HourWeights:       defaultHourWeights(),
			UserPool:          250,
		},
		Stream: Stream{
			PeakStartHour:   18,
			PeakEndHour:     22,
			PeakPauseMin:    100 * time.Millisecond,
			PeakPauseMax:    500 * time.Millisecond,
			OffPeakPauseMin: 800 * time.Millisecond,
			OffPeakPauseMax: 2500 * time.Millisecond,
			ErrorBackoff:    5 * time.Second,
			MemoryCapacity:  sim.DefaultMemoryCapacity,
			UserPool:        500,
		},
		Sink: Sink{Kind: "stdout"},
	}
}

// defaultHourWeights favors afternoon and evening traffic: overnight
// hours weigh 1, morning 2, midday 4, evening 8, late night 2.
func defaultHourWeights() []int {
	weights := make([]int, 24)
	for h := range weights {
		switch {
		case h < 8:
			weights[h] = 1
		case h < 12:
			weights[h] = 2
		case h < 16:
			weights[h] = 4
		case h < 22:
			weights[h] = 8
		default:
			weights[h] = 2
		}
	}
	return weights
}

// Load reads a YAML configuration file over the defaults and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides deployment-specific sink settings from the
// environment (typically a .env file loaded by the CLI).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CLICKSTREAM_KAFKA_BROKERS"); v != "" {
		c.Sink.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKSTREAM_KAFKA_TOPIC"); v != "" {
		c.Sink.Topic = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("catalog path is required")
	}

	probs := map[string]float64{
		"add_to_cart":     c.Probabilities.AddToCart,
		"checkout":        c.Probabilities.Checkout,
		"return_item":     c.Probabilities.ReturnItem,
		"repeat_user":     c.Probabilities.RepeatUser,
		"repeat_purchase": c.Probabilities.RepeatPurchase,
		"on_sale":         c.Probabilities.OnSale,
		"review":          c.Probabilities.Review,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("probability %s must be in [0, 1], got %v", name, v)
		}
	}

	b := c.Backfill
	if b.Days < 1 {
		return fmt.Errorf("backfill days must be >= 1, got %d", b.Days)
	}
	if b.AvgSessionsPerDay < 1 {
		return fmt.Errorf("avg_sessions_per_day must be >= 1, got %d", b.AvgSessionsPerDay)
	}
	if b.SurgeMultiplier < 1 {
		return fmt.Errorf("surge_multiplier must be >= 1, got %v", b.SurgeMultiplier)
	}
	if len(b.HourWeights) != 24 {
		return fmt.Errorf("hour_weights must have 24 entries, got %d", len(b.HourWeights))
	}
	total := 0
	for h, w := range b.HourWeights {
		if w < 0 {
			return fmt.Errorf("hour_weights[%d] must be >= 0, got %d", h, w)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("hour_weights must not all be zero")
	}
	if b.UserPool < 1 {
		return fmt.Errorf("backfill user_pool must be >= 1, got %d", b.UserPool)
	}
	if _, err := b.SurgeDays(); err != nil {
		return err
	}

	s := c.Stream
	if s.PeakStartHour < 0 || s.PeakStartHour > 23 || s.PeakEndHour < 0 || s.PeakEndHour > 23 {
		return fmt.Errorf("peak hours must be in [0, 23]")
	}
	if s.PeakStartHour > s.PeakEndHour {
		return fmt.Errorf("peak_start_hour %d after peak_end_hour %d", s.PeakStartHour, s.PeakEndHour)
	}
	if s.PeakPauseMin < 0 || s.PeakPauseMax < s.PeakPauseMin {
		return fmt.Errorf("peak pause range [%v, %v] is invalid", s.PeakPauseMin, s.PeakPauseMax)
	}
	if s.OffPeakPauseMin < 0 || s.OffPeakPauseMax < s.OffPeakPauseMin {
		return fmt.Errorf("off-peak pause range [%v, %v] is invalid", s.OffPeakPauseMin, s.OffPeakPauseMax)
	}
	if s.ErrorBackoff < 0 {
		return fmt.Errorf("error_backoff must be >= 0, got %v", s.ErrorBackoff)
	}
	if s.MemoryCapacity < 1 {
		return fmt.Errorf("memory_capacity must be >= 1, got %d", s.MemoryCapacity)
	}
	if s.MaxEventsPerSec < 0 {
		return fmt.Errorf("max_events_per_sec must be >= 0, got %d", s.MaxEventsPerSec)
	}
	if s.UserPool < 1 {
		return fmt.Errorf("stream user_pool must be >= 1, got %d", s.UserPool)
	}

	switch c.Sink.Kind {
	case "stdout":
	case "file":
		if c.Sink.Path == "" {
			return fmt.Errorf("file sink requires a path")
		}
	case "kafka":
		if len(c.Sink.Brokers) == 0 || c.Sink.Topic == "" {
			return fmt.Errorf("kafka sink requires brokers and a topic")
		}
	default:
		return fmt.Errorf("unknown sink kind %q (use stdout, file or kafka)", c.Sink.Kind)
	}

	return nil
}

// SurgeDays parses the configured surge weekday names.
func (b Backfill) SurgeDays() (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(b.SurgeWeekdays))
	for _, name := range b.SurgeWeekdays {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		days[day] = true
	}
	return days, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// BackfillParams maps the configuration onto simulator parameters for the
// historical variant.
func (c *Config) BackfillParams() sim.Params {
	p := sim.BackfillParams()
	p.ProbAddToCart = c.Probabilities.AddToCart
	p.ProbCheckout = c.Probabilities.Checkout
	p.ProbReturnItem = c.Probabilities.ReturnItem
	p.ProbOnSale = c.Probabilities.OnSale
	p.UserPool = c.Backfill.UserPool
	return p
}

// StreamParams maps the configuration onto simulator parameters for the
// continuous variant.
func (c *Config) StreamParams() sim.Params {
	p := sim.StreamParams()
	p.ProbAddToCart = c.Probabilities.AddToCart
	p.ProbCheckout = c.Probabilities.Checkout
	p.ProbReturnItem = c.Probabilities.ReturnItem
	p.ProbRepeatUser = c.Probabilities.RepeatUser
	p.ProbRepeatPurchase = c.Probabilities.RepeatPurchase
	p.ProbOnSale = c.Probabilities.OnSale
	p.ProbReview = c.Probabilities.Review
	p.UserPool = c.Stream.UserPool
	return p
}
