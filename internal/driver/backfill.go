// Package driver decides when sessions start: the backfill scheduler
// walks a historical window day by day, the stream loop paces sessions
// against the wall clock.
package driver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/clock"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/config"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sim"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sink"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/stats"
)

// Session-per-day counts are drawn uniformly from this band around the
// configured average, scaled by the surge multiplier on surge days.
const (
	volumeBandLow  = 0.7
	volumeBandHigh = 1.3
)

// Backfill generates a historical window of sessions, oldest day first,
// delivering each day's events as one batch.
type Backfill struct {
	sim   *sim.Simulator
	out   sink.BatchWriter
	cfg   config.Backfill
	surge map[time.Weekday]bool
	clk   clock.Clock
	rng   *rand.Rand
	log   *zap.Logger
}

func NewBackfill(s *sim.Simulator, out sink.BatchWriter, cfg config.Backfill, clk clock.Clock, rng *rand.Rand, log *zap.Logger) (*Backfill, error) {
	surge, err := cfg.SurgeDays()
	if err != nil {
		return nil, err
	}
	return &Backfill{sim: s, out: out, cfg: cfg, surge: surge, clk: clk, rng: rng, log: log}, nil
}

// Run walks the window and returns the run summary. A delivery error
// aborts the run; there is no partial-day retry.
func (b *Backfill) Run(ctx context.Context) (stats.Summary, error) {
	start := b.clk.Now().UTC()
	coll := stats.NewCollector(start)

	b.log.Info("starting backfill",
		zap.Int("days", b.cfg.Days),
		zap.Int("avg_sessions_per_day", b.cfg.AvgSessionsPerDay))

	for day := b.cfg.Days; day >= 1; day-- {
		if err := ctx.Err(); err != nil {
			return coll.Summary(b.clk.Now()), err
		}

		dayStart := start.AddDate(0, 0, -day)
		n := b.sessionsFor(dayStart)

		var events []event.Event
		for i := 0; i < n; i++ {
			sessionEvents := b.sim.Session(b.sessionStart(dayStart))
			coll.RecordSession(sessionEvents)
			events = append(events, sessionEvents...)
		}

		if err := b.out.Deliver(ctx, events); err != nil {
			return coll.Summary(b.clk.Now()), fmt.Errorf("delivering day %s: %w", dayStart.Format("2006-01-02"), err)
		}

		b.log.Debug("day generated",
			zap.String("day", dayStart.Format("2006-01-02")),
			zap.Int("sessions", n),
			zap.Int("events", len(events)))
	}

	return coll.Summary(b.clk.Now()), nil
}

// sessionsFor draws the session count for one historical day.
func (b *Backfill) sessionsFor(day time.Time) int {
	m := 1.0
	if b.surge[day.Weekday()] {
		m = b.cfg.SurgeMultiplier
	}
	lo := int(float64(b.cfg.AvgSessionsPerDay) * volumeBandLow * m)
	hi := int(float64(b.cfg.AvgSessionsPerDay) * volumeBandHigh * m)
	if hi <= lo {
		return lo
	}
	return lo + b.rng.Intn(hi-lo+1)
}

// sessionStart picks a start timestamp within the day: the hour from the
// configured weight table, minute and second uniform.
func (b *Backfill) sessionStart(day time.Time) time.Time {
	h := weightedHour(b.rng, b.cfg.HourWeights)
	return time.Date(day.Year(), day.Month(), day.Day(), h, b.rng.Intn(60), b.rng.Intn(60), 0, day.Location())
}

// weightedHour picks an hour of day proportionally to its weight.
func weightedHour(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for h, w := range weights {
		r -= w
		if r < 0 {
			return h
		}
	}
	return len(weights) - 1
}
