package driver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/clock"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/config"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/ratelimit"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sim"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/sink"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/stats"
)

// Stream continuously generates sessions at wall-clock time and publishes
// their events one at a time with seasonality-aware pacing.
type Stream struct {
	sim     *sim.Simulator
	out     sink.Publisher
	cfg     config.Stream
	clk     clock.Clock
	rng     *rand.Rand
	limiter *ratelimit.Limiter
	log     *zap.Logger
}

func NewStream(s *sim.Simulator, out sink.Publisher, cfg config.Stream, clk clock.Clock, rng *rand.Rand, log *zap.Logger) *Stream {
	return &Stream{
		sim:     s,
		out:     out,
		cfg:     cfg,
		clk:     clk,
		rng:     rng,
		limiter: ratelimit.New(cfg.MaxEventsPerSec),
		log:     log,
	}
}

// Run loops until ctx is cancelled. Delivery errors are logged and the
// loop continues after the configured backoff; event loss for the failed
// iteration is accepted.
func (s *Stream) Run(ctx context.Context) stats.Summary {
	coll := stats.NewCollector(s.clk.Now())
	s.log.Info("starting event stream",
		zap.Int("peak_start_hour", s.cfg.PeakStartHour),
		zap.Int("peak_end_hour", s.cfg.PeakEndHour))

	for {
		if ctx.Err() != nil {
			return coll.Summary(s.clk.Now())
		}
		if err := s.iterate(ctx, coll); err != nil {
			if ctx.Err() != nil {
				return coll.Summary(s.clk.Now())
			}
			s.log.Error("session iteration failed", zap.Error(err))
			if s.clk.Sleep(ctx, s.cfg.ErrorBackoff) != nil {
				return coll.Summary(s.clk.Now())
			}
		}
	}
}

// iterate generates one session and publishes its events with pacing.
func (s *Stream) iterate(ctx context.Context, coll *stats.Collector) error {
	events := s.sim.Session(s.clk.Now())

	s.log.Debug("publishing session",
		zap.String("session_id", events[0].SessionID),
		zap.Int("events", len(events)))

	for _, e := range events {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := s.out.Publish(ctx, e); err != nil {
			return fmt.Errorf("publishing event: %w", err)
		}
		if err := s.clk.Sleep(ctx, s.pause()); err != nil {
			return err
		}
	}

	coll.RecordSession(events)
	return nil
}

// pause samples the inter-event delay: short inside the peak window,
// longer off-peak.
func (s *Stream) pause() time.Duration {
	h := s.clk.Now().Hour()
	if h >= s.cfg.PeakStartHour && h <= s.cfg.PeakEndHour {
		return randDuration(s.rng, s.cfg.PeakPauseMin, s.cfg.PeakPauseMax)
	}
	return randDuration(s.rng, s.cfg.OffPeakPauseMin, s.cfg.OffPeakPauseMax)
}

func randDuration(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}
