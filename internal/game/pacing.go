package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// PacingConfig sets the pauses between visible steps of a round. Zero
// values mean no pause, which is what headless play and tests use.
type PacingConfig struct {
	Deal   time.Duration
	Action time.Duration
	Blind  time.Duration
}

// DefaultPacing is the interactive table speed
func DefaultPacing() PacingConfig {
	return PacingConfig{
		Deal:   500 * time.Millisecond,
		Action: 500 * time.Millisecond,
		Blind:  time.Second,
	}
}

// Pacer waits on the injected clock so tests can advance time instead of sleeping
type Pacer struct {
	clock quartz.Clock
	cfg   PacingConfig
}

// NewPacer creates a pacer
func NewPacer(clock quartz.Clock, cfg PacingConfig) *Pacer {
	return &Pacer{clock: clock, cfg: cfg}
}

// WaitDeal pauses after a card is dealt
func (p *Pacer) WaitDeal(ctx context.Context) error { return p.wait(ctx, p.cfg.Deal) }

// WaitAction pauses after a player acts
func (p *Pacer) WaitAction(ctx context.Context) error { return p.wait(ctx, p.cfg.Action) }

// WaitBlind pauses after a blind is posted
func (p *Pacer) WaitBlind(ctx context.Context) error { return p.wait(ctx, p.cfg.Blind) }

func (p *Pacer) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := p.clock.NewTimer(d, "pacer")
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
