package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

var (
	// ErrRoundOver is returned by Step once the round has reached StageGameOver
	ErrRoundOver = errors.New("game: round is over")
	// ErrChipsNotConserved means chips were created or lost during a round
	ErrChipsNotConserved = errors.New("game: chip total changed during round")
)

// TableRules are the betting limits of the table
type TableRules struct {
	SmallBlind        int
	BigBlind          int
	MinimumBet        int
	MaximumBet        int
	MaxRaisesPerRound int
}

// ControllerOptions configures a Controller. Zero values get defaults:
// a real clock, a discarding logger, a fresh event bus and no pacing.
type ControllerOptions struct {
	Rules   TableRules
	AI      DecisionMaker
	Human   HumanAgent // nil lets the AI play the human seat
	Bus     EventBus
	Clock   quartz.Clock
	Pacing  PacingConfig
	Logger  *log.Logger
	RNG     *rand.Rand
	NewDeck func() *deck.Deck
}

// RoundResult is the outcome of a finished round
type RoundResult struct {
	RoundID   string
	Winners   []WinnerInfo
	PotAmount int
	Remainder int
}

// Controller drives one round through its stages
type Controller struct {
	rc      *RoundContext
	rules   TableRules
	ai      DecisionMaker
	human   HumanAgent
	bus     EventBus
	clock   quartz.Clock
	pacer   *Pacer
	logger  *log.Logger
	newDeck func() *deck.Deck

	startChips int
	result     *RoundResult
}

// NewController creates a controller for a round prepared at StageNewHand
func NewController(rc *RoundContext, opts ControllerOptions) *Controller {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Bus == nil {
		opts.Bus = NewEventBus()
	}
	if opts.Rules.MaxRaisesPerRound <= 0 {
		opts.Rules.MaxRaisesPerRound = DefaultMaxRaises
	}
	if opts.NewDeck == nil {
		rng := opts.RNG
		opts.NewDeck = func() *deck.Deck { return deck.New(rng) }
	}

	return &Controller{
		rc:         rc,
		rules:      opts.Rules,
		ai:         opts.AI,
		human:      opts.Human,
		bus:        opts.Bus,
		clock:      opts.Clock,
		pacer:      NewPacer(opts.Clock, opts.Pacing),
		logger:     opts.Logger.WithPrefix("controller").With("round", rc.Number),
		newDeck:    opts.NewDeck,
		startChips: rc.TotalChips(),
	}
}

// DefaultMaxRaises caps raises per betting round when none is configured
const DefaultMaxRaises = 4

// Round returns the round being played
func (c *Controller) Round() *RoundContext { return c.rc }

// Stage returns the current stage
func (c *Controller) Stage() Stage { return c.rc.Stage }

// Result returns the outcome once the round has reached StageGameOver
func (c *Controller) Result() *RoundResult { return c.result }

// Run steps the round until it is over
func (c *Controller) Run(ctx context.Context) (*RoundResult, error) {
	for c.rc.Stage != StageGameOver {
		if err := c.Step(ctx); err != nil {
			return nil, err
		}
	}
	return c.result, nil
}

// Step performs one stage transition
func (c *Controller) Step(ctx context.Context) error {
	rc := c.rc
	switch rc.Stage {
	case StageNewHand:
		rc.Deck = c.newDeck()
		rc.Community = rc.Community[:0]
		c.bus.Publish(NewHandStartEvent(c.clock.Now(), rc.ID, rc.Number, rc.Players))
		c.publishStage()
		rc.Stage = StageBlind
		return c.Step(ctx)

	case StageBlind:
		c.publishStage()
		if err := c.postBlinds(ctx); err != nil {
			return err
		}
		rc.Stage = StagePreFlop

	case StagePreFlop:
		c.publishStage()
		for _, p := range rc.Players {
			if err := c.dealCards(ctx, p, 2); err != nil {
				return err
			}
		}
		return c.bettingRound(ctx, StageFlop)

	case StageFlop:
		c.publishStage()
		if err := c.dealCards(ctx, nil, 3); err != nil {
			return err
		}
		return c.bettingRound(ctx, StageTurn)

	case StageTurn:
		c.publishStage()
		if err := c.dealCards(ctx, nil, 1); err != nil {
			return err
		}
		return c.bettingRound(ctx, StageRiver)

	case StageRiver:
		c.publishStage()
		if err := c.dealCards(ctx, nil, 1); err != nil {
			return err
		}
		return c.bettingRound(ctx, StageShowdown)

	case StageShowdown:
		c.publishStage()
		return c.showdown()

	case StageGameOver:
		return ErrRoundOver
	}
	return nil
}

func (c *Controller) publishStage() {
	c.logger.Debug("Stage", "stage", c.rc.Stage)
	c.bus.Publish(NewStageChangedEvent(c.clock.Now(), c.rc))
}

func (c *Controller) sound(s Sound) {
	c.bus.Publish(NewSoundEvent(c.clock.Now(), s))
}

// dealCards deals n cards to p, or to the board when p is nil
func (c *Controller) dealCards(ctx context.Context, p *Player, n int) error {
	for i := 0; i < n; i++ {
		card := c.rc.Deck.Deal()
		name := ""
		if p != nil {
			p.Hand = append(p.Hand, card)
			name = p.Name
		} else {
			c.rc.Community = append(c.rc.Community, card)
		}
		c.bus.Publish(NewCardsDealtEvent(c.clock.Now(), name, card, c.rc.Stage))
		c.sound(SoundCard)
		if err := c.pacer.WaitDeal(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) postBlinds(ctx context.Context) error {
	blinds := []struct {
		kind   ActionKind
		amount int
	}{
		{SmallBlind, c.rules.SmallBlind},
		{BigBlind, c.rules.BigBlind},
	}
	for _, b := range blinds {
		idx, err := NextPlayer(c.rc.Players)
		if err != nil {
			return fmt.Errorf("posting %s: %w", b.kind, err)
		}
		c.blind(c.rc.Players[idx], b.kind, b.amount)
		if err := c.pacer.WaitBlind(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) showdown() error {
	rc := c.rc
	var (
		best    evaluator.Score
		winners []*Player
		scores  = make(map[*Player]evaluator.Score)
	)

	for _, p := range rc.ActivePlayers() {
		var s evaluator.Score
		if len(rc.Community) > 0 {
			cards := append(append([]deck.Card(nil), p.Hand...), rc.Community...)
			var err error
			if s, err = evaluator.BestHandScore(cards); err != nil {
				return fmt.Errorf("scoring %s: %w", p.Name, err)
			}
		}
		scores[p] = s
		switch {
		case s.Value > best.Value || winners == nil:
			best = s
			winners = []*Player{p}
		case s.Value == best.Value:
			winners = append(winners, p)
		}
	}

	payout := rc.Pot.PayOut()
	result := &RoundResult{RoundID: rc.ID, PotAmount: payout}
	if len(winners) > 0 {
		share := payout / len(winners)
		result.Remainder = payout - share*len(winners)
		for _, w := range winners {
			w.Money += share
			result.Winners = append(result.Winners, WinnerInfo{
				Name:   w.Name,
				Score:  scores[w],
				Amount: share,
				Hand:   append([]deck.Card(nil), w.Hand...),
			})
			c.logger.Info("Winner", "player", w.Name, "amount", share, "hand", scores[w])
		}
	}
	if result.Remainder > 0 {
		c.logger.Warn("Split pot remainder dropped", "remainder", result.Remainder)
	}

	if got := rc.TotalChips() + result.Remainder; got != c.startChips {
		return fmt.Errorf("%w: started with %d, ended with %d", ErrChipsNotConserved, c.startChips, got)
	}

	c.result = result
	rc.Stage = StageGameOver
	c.sound(SoundLevelComplete)
	c.bus.Publish(NewRoundCompleteEvent(c.clock.Now(), rc, result))
	return nil
}
