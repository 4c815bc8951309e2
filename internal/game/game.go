package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
)

// ErrGameOver is returned when a round is requested after the session ended
var ErrGameOver = errors.New("game: session is over")

// Options configures a session
type Options struct {
	Opponents     int
	StartingMoney int
	HumanName     string
	Rules         TableRules
	Pacing        PacingConfig
	AnimatePot    bool

	Human  HumanAgent    // nil lets the AI play every seat
	AI     DecisionMaker // nil uses an AIEngine
	Bus    EventBus
	Clock  quartz.Clock
	RNG    *rand.Rand
	Logger *log.Logger

	// NewDeck overrides deck creation, for stacked decks in tests
	NewDeck func() *deck.Deck
}

// Game is a multi-round session at one table
type Game struct {
	opts    Options
	players []*Player
	human   *Player
	logger  *log.Logger

	round  int
	over   bool
	winner *Player
	reason GameOverReason
}

// NewGame seats the human and the AI opponents with the starting stack
func NewGame(opts Options) (*Game, error) {
	if opts.Opponents < 1 {
		return nil, fmt.Errorf("game: need at least one opponent, got %d", opts.Opponents)
	}
	if opts.StartingMoney <= 0 {
		return nil, fmt.Errorf("game: starting money must be positive, got %d", opts.StartingMoney)
	}
	if opts.RNG == nil {
		return nil, errors.New("game: RNG is required")
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Bus == nil {
		opts.Bus = NewEventBus()
	}
	if opts.AI == nil {
		opts.AI = NewAIEngine(opts.RNG, opts.Rules.MinimumBet, opts.Logger)
	}
	if opts.HumanName == "" {
		opts.HumanName = "Player1"
	}

	g := &Game{opts: opts, logger: opts.Logger.WithPrefix("game")}
	g.human = NewPlayer(opts.HumanName, true, opts.StartingMoney)
	g.players = append(g.players, g.human)
	for i := 0; i < opts.Opponents; i++ {
		g.players = append(g.players, NewPlayer(fmt.Sprintf("Player%d", i+2), false, opts.StartingMoney))
	}
	return g, nil
}

// Players returns the seats still at the table
func (g *Game) Players() []*Player { return g.players }

// Human returns the human seat
func (g *Game) Human() *Player { return g.human }

// Over reports whether the session has ended
func (g *Game) Over() bool { return g.over }

// Rounds returns the number of rounds started
func (g *Game) Rounds() int { return g.round }

// Winner returns the last player standing and why the session ended
func (g *Game) Winner() (*Player, GameOverReason) { return g.winner, g.reason }

// PrepareRound resets players for a new round, removes broke seats and
// moves the dealer button. It returns the remaining seats.
func PrepareRound(players []*Player, rng *rand.Rand) []*Player {
	players = slices.DeleteFunc(players, func(p *Player) bool { return p.IsBroke() })
	for _, p := range players {
		p.resetForRound()
	}
	if len(players) > 0 {
		NextDealer(players, rng)
	}
	for _, p := range players {
		p.clearBet(true)
	}
	return players
}

// StartRound begins the next round and returns its controller. It returns
// ErrGameOver when the human is broke or only one player is left.
func (g *Game) StartRound() (*Controller, error) {
	if g.over {
		return nil, ErrGameOver
	}

	if g.human.IsBroke() {
		g.finish(nil, ReasonHumanBroke)
		return nil, ErrGameOver
	}
	g.players = PrepareRound(g.players, g.opts.RNG)
	if len(g.players) < 2 {
		g.finish(g.players[0], ReasonLastStanding)
		return nil, ErrGameOver
	}

	g.round++
	rc := NewRoundContext(g.round, g.players, NewPot(g.opts.Clock, g.opts.AnimatePot))
	g.logger.Info("Starting round", "round", g.round, "id", rc.ID, "players", len(g.players))

	return NewController(rc, ControllerOptions{
		Rules:   g.opts.Rules,
		AI:      g.opts.AI,
		Human:   g.opts.Human,
		Bus:     g.opts.Bus,
		Clock:   g.opts.Clock,
		Pacing:  g.opts.Pacing,
		Logger:  g.opts.Logger,
		RNG:     g.opts.RNG,
		NewDeck: g.opts.NewDeck,
	}), nil
}

// PlayRound starts and runs one round to completion
func (g *Game) PlayRound(ctx context.Context) (*RoundResult, error) {
	c, err := g.StartRound()
	if err != nil {
		return nil, err
	}
	result, err := c.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", g.round, err)
	}

	// settle the session straight away so callers see Over() without
	// starting another round
	if g.human.IsBroke() {
		g.finish(nil, ReasonHumanBroke)
	} else if solvent := slices.DeleteFunc(slices.Clone(g.players), (*Player).IsBroke); len(solvent) == 1 {
		g.finish(solvent[0], ReasonLastStanding)
	}
	return result, nil
}

func (g *Game) finish(winner *Player, reason GameOverReason) {
	if g.over {
		return
	}
	g.over = true
	g.reason = reason
	if winner == nil {
		// richest remaining seat
		for _, p := range g.players {
			if winner == nil || p.Money > winner.Money {
				winner = p
			}
		}
	}
	g.winner = winner

	g.logger.Info("Game over", "winner", winner.Name, "money", winner.Money, "reason", reason, "rounds", g.round)
	g.opts.Bus.Publish(NewSoundEvent(g.opts.Clock.Now(), SoundDrums))
	g.opts.Bus.Publish(NewGameOverEvent(g.opts.Clock.Now(), winner.Name, winner.Money, reason, g.round))
}
