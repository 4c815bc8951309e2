package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-table/internal/deck"
)

var (
	// ErrInvalidDecision is returned by PlayerView.Validate for moves the view does not allow
	ErrInvalidDecision = errors.New("game: invalid decision")
	// ErrDecisionPending is returned when a decision is submitted twice for one request
	ErrDecisionPending = errors.New("game: decision already submitted")
)

// HumanAgent supplies decisions for the human seat. RequestDecision blocks
// until the player has chosen or ctx is done.
type HumanAgent interface {
	RequestDecision(ctx context.Context, view PlayerView) (Decision, error)
}

// DecisionMaker supplies decisions for computer seats
type DecisionMaker interface {
	Decide(ctx context.Context, p *Player, rc *RoundContext, checkIsPossible bool) Decision
}

// PlayerView is what the human is shown when asked to act
type PlayerView struct {
	Name            string
	Stage           Stage
	Money           int
	BetAmount       int
	HighestBet      int
	CallAmount      int
	CheckIsPossible bool
	MinRaise        int
	MaxRaise        int
	Available       []ActionKind
	Hand            []deck.Card
	Community       []deck.Card
	Pot             int
}

// newPlayerView builds the view for p. Raise bounds follow the table:
// at least the highest bet plus the minimum bet, at most what is left after
// calling, capped at the maximum bet.
func newPlayerView(p *Player, rc *RoundContext, minimumBet, maximumBet int) PlayerView {
	highest := rc.HighestBet()
	call := highest - p.BetAmount
	v := PlayerView{
		Name:            p.Name,
		Stage:           rc.Stage,
		Money:           p.Money,
		BetAmount:       p.BetAmount,
		HighestBet:      highest,
		CallAmount:      call,
		CheckIsPossible: call == 0,
		MinRaise:        highest + minimumBet,
		MaxRaise:        min(p.Money-call, maximumBet),
		Hand:            slices.Clone(p.Hand),
		Community:       slices.Clone(rc.Community),
		Pot:             rc.Pot.Amount(),
	}

	v.Available = append(v.Available, Fold)
	switch {
	case v.CheckIsPossible:
		v.Available = append(v.Available, Check)
	case p.Money >= highest:
		v.Available = append(v.Available, Call)
	}
	if p.Money > highest+minimumBet && v.MinRaise <= v.MaxRaise {
		v.Available = append(v.Available, Raise)
	}
	if p.Money > 0 && p.Money < highest {
		v.Available = append(v.Available, AllIn)
	}
	return v
}

// Allows reports whether kind is offered
func (v PlayerView) Allows(kind ActionKind) bool {
	return slices.Contains(v.Available, kind)
}

// Validate checks a decision against the view before it is submitted
func (v PlayerView) Validate(d Decision) error {
	if !v.Allows(d.Kind) {
		return fmt.Errorf("%w: %s is not available", ErrInvalidDecision, d.Kind)
	}
	if d.Kind == Raise && (d.Amount < v.MinRaise || d.Amount > v.MaxRaise) {
		return fmt.Errorf("%w: raise must be between %d and %d", ErrInvalidDecision, v.MinRaise, v.MaxRaise)
	}
	return nil
}

// ChannelAgent is a HumanAgent fed from another goroutine. Each request is
// announced through the notify callback and answered with Submit.
type ChannelAgent struct {
	notify    func(PlayerView)
	decisions chan Decision
}

// NewChannelAgent creates an agent that calls notify for every request
func NewChannelAgent(notify func(PlayerView)) *ChannelAgent {
	return &ChannelAgent{notify: notify, decisions: make(chan Decision, 1)}
}

// RequestDecision implements HumanAgent
func (a *ChannelAgent) RequestDecision(ctx context.Context, view PlayerView) (Decision, error) {
	// drop an answer left over from a previous request
	select {
	case <-a.decisions:
	default:
	}

	if a.notify != nil {
		a.notify(view)
	}

	select {
	case d := <-a.decisions:
		return d, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

// Submit answers the pending request without blocking
func (a *ChannelAgent) Submit(d Decision) error {
	select {
	case a.decisions <- d:
		return nil
	default:
		return ErrDecisionPending
	}
}
