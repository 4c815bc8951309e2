package game

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// scriptedAI answers with a fixed function of the player and the round
type scriptedAI func(p *Player, rc *RoundContext) Decision

func (s scriptedAI) Decide(_ context.Context, p *Player, rc *RoundContext, _ bool) Decision {
	return s(p, rc)
}

func alwaysCheck() scriptedAI {
	return func(*Player, *RoundContext) Decision { return NewCheck("scripted") }
}

func alwaysCall() scriptedAI {
	return func(*Player, *RoundContext) Decision { return NewCall("scripted") }
}

func alwaysRaise(amount int) scriptedAI {
	return func(*Player, *RoundContext) Decision { return NewRaise(amount, "scripted") }
}

// queuedHuman hands out decisions in order and records every view it saw
type queuedHuman struct {
	decisions []Decision
	views     []PlayerView
	err       error
}

func (h *queuedHuman) RequestDecision(_ context.Context, view PlayerView) (Decision, error) {
	h.views = append(h.views, view)
	if h.err != nil {
		return Decision{}, h.err
	}
	if len(h.decisions) == 0 {
		return NewCheck("out of script"), nil
	}
	d := h.decisions[0]
	h.decisions = h.decisions[1:]
	return d, nil
}

// eventRecorder collects published events
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(t EventType) []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) actions() []PlayerActionEvent {
	var out []PlayerActionEvent
	for _, e := range r.ofType(EventTypePlayerAction) {
		out = append(out, e.(PlayerActionEvent))
	}
	return out
}

// newTestRound seats players with the given stacks, puts the dealer button
// on dealer and returns a round ready at StageNewHand
func newTestRound(t *testing.T, dealer int, stacks ...int) *RoundContext {
	t.Helper()
	players := make([]*Player, len(stacks))
	for i, s := range stacks {
		players[i] = NewPlayer(string(rune('A'+i)), false, s)
	}
	// PrepareRound moves the button one seat on from the marked seat
	players[(dealer+len(players)-1)%len(players)].Dealer = true
	players = PrepareRound(players, randutil.New(1))
	return NewRoundContext(1, players, NewPot(quartz.NewMock(t), false))
}

func newTestController(t *testing.T, rc *RoundContext, ai DecisionMaker, rec *eventRecorder, stacked string) *Controller {
	t.Helper()
	bus := NewEventBus()
	if rec != nil {
		bus.Subscribe(rec)
	}
	rng := randutil.New(2)
	opts := ControllerOptions{
		Rules:  TableRules{SmallBlind: 5, BigBlind: 10, MinimumBet: 10, MaximumBet: 500, MaxRaisesPerRound: 4},
		AI:     ai,
		Bus:    bus,
		Clock:  quartz.NewMock(t),
		Logger: testLogger(),
		RNG:    rng,
	}
	if stacked != "" {
		cards := deck.MustParseCards(stacked)
		opts.NewDeck = func() *deck.Deck { return deck.NewStacked(rng, cards) }
	}
	return NewController(rc, opts)
}

func chipTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Money
	}
	return total
}
