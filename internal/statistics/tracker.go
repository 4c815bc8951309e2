package statistics

import (
	"slices"
	"sync"

	"github.com/lox/holdem-table/internal/game"
)

// Tracker builds per-player statistics from game events
type Tracker struct {
	mu        sync.Mutex
	bigBlind  int
	stacks    map[string]int
	positions map[string]int
	players   map[string]*Statistics
	order     []string
}

var _ game.EventSubscriber = (*Tracker)(nil)

// NewTracker creates a tracker for a table with the given big blind
func NewTracker(bigBlind int) *Tracker {
	return &Tracker{
		bigBlind:  bigBlind,
		stacks:    make(map[string]int),
		positions: make(map[string]int),
		players:   make(map[string]*Statistics),
	}
}

// OnEvent implements game.EventSubscriber
func (t *Tracker) OnEvent(e game.GameEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := e.(type) {
	case game.HandStartEvent:
		clear(t.stacks)
		clear(t.positions)
		dealer := slices.IndexFunc(e.Players, func(p game.PlayerSnapshot) bool { return p.Dealer })
		for i, p := range e.Players {
			t.stacks[p.Name] = p.Money
			t.positions[p.Name] = (i - max(dealer, 0) + len(e.Players)) % len(e.Players)
			if _, ok := t.players[p.Name]; !ok {
				t.players[p.Name] = &Statistics{BigBlind: t.bigBlind}
				t.order = append(t.order, p.Name)
			}
		}

	case game.RoundCompleteEvent:
		showdown := len(e.Winners) > 0 && e.Winners[0].Score.Value > 0
		for _, p := range e.Players {
			start, ok := t.stacks[p.Name]
			if !ok {
				continue
			}
			st := t.players[p.Name]
			st.Add(RoundResult{
				NetBB:    st.toBB(p.Money - start),
				Position: t.positions[p.Name],
				Showdown: showdown,
				Won:      slices.ContainsFunc(e.Winners, func(w game.WinnerInfo) bool { return w.Name == p.Name }),
				PotSize:  e.PotAmount,
			})
		}
	}
}

// Players returns player names in the order they were first seen
func (t *Tracker) Players() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.order)
}

// Player returns a copy of the statistics for name
func (t *Tracker) Player(name string) (Statistics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.players[name]
	if !ok {
		return Statistics{}, false
	}
	cp := *st
	cp.Values = slices.Clone(st.Values)
	return cp, true
}
