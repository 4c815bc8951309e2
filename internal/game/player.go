package game

import (
	"slices"

	"github.com/lox/holdem-table/internal/deck"
)

// Player is a seat at the table
type Player struct {
	Name            string
	Human           bool
	Money           int
	BetAmount       int // chips put in during the current betting round
	TotalBet        int // chips put in during the whole round
	InPlay          bool
	AllIn           bool
	FinishedBetting bool
	Dealer          bool
	Current         bool
	Hand            []deck.Card
	LastAction      ActionKind
}

// NewPlayer creates a player with a starting stack
func NewPlayer(name string, human bool, money int) *Player {
	return &Player{
		Name:   name,
		Human:  human,
		Money:  money,
		InPlay: true,
	}
}

// IsBroke reports whether the player has no chips left
func (p *Player) IsBroke() bool {
	return p.Money <= 0
}

// placeBet moves amount from the stack to the player's bets
func (p *Player) placeBet(amount int) {
	p.Money -= amount
	p.BetAmount += amount
	p.TotalBet += amount
}

func (p *Player) clearBet(allBets bool) {
	p.BetAmount = 0
	p.FinishedBetting = false
	p.LastAction = ActionNone
	if allBets {
		p.TotalBet = 0
	}
}

func (p *Player) resetForRound() {
	p.Hand = p.Hand[:0]
	p.InPlay = true
	p.AllIn = false
}

// PlayerSnapshot is a copy of a player's state safe to hand to other goroutines
type PlayerSnapshot struct {
	Name       string
	Human      bool
	Money      int
	BetAmount  int
	TotalBet   int
	InPlay     bool
	AllIn      bool
	Dealer     bool
	Current    bool
	Hand       []deck.Card
	LastAction ActionKind
}

// Snapshot copies the player's state
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Name:       p.Name,
		Human:      p.Human,
		Money:      p.Money,
		BetAmount:  p.BetAmount,
		TotalBet:   p.TotalBet,
		InPlay:     p.InPlay,
		AllIn:      p.AllIn,
		Dealer:     p.Dealer,
		Current:    p.Current,
		Hand:       slices.Clone(p.Hand),
		LastAction: p.LastAction,
	}
}

func snapshotAll(players []*Player) []PlayerSnapshot {
	out := make([]PlayerSnapshot, len(players))
	for i, p := range players {
		out[i] = p.Snapshot()
	}
	return out
}
