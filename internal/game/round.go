package game

import (
	"github.com/google/uuid"

	"github.com/lox/holdem-table/internal/deck"
)

// RoundContext is everything that belongs to one round of play. It is owned
// by a single Controller and never shared.
type RoundContext struct {
	ID        string
	Number    int
	Stage     Stage
	Deck      *deck.Deck
	Pot       *Pot
	Players   []*Player
	Community []deck.Card

	raises int // raises in the current betting round
}

// NewRoundContext starts a round at StageNewHand. The players should
// already have a dealer assigned, see PrepareRound.
func NewRoundContext(number int, players []*Player, pot *Pot) *RoundContext {
	return &RoundContext{
		ID:      uuid.NewString(),
		Number:  number,
		Stage:   StageNewHand,
		Pot:     pot,
		Players: players,
	}
}

// HighestBet returns the largest bet placed in the current betting round
func (rc *RoundContext) HighestBet() int {
	highest := 0
	for _, p := range rc.Players {
		highest = max(highest, p.BetAmount)
	}
	return highest
}

// CallAmount returns what p must add to match the highest bet
func (rc *RoundContext) CallAmount(p *Player) int {
	return rc.HighestBet() - p.BetAmount
}

// ActivePlayers returns the players still in play
func (rc *RoundContext) ActivePlayers() []*Player {
	var active []*Player
	for _, p := range rc.Players {
		if p.InPlay {
			active = append(active, p)
		}
	}
	return active
}

// MoreThanOnePlayerLeft reports whether at least two players are in play
func (rc *RoundContext) MoreThanOnePlayerLeft() bool {
	return len(rc.ActivePlayers()) > 1
}

// IsEndRound reports whether the current betting round is over: fewer than
// two players remain, or every remaining player has finished betting.
func (rc *RoundContext) IsEndRound() bool {
	active, finished := 0, 0
	for _, p := range rc.Players {
		if !p.InPlay {
			continue
		}
		active++
		if p.FinishedBetting {
			finished++
		}
	}
	return active < 2 || active == finished
}

// TotalChips returns every chip at the table, stacks plus pot
func (rc *RoundContext) TotalChips() int {
	total := rc.Pot.Amount()
	for _, p := range rc.Players {
		total += p.Money
	}
	return total
}

func (rc *RoundContext) resetFinishedBetting() {
	for _, p := range rc.Players {
		if p.InPlay {
			p.FinishedBetting = false
		}
	}
}

func (rc *RoundContext) resetPlayerBets(allBets bool) {
	for _, p := range rc.Players {
		p.clearBet(allBets)
	}
	rc.raises = 0
}
