package game

import (
	"errors"
	rand "math/rand/v2"
)

// ErrNoActivePlayers is returned when no player in the roster is still in play
var ErrNoActivePlayers = errors.New("game: no players in play")

// NextPlayer moves the current-player flag clockwise to the next seat that
// is still in play and returns its index. If the current player is the only
// one left in play it stays current.
func NextPlayer(players []*Player) (int, error) {
	n := len(players)
	cur := n - 1
	for i, p := range players {
		if p.Current {
			cur = i
		}
	}

	for step := 1; step <= n; step++ {
		idx := (cur + step) % n
		if players[idx].InPlay {
			for _, p := range players {
				p.Current = false
			}
			players[idx].Current = true
			return idx, nil
		}
	}
	return -1, ErrNoActivePlayers
}

// NextDealer moves the dealer button one seat clockwise, or to a random seat
// when no player holds it yet, and makes the dealer the current player so
// the small blind is the next seat.
func NextDealer(players []*Player, rng *rand.Rand) int {
	idx := -1
	for i, p := range players {
		if p.Dealer && idx < 0 {
			idx = (i + 1) % len(players)
		}
		p.Dealer = false
		p.Current = false
	}
	if idx < 0 {
		idx = rng.IntN(len(players))
	}

	players[idx].Dealer = true
	players[idx].Current = true
	return idx
}
