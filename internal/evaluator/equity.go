package evaluator

import (
	"context"
	"fmt"
	"math"

	"github.com/lox/holdem-table/internal/deck"
)

// WinPercentage compares the player's best hand against every possible
// opponent holding drawn from the cards not in hole or community, and
// returns the share of holdings the player beats or ties, as a percentage
// rounded to two decimals. Ties count as wins.
func WinPercentage(ctx context.Context, hole, community []deck.Card) (float64, error) {
	if len(hole) == 0 {
		return 0, fmt.Errorf("%w: no hole cards", ErrHandSize)
	}

	known := make([]deck.Card, 0, len(hole)+len(community))
	known = append(known, hole...)
	known = append(known, community...)
	if err := checkDuplicates(known); err != nil {
		return 0, err
	}

	own, err := BestHandScore(known)
	if err != nil {
		return 0, err
	}

	opponent := make([]deck.Card, 2+len(community))
	copy(opponent[2:], community)

	var wins, total int
	ForEachCombination(deck.Without(known), 2, func(pair []deck.Card) bool {
		if total%cancelCheckInterval == 0 && ctx.Err() != nil {
			return false
		}
		copy(opponent, pair)
		theirs, _ := BestHandScore(opponent)
		total++
		if own.Value >= theirs.Value {
			wins++
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("win percentage: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	return math.Round(float64(wins)/float64(total)*10000) / 100, nil
}
