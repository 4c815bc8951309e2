// Package evaluator scores poker hands and enumerates card combinations.
// All functions are pure and safe for concurrent use.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-table/internal/deck"
)

var (
	// ErrHandSize is returned when a hand does not hold the expected number of cards
	ErrHandSize = errors.New("evaluator: wrong number of cards")
	// ErrDuplicateCard is returned when the same card appears twice in the input
	ErrDuplicateCard = errors.New("evaluator: duplicate card")
)

// Evaluate scores exactly five cards
func Evaluate(cards []deck.Card) (Score, error) {
	if len(cards) != 5 {
		return Score{}, fmt.Errorf("%w: have %d, want 5", ErrHandSize, len(cards))
	}
	return evaluate5(cards), nil
}

// EvaluatePartial scores one to four cards using only rank groups and the
// high card. Flushes and straights need five cards and are never awarded.
func EvaluatePartial(cards []deck.Card) (Score, error) {
	if len(cards) < 1 || len(cards) > 4 {
		return Score{}, fmt.Errorf("%w: have %d, want 1-4", ErrHandSize, len(cards))
	}
	return scoreGroups(groupRanks(cards), cards), nil
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupRanks returns rank groups ordered by count then rank, largest first
func groupRanks(cards []deck.Card) []rankGroup {
	var counts [deck.Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(cards))
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int {
		return b.count - a.count
	})
	return groups
}

func evaluate5(cards []deck.Card) Score {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b deck.Card) int { return int(a.Rank - b.Rank) })

	flush := isFlush(sorted)
	high, straight := straightHigh(sorted)

	switch {
	case flush && straight && high == deck.Ace:
		return newScore(RoyalFlush, 0, 0, "Royal Flush, "+sorted[0].Suit.Name())
	case flush && straight:
		return newScore(StraightFlush, int(high), 0,
			fmt.Sprintf("Straight Flush, %s high in %s", high.Name(), sorted[0].Suit.Name()))
	}

	groups := groupRanks(sorted)
	if groups[0].count == 4 {
		return newScore(FourOfAKind, int(groups[0].rank), 0, "Four of a Kind, "+groups[0].rank.Plural())
	}
	if groups[0].count == 3 && groups[1].count == 2 {
		return newScore(FullHouse, int(groups[0].rank), int(groups[1].rank),
			fmt.Sprintf("Full House, %s over %s", groups[0].rank.Plural(), groups[1].rank.Plural()))
	}

	top := sorted[len(sorted)-1].Rank
	if flush {
		return newScore(Flush, int(top), 0, fmt.Sprintf("Flush, %s high in %s", top.Name(), sorted[0].Suit.Name()))
	}
	if straight {
		desc := fmt.Sprintf("Straight, %s high", high.Name())
		if high == deck.Five {
			desc += " (wheel)"
		}
		return newScore(Straight, int(high), 0, desc)
	}

	return scoreGroups(groups, sorted)
}

// scoreGroups handles trips, pairs and high card for any number of cards
func scoreGroups(groups []rankGroup, cards []deck.Card) Score {
	g := groups[0]
	switch {
	case g.count == 4:
		return newScore(FourOfAKind, int(g.rank), 0, "Four of a Kind, "+g.rank.Plural())
	case g.count == 3:
		return newScore(ThreeOfAKind, int(g.rank), 0, "Three of a Kind, "+g.rank.Plural())
	case g.count == 2 && len(groups) > 1 && groups[1].count == 2:
		// groups are rank-descending within equal counts
		hi, lo := g.rank, groups[1].rank
		return newScore(TwoPair, int(hi), int(lo),
			fmt.Sprintf("Two Pair, %s and %s", hi.Plural(), lo.Plural()))
	case g.count == 2:
		return newScore(OnePair, int(g.rank), 0, "Pair of "+g.rank.Plural())
	}

	top := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank > top {
			top = c.Rank
		}
	}
	return newScore(HighCard, int(top), 0, "High Card, "+top.Name())
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh expects cards sorted ascending by rank. When the top two
// cards are King and Ace the Ace plays high; otherwise ranks are compared
// with the Ace low, which makes A-2-3-4-5 a five-high straight and rules
// out wrap-arounds such as K-A-2-3-4.
func straightHigh(sorted []deck.Card) (deck.Rank, bool) {
	n := len(sorted)
	if sorted[n-1].Rank == deck.Ace && sorted[n-2].Rank == deck.King {
		for i := 1; i < n; i++ {
			if sorted[i].Rank != sorted[i-1].Rank+1 {
				return 0, false
			}
		}
		return deck.Ace, true
	}

	low := make([]int, n)
	for i, c := range sorted {
		low[i] = c.Rank.LowValue()
	}
	slices.Sort(low)
	for i := 1; i < n; i++ {
		if low[i] != low[i-1]+1 {
			return 0, false
		}
	}
	return deck.Rank(low[n-1]), true
}
