package evaluator

import "github.com/lox/holdem-table/internal/deck"

// Binomial returns C(n, k), or 0 when k is out of range
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}

// ForEachCombination calls fn with every k-card subset of cards in
// lexicographic order of input positions. The slice passed to fn is reused
// between calls and must be copied if retained. Returning false from fn
// stops the enumeration.
func ForEachCombination(cards []deck.Card, k int, fn func([]deck.Card) bool) {
	n := len(cards)
	if k < 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	buf := make([]deck.Card, k)

	for {
		for i, j := range idx {
			buf[i] = cards[j]
		}
		if !fn(buf) {
			return
		}

		// advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Combinations returns every k-card subset of cards, in the same order as
// ForEachCombination. The result holds exactly Binomial(len(cards), k) entries.
func Combinations(cards []deck.Card, k int) [][]deck.Card {
	out := make([][]deck.Card, 0, Binomial(len(cards), k))
	ForEachCombination(cards, k, func(combo []deck.Card) bool {
		out = append(out, append([]deck.Card(nil), combo...))
		return true
	})
	return out
}
