package evaluator

import (
	"testing"

	"github.com/lox/holdem-table/internal/deck"
)

func TestBinomial(t *testing.T) {
	tests := []struct{ n, k, want int }{
		{7, 5, 21},
		{52, 2, 1326},
		{50, 5, 2118760},
		{47, 2, 1081},
		{5, 0, 1},
		{5, 5, 1},
		{3, 4, 0},
		{3, -1, 0},
	}
	for _, tt := range tests {
		if got := Binomial(tt.n, tt.k); got != tt.want {
			t.Errorf("Binomial(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestCombinationsCountAndUniqueness(t *testing.T) {
	cards := deck.Full()[:10]
	for k := 0; k <= 10; k++ {
		combos := Combinations(cards, k)
		if len(combos) != Binomial(10, k) {
			t.Fatalf("k=%d: %d combinations, want %d", k, len(combos), Binomial(10, k))
		}

		seen := make(map[uint64]bool)
		for _, c := range combos {
			if len(c) != k {
				t.Fatalf("k=%d: subset of size %d", k, len(c))
			}
			var mask uint64
			for _, card := range c {
				bit := uint64(1) << card.Index()
				if mask&bit != 0 {
					t.Fatalf("k=%d: card %v repeated in %v", k, card, c)
				}
				mask |= bit
			}
			if seen[mask] {
				t.Fatalf("k=%d: duplicate subset %v", k, c)
			}
			seen[mask] = true
		}
	}
}

func TestCombinationsLexicographicOrder(t *testing.T) {
	cards := deck.MustParseCards("2h3h4h5h")
	got := Combinations(cards, 2)
	want := []string{"2h3h", "2h4h", "2h5h", "3h4h", "3h5h", "4h5h"}
	for i, c := range got {
		if s := c[0].Code() + c[1].Code(); s != want[i] {
			t.Errorf("combination %d = %s, want %s", i, s, want[i])
		}
	}
}

func TestCombinationsCoverEveryCard(t *testing.T) {
	cards := deck.Full()[:8]
	counts := make(map[deck.Card]int)
	for _, c := range Combinations(cards, 3) {
		for _, card := range c {
			counts[card]++
		}
	}
	// each card appears in C(7,2) subsets
	for _, card := range cards {
		if counts[card] != 21 {
			t.Errorf("%v appears %d times, want 21", card, counts[card])
		}
	}
}

func TestForEachCombinationStopsEarly(t *testing.T) {
	calls := 0
	ForEachCombination(deck.Full(), 5, func([]deck.Card) bool {
		calls++
		return calls < 10
	})
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
}

func TestCombinationsKLargerThanN(t *testing.T) {
	if got := Combinations(deck.Full()[:3], 4); len(got) != 0 {
		t.Errorf("got %d combinations, want 0", len(got))
	}
}
