package evaluator

import (
	"errors"
	"slices"
	"testing"

	"github.com/chehsunliu/poker"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/randutil"
)

func TestEvaluateFixtures(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		value    int
		desc     string
	}{
		{"royal flush", "AhKhQhJhTh", RoyalFlush, 100000, "Royal Flush, Hearts"},
		{"straight flush", "9s8s7s6s5s", StraightFlush, 90900, "Straight Flush, Nine high in Spades"},
		{"steel wheel", "As2s3s4s5s", StraightFlush, 90500, "Straight Flush, Five high in Spades"},
		{"four of a kind", "QcQdQhQs2d", FourOfAKind, 81200, "Four of a Kind, Queens"},
		{"full house", "KcKdKh2s2d", FullHouse, 71302, "Full House, Kings over Twos"},
		{"flush", "Ad9d7d4d2d", Flush, 61400, "Flush, Ace high in Diamonds"},
		{"broadway", "AcKdQhJsTd", Straight, 51400, "Straight, Ace high"},
		{"wheel", "Ac2d3h4s5d", Straight, 50500, "Straight, Five high (wheel)"},
		{"three of a kind", "2c2d2hKs9d", ThreeOfAKind, 40200, "Three of a Kind, Twos"},
		{"two pair", "9c9d7h7sAd", TwoPair, 30907, "Two Pair, Nines and Sevens"},
		{"one pair", "JcJd7h4s2d", OnePair, 21100, "Pair of Jacks"},
		{"high card", "Ac9d7h4s2d", HighCard, 11400, "High Card, Ace"},
		{"sixes plural", "6c6d6h4s2d", ThreeOfAKind, 40600, "Three of a Kind, Sixes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(deck.MustParseCards(tt.cards))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got.Category != tt.category {
				t.Errorf("Category = %v, want %v", got.Category, tt.category)
			}
			if got.Value != tt.value {
				t.Errorf("Value = %d, want %d", got.Value, tt.value)
			}
			if got.Description != tt.desc {
				t.Errorf("Description = %q, want %q", got.Description, tt.desc)
			}
		})
	}
}

func TestScoreFloat(t *testing.T) {
	s, _ := Evaluate(deck.MustParseCards("9c9d7h7sAd"))
	if s.Float() != 3.0907 {
		t.Errorf("Float() = %v, want 3.0907", s.Float())
	}
	if s.Kicker() != 9 || s.Secondary() != 7 {
		t.Errorf("Kicker/Secondary = %d/%d, want 9/7", s.Kicker(), s.Secondary())
	}
}

func TestEvaluateRejectsWrongSize(t *testing.T) {
	for _, cards := range []string{"", "AsKs", "AsKsQsJs", "AsKsQsJsTs9s"} {
		_, err := Evaluate(deck.MustParseCards(cards))
		if !errors.Is(err, ErrHandSize) {
			t.Errorf("Evaluate(%q) error = %v, want ErrHandSize", cards, err)
		}
	}
}

func TestCategoryOrdering(t *testing.T) {
	// one representative per category, weakest first
	hands := []string{
		"Ac9d7h4s2d",
		"2c2d7h4s9d",
		"3c3d2h2s4d",
		"2c2d2h4s9d",
		"Ac2d3h4s5d",
		"2d4d6d8dTd",
		"2c2d2h3s3d",
		"2c2d2h2s3d",
		"As2s3s4s5s",
		"AhKhQhJhTh",
	}

	var prev Score
	for i, h := range hands {
		s, err := Evaluate(deck.MustParseCards(h))
		if err != nil {
			t.Fatal(err)
		}
		if s.Category != Category(i+1) {
			t.Errorf("%s: Category = %v, want %v", h, s.Category, Category(i+1))
		}
		if i > 0 && !s.Beats(prev) {
			t.Errorf("%s (%v) should beat %v", h, s, prev)
		}
		prev = s
	}
}

func TestAllStraights(t *testing.T) {
	suits := []deck.Suit{deck.Hearts, deck.Spades, deck.Diamonds, deck.Clubs, deck.Hearts}
	for high := deck.Five; high <= deck.Ace; high++ {
		cards := make([]deck.Card, 5)
		for i := range cards {
			r := high - deck.Rank(i)
			if r < deck.Two {
				r = deck.Ace
			}
			cards[i] = deck.NewCard(r, suits[i])
		}
		// scramble the input order
		slices.Reverse(cards[1:])

		s, err := Evaluate(cards)
		if err != nil {
			t.Fatal(err)
		}
		if s.Category != Straight || s.Kicker() != int(high) {
			t.Errorf("%v: got %v kicker %d, want straight to %v", cards, s.Category, s.Kicker(), high)
		}
	}
}

func TestWrapAroundIsNotStraight(t *testing.T) {
	for _, h := range []string{"Kh As 2d 3c 4s", "Qh Ks Ad 2c 3s"} {
		s, _ := Evaluate(deck.MustParseCards(h))
		if s.Category != HighCard {
			t.Errorf("%s: Category = %v, want High Card", h, s.Category)
		}
	}
}

func TestEvaluatePartial(t *testing.T) {
	tests := []struct {
		cards    string
		category Category
		kicker   int
	}{
		{"As", HighCard, 14},
		{"AsKs", HighCard, 14},
		{"7s7h", OnePair, 7},
		{"7s7h7d", ThreeOfAKind, 7},
		{"7s7h2d2c", TwoPair, 7},
		{"7s7h7d7c", FourOfAKind, 7},
		{"2s3s4s5s", HighCard, 5},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			s, err := EvaluatePartial(deck.MustParseCards(tt.cards))
			if err != nil {
				t.Fatal(err)
			}
			if s.Category != tt.category || s.Kicker() != tt.kicker {
				t.Errorf("got %v/%d, want %v/%d", s.Category, s.Kicker(), tt.category, tt.kicker)
			}
		})
	}

	if _, err := EvaluatePartial(deck.MustParseCards("AsKsQsJsTs")); !errors.Is(err, ErrHandSize) {
		t.Errorf("five cards: error = %v, want ErrHandSize", err)
	}
}

// TestAgreesWithReferenceEvaluator checks random hands against an
// independent evaluator. Scores here only break ties on the top rank, so
// the check is one-directional: a strictly higher score must be a strictly
// better hand.
func TestAgreesWithReferenceEvaluator(t *testing.T) {
	rng := randutil.New(99)
	toRef := func(cards []deck.Card) []poker.Card {
		out := make([]poker.Card, len(cards))
		for i, c := range cards {
			out[i] = poker.NewCard(c.Code())
		}
		return out
	}
	refClass := map[Category]int32{
		RoyalFlush: 1, StraightFlush: 1, FourOfAKind: 2, FullHouse: 3, Flush: 4,
		Straight: 5, ThreeOfAKind: 6, TwoPair: 7, OnePair: 8, HighCard: 9,
	}

	for i := 0; i < 2000; i++ {
		d := deck.New(rng)
		a, b := d.DealN(5), d.DealN(5)

		sa, _ := Evaluate(a)
		sb, _ := Evaluate(b)
		ra := poker.Evaluate(toRef(a))
		rb := poker.Evaluate(toRef(b))

		if got := poker.RankClass(ra); got != refClass[sa.Category] {
			t.Fatalf("%v: category %v, reference class %d", a, sa.Category, got)
		}
		if sa.Beats(sb) && ra >= rb {
			t.Fatalf("%v (%v) beats %v (%v) but reference disagrees", a, sa, b, sb)
		}
		if sb.Beats(sa) && rb >= ra {
			t.Fatalf("%v (%v) beats %v (%v) but reference disagrees", b, sb, a, sa)
		}
	}
}
