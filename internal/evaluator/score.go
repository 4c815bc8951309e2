package evaluator

import "fmt"

// Category is the hand class, ordered from weakest to strongest
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Score is a comparable hand strength. Value encodes
// category*10000 + kicker*100 + secondary, which is the decimal score
// category + kicker/100 + secondary/10000 scaled to an integer so that
// equality and ordering are exact. The zero Score ranks below every hand.
type Score struct {
	Value       int
	Category    Category
	Description string
}

func newScore(cat Category, kicker, secondary int, desc string) Score {
	return Score{
		Value:       int(cat)*10000 + kicker*100 + secondary,
		Category:    cat,
		Description: desc,
	}
}

// Float returns the decimal form, e.g. 3.0907 for nines and sevens
func (s Score) Float() float64 {
	return float64(s.Value) / 10000
}

// Kicker returns the primary tie-break rank
func (s Score) Kicker() int {
	return (s.Value / 100) % 100
}

// Secondary returns the second tie-break rank (full house pair, two pair low pair)
func (s Score) Secondary() int {
	return s.Value % 100
}

// Compare returns -1, 0 or +1 as s ranks below, equal to or above o
func (s Score) Compare(o Score) int {
	switch {
	case s.Value < o.Value:
		return -1
	case s.Value > o.Value:
		return 1
	default:
		return 0
	}
}

// Beats reports whether s ranks strictly above o
func (s Score) Beats(o Score) bool {
	return s.Value > o.Value
}

func (s Score) String() string {
	if s.Description == "" {
		return fmt.Sprintf("%.4f", s.Float())
	}
	return s.Description
}
