package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Spades
	Diamonds
	Clubs
)

// AllSuits lists the suits in deck construction order
var AllSuits = []Suit{Hearts, Spades, Diamonds, Clubs}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the long name of a suit, e.g. "Hearts"
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// Letter returns the lowercase suit letter used in card codes
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Spades:
		return "s"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six",
	Seven: "Seven", Eight: "Eight", Nine: "Nine", Ten: "Ten",
	Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

// String returns the single character rank, e.g. "T" or "A"
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string("23456789TJQKA"[r-Two])
}

// Name returns the long rank name, e.g. "Queen"
func (r Rank) Name() string {
	if r < Two || r > Ace {
		return "Unknown"
	}
	return rankNames[r]
}

// Plural returns the plural rank name, e.g. "Sixes" or "Aces"
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// LowValue returns the rank value with the Ace counted as 1
func (r Rank) LowValue() int {
	if r == Ace {
		return 1
	}
	return int(r)
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two character ASCII form accepted by ParseCard (e.g., "As")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Name returns a long description such as "Ace of Spades"
func (c Card) Name() string {
	return c.Rank.Name() + " of " + c.Suit.Name()
}

// Index returns a dense 0..51 index for the card
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}
