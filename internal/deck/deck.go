package deck

import rand "math/rand/v2"

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a deck of playing cards. Dealing from an exhausted deck
// rebuilds and reshuffles it, so Deal never fails.
type Deck struct {
	cards      []Card
	rng        *rand.Rand
	reshuffles int
}

// New creates a full, shuffled deck using rng
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewStacked creates a deck that deals cards in the given order before
// falling back to a freshly shuffled deck
func NewStacked(rng *rand.Rand, cards []Card) *Deck {
	return &Deck{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
}

// Full returns the 52 cards in construction order
func Full() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range AllSuits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Without returns the full deck minus the excluded cards, in construction order
func Without(excluded []Card) []Card {
	var seen [Size]bool
	for _, c := range excluded {
		seen[c.Index()] = true
	}

	cards := make([]Card, 0, Size-len(excluded))
	for _, c := range Full() {
		if !seen[c.Index()] {
			cards = append(cards, c)
		}
	}
	return cards
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], Full()...)
	d.Shuffle()
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		d.Reset()
		d.reshuffles++
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.Deal()
	}
	return cards
}

// Remaining returns the number of cards left before the next reshuffle
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reshuffles reports how many times the deck ran out and was rebuilt
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}
