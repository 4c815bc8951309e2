package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "separators",
			input: "Ah, Kd 2c",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "one is not a rank", input: "1s", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func TestCardStrings(t *testing.T) {
	c := NewCard(Queen, Hearts)
	if c.String() != "Q♥" {
		t.Errorf("String() = %q", c.String())
	}
	if c.Code() != "Qh" {
		t.Errorf("Code() = %q", c.Code())
	}
	if c.Name() != "Queen of Hearts" {
		t.Errorf("Name() = %q", c.Name())
	}
	if Six.Plural() != "Sixes" || Ace.Plural() != "Aces" {
		t.Errorf("Plural() = %q, %q", Six.Plural(), Ace.Plural())
	}
	if Ace.LowValue() != 1 || King.LowValue() != 13 {
		t.Error("LowValue should only lower the Ace")
	}
}

func TestCodeRoundTrip(t *testing.T) {
	for _, c := range Full() {
		got, err := ParseCard(c.Code())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.Code(), err)
		}
		if got != c {
			t.Errorf("ParseCard(%q) = %v, want %v", c.Code(), got, c)
		}
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
