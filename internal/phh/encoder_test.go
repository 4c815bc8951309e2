package phh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name      string
		seat      int
		kind      game.ActionKind
		totalBet  int
		want      string
		shouldUse bool
	}{
		{"fold", 0, game.Fold, 0, "p1 f", true},
		{"check", 1, game.Check, 0, "p2 cc", true},
		{"call", 3, game.Call, 50, "p4 cc", true},
		{"raise", 0, game.Raise, 120, "p1 cbr 120", true},
		{"all in", 2, game.AllIn, 350, "p3 cbr 350", true},
		{"zero raise", 2, game.Raise, 0, "", false},
		{"small blind", 0, game.SmallBlind, 5, "", false},
		{"big blind", 1, game.BigBlind, 10, "", false},
		{"none", 2, game.ActionNone, 10, "# p3  10", true},
	}

	for _, tt := range tests {
		got, ok := FormatAction(tt.seat, tt.kind, tt.totalBet)
		if ok != tt.shouldUse {
			t.Fatalf("%s: ok=%v want %v", tt.name, ok, tt.shouldUse)
		}
		if got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatCards(t *testing.T) {
	if got := FormatCards(deck.MustParseCards("As Td 2c")); got != "AsTd2c" {
		t.Errorf("FormatCards = %q, want AsTd2c", got)
	}
	if got := FormatCards(nil); got != "" {
		t.Errorf("FormatCards(nil) = %q, want empty", got)
	}
}

func TestEncodeDecodeSections(t *testing.T) {
	var buf bytes.Buffer
	for i, id := range []string{"first", "second"} {
		buf.WriteString("[" + string(rune('1'+i)) + "]\n")
		if err := Encode(&buf, &HandHistory{
			Variant:           "NT",
			Antes:             []int{0, 0},
			BlindsOrStraddles: []int{5, 10},
			MinBet:            10,
			StartingStacks:    []int{1000, 1000},
			Actions:           []string{"d dh p1 AsKd", "p1 f"},
			HandID:            id,
		}); err != nil {
			t.Fatal(err)
		}
		buf.WriteString("\n")
	}

	if !strings.Contains(buf.String(), `variant = "NT"`) {
		t.Errorf("missing variant in:\n%s", buf.String())
	}

	hands, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(hands) != 2 || hands[0].HandID != "first" || hands[1].HandID != "second" {
		t.Fatalf("decoded %+v", hands)
	}
	if hands[1].BlindsOrStraddles[1] != 10 || hands[1].Actions[1] != "p1 f" {
		t.Errorf("round trip lost fields: %+v", hands[1])
	}
}

func TestEncodeNil(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for nil hand")
	}
}
