// Package phh records rounds in the Poker Hand History format, one TOML
// section per round.
package phh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// Encode writes the hand history to w as TOML
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Decode reads a session written by a Recorder, in section order
func Decode(r io.Reader) ([]HandHistory, error) {
	var sections map[string]HandHistory
	meta, err := toml.NewDecoder(r).Decode(&sections)
	if err != nil {
		return nil, fmt.Errorf("phh: decoding session: %w", err)
	}

	hands := make([]HandHistory, 0, len(sections))
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue
		}
		hands = append(hands, sections[key[0]])
	}
	return hands, nil
}

// FormatCards joins card codes with no separator, e.g. "AsKd"
func FormatCards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Code())
	}
	return b.String()
}

// FormatAction converts a table action to a PHH action string. totalBet is
// the player's bet on the current street after the action. It reports false
// for forced bets, which PHH records in blinds_or_straddles instead.
func FormatAction(seat int, kind game.ActionKind, totalBet int) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch kind {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Raise, game.AllIn:
		if totalBet <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, totalBet), true
	case game.SmallBlind, game.BigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, kind, totalBet), true
	}
}
