// Package handlog writes a plain text record of each round, one line per
// action, for the log pane and for the hand log file.
package handlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// Options controls what is revealed in the log
type Options struct {
	// Perspective is the player whose hole cards are always shown
	Perspective string
	// ShowAllCards reveals every player's hole cards as they are dealt
	ShowAllCards bool
}

// Format renders an event as zero or more log lines
func Format(e game.GameEvent, opts Options) []string {
	switch e := e.(type) {
	case game.HandStartEvent:
		return []string{
			fmt.Sprintf("---New Hand #%d---", e.Number),
			fmt.Sprintf("Dealer %s", e.Dealer),
		}

	case game.StageChangedEvent:
		switch e.Stage {
		case game.StageNewHand, game.StageGameOver:
			return nil
		}
		return []string{fmt.Sprintf("-%s-", e.Stage)}

	case game.CardsDealtEvent:
		if e.IsCommunity() {
			return []string{fmt.Sprintf("Community %s", e.Card)}
		}
		if opts.ShowAllCards || e.Player == opts.Perspective {
			return []string{fmt.Sprintf("%s dealt %s", e.Player, e.Card)}
		}
		return nil

	case game.PlayerActionEvent:
		return []string{formatAction(e)}

	case game.RoundCompleteEvent:
		lines := []string{fmt.Sprintf("Winner Pot $%d", e.PotAmount)}
		for _, w := range e.Winners {
			line := fmt.Sprintf("%s wins $%d", w.Name, w.Amount)
			if w.Score.Value > 0 {
				line += fmt.Sprintf(" with %s (%s)", w.Score.Description, deck.FormatCards(w.Hand))
			}
			lines = append(lines, line)
		}
		if e.Remainder > 0 {
			lines = append(lines, fmt.Sprintf("$%d left over from the split", e.Remainder))
		}
		return lines

	case game.GameOverEvent:
		reason := "last player standing"
		if e.Reason == game.ReasonHumanBroke {
			reason = "no more cash"
		}
		return []string{fmt.Sprintf("Game over after %d rounds: %s wins with $%d (%s)", e.Rounds, e.Winner, e.Money, reason)}
	}
	return nil
}

func formatAction(e game.PlayerActionEvent) string {
	name := e.Player.Name
	switch e.Action {
	case game.Check, game.Fold:
		return fmt.Sprintf("%s %s", name, e.Action)
	case game.Raise:
		return fmt.Sprintf("%s Raise $%d ($%d)", name, e.Amount, e.Player.BetAmount)
	default:
		return fmt.Sprintf("%s %s $%d", name, e.Action, e.Amount)
	}
}

// Writer is an event subscriber that appends formatted lines to w
type Writer struct {
	w      io.Writer
	opts   Options
	logger *log.Logger
}

// NewWriter creates a writer. Write failures are logged, never returned,
// so a full disk cannot stop a round.
func NewWriter(w io.Writer, opts Options, logger *log.Logger) *Writer {
	return &Writer{w: w, opts: opts, logger: logger.WithPrefix("handlog")}
}

// Open appends to the file at path
func Open(path string, opts Options, logger *log.Logger) (*Writer, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening hand log: %w", err)
	}
	return NewWriter(f, opts, logger), f, nil
}

// OnEvent implements game.EventSubscriber
func (w *Writer) OnEvent(e game.GameEvent) {
	lines := Format(e, w.opts)
	if len(lines) == 0 {
		return
	}
	if _, err := io.WriteString(w.w, strings.Join(lines, "\n")+"\n"); err != nil {
		w.logger.Warn("Failed to write hand log", "error", err)
	}
}
