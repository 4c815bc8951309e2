package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-table/internal/game"
)

var errEmptyAction = errors.New("enter an action: fold, check, call, raise <amount>, allin")

// ParseAction turns typed input into a decision valid for view. Typing
// check when there is a bet to match calls it, and typing call when there
// is nothing to match checks.
func ParseAction(input string, view game.PlayerView) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Decision{}, errEmptyAction
	}

	var d game.Decision
	switch fields[0] {
	case "f", "fold":
		d = game.NewFold("human")
	case "k", "check", "c", "call":
		switch {
		case view.CheckIsPossible:
			d = game.NewCheck("human")
		case view.Allows(game.Call):
			d = game.NewCall("human")
		default:
			d = game.NewAllIn("human")
		}
	case "r", "raise", "bet":
		amount := view.MinRaise
		if len(fields) > 1 {
			n, err := strconv.Atoi(strings.TrimPrefix(fields[1], "$"))
			if err != nil {
				return game.Decision{}, fmt.Errorf("invalid raise amount %q", fields[1])
			}
			amount = n
		}
		d = game.NewRaise(amount, "human")
	case "a", "allin", "all-in", "all":
		d = game.NewAllIn("human")
	default:
		return game.Decision{}, fmt.Errorf("unknown action %q", fields[0])
	}

	if err := view.Validate(d); err != nil {
		return game.Decision{}, err
	}
	return d, nil
}
