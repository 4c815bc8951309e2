package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-table/internal/game"
)

// Bridge connects the game goroutine to the program. It is the human seat's
// agent and subscribes to the event bus; every call is forwarded as a
// message and answers come back through the model's channels.
type Bridge struct {
	send  func(tea.Msg)
	model *Model
}

var (
	_ game.HumanAgent      = (*Bridge)(nil)
	_ game.EventSubscriber = (*Bridge)(nil)
)

// NewBridge creates a bridge for a program running model
func NewBridge(program *tea.Program, model *Model) *Bridge {
	return &Bridge{send: program.Send, model: model}
}

// OnEvent implements game.EventSubscriber
func (b *Bridge) OnEvent(event game.GameEvent) {
	b.send(EventMsg{Event: event})
}

// RequestDecision implements game.HumanAgent
func (b *Bridge) RequestDecision(ctx context.Context, view game.PlayerView) (game.Decision, error) {
	select {
	case <-b.model.decisions:
	default:
	}

	b.send(RequestMsg{View: view})

	select {
	case d := <-b.model.decisions:
		return d, nil
	case <-ctx.Done():
		return game.Decision{}, ctx.Err()
	}
}

// WaitForNextRound blocks until the human asks for another round. It
// returns false when they chose to quit.
func (b *Bridge) WaitForNextRound(ctx context.Context) (bool, error) {
	b.send(NextRoundMsg{})

	select {
	case next := <-b.model.nextRound:
		return next, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
