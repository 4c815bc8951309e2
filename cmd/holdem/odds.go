package main

import (
	"context"
	"fmt"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

type OddsCmd struct {
	Hole  string `arg:"" help:"Your hole cards, e.g. 'AsKd'"`
	Board string `arg:"" optional:"" help:"Community cards, e.g. 'Td7s8h'"`
}

func (c *OddsCmd) Run(ctx context.Context) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("parsing hole cards: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards, got %d", len(board))
		}
	}

	cards := append(append([]deck.Card(nil), hole...), board...)
	best, err := evaluator.BestHandScore(cards)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Hand Odds ♦ ♣ "))
	fmt.Println()
	printField("Hole", deck.FormatCards(hole))
	if len(board) > 0 {
		printField("Board", deck.FormatCards(board))
	}
	printField("Best hand", fmt.Sprintf("%s (%.2f)", best.Description, best.Float()))

	if len(board) >= 3 {
		possible, err := evaluator.BestPossibleHand(ctx, cards, 7)
		if err != nil {
			return err
		}
		printField("Best possible", fmt.Sprintf("%s (%.2f)", possible.Description, possible.Float()))
	}

	if len(board) == 5 {
		pct, err := evaluator.WinPercentage(ctx, hole, board)
		if err != nil {
			return err
		}
		fmt.Println(winStyle.Render(fmt.Sprintf("Wins or ties against %.2f%% of opponent hands", pct)))
	}
	return nil
}
