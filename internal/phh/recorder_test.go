package phh

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

func action(name string, kind game.ActionKind, stage game.Stage, bet int) game.PlayerActionEvent {
	return game.PlayerActionEvent{Player: game.PlayerSnapshot{Name: name, BetAmount: bet}, Action: kind, Stage: stage}
}

func TestRecorderWritesRound(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf, "test", 10, testLogger())

	a := game.NewPlayer("A", true, 1000)
	b := game.NewPlayer("B", false, 1000)
	b.Dealer = true
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	events := []game.GameEvent{
		game.NewHandStartEvent(now, "round-1", 1, []*game.Player{a, b}),
		game.StageChangedEvent{Stage: game.StageBlind},
		action("A", game.SmallBlind, game.StageBlind, 5),
		action("B", game.BigBlind, game.StageBlind, 10),
		game.StageChangedEvent{Stage: game.StagePreFlop},
		game.NewCardsDealtEvent(now, "A", card("As"), game.StagePreFlop),
		game.NewCardsDealtEvent(now, "A", card("Kd"), game.StagePreFlop),
		game.NewCardsDealtEvent(now, "B", card("Qh"), game.StagePreFlop),
		game.NewCardsDealtEvent(now, "B", card("Jc"), game.StagePreFlop),
		action("A", game.Raise, game.StagePreFlop, 30),
		action("B", game.Call, game.StagePreFlop, 30),
		game.StageChangedEvent{Stage: game.StageFlop},
		game.NewCardsDealtEvent(now, "", card("2c"), game.StageFlop),
		game.NewCardsDealtEvent(now, "", card("3d"), game.StageFlop),
		game.NewCardsDealtEvent(now, "", card("7h"), game.StageFlop),
		action("A", game.Check, game.StageFlop, 0),
		action("B", game.AllIn, game.StageFlop, 970),
		action("A", game.AllIn, game.StageFlop, 970),
		game.StageChangedEvent{Stage: game.StageTurn},
		game.NewCardsDealtEvent(now, "", card("8s"), game.StageTurn),
		game.StageChangedEvent{Stage: game.StageRiver},
		game.NewCardsDealtEvent(now, "", card("9c"), game.StageRiver),
		game.StageChangedEvent{Stage: game.StageShowdown},
	}
	for _, e := range events {
		r.OnEvent(e)
	}

	a.Money, b.Money = 2000, 0
	a.Hand, b.Hand = deck.MustParseCards("AsKd"), deck.MustParseCards("QhJc")
	r.OnEvent(game.RoundCompleteEvent{
		RoundID:   "round-1",
		PotAmount: 2000,
		Winners:   []game.WinnerInfo{{Name: "A", Amount: 2000, Score: evaluator.Score{Value: 11400}}},
		Players:   []game.PlayerSnapshot{a.Snapshot(), b.Snapshot()},
	})

	hands, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, hands, 1)
	h := hands[0]

	assert.Equal(t, "NT", h.Variant)
	assert.Equal(t, "round-1", h.HandID)
	assert.Equal(t, []string{"A", "B"}, h.Players)
	assert.Equal(t, []int{5, 10}, h.BlindsOrStraddles)
	assert.Equal(t, []int{1000, 1000}, h.StartingStacks)
	assert.Equal(t, []int{2000, 0}, h.FinishingStacks)
	assert.Equal(t, []int{2000, 0}, h.Winnings)
	assert.Equal(t, "05:06:07", h.Time)
	assert.Equal(t, 2025, h.Year)
	assert.Equal(t, []string{
		"d dh p1 AsKd",
		"d dh p2 QhJc",
		"p1 cbr 30",
		"p2 cc",
		"d db 2c3d7h",
		"p1 cc",
		"p2 cbr 970",
		"p1 cc",
		"d db 8s",
		"d db 9c",
		"p1 sm AsKd",
		"p2 sm QhJc",
	}, h.Actions)
}

func TestRecorderIgnoresEventsOutsideRound(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf, "test", 10, testLogger())
	r.OnEvent(action("A", game.Fold, game.StageFlop, 0))
	r.OnEvent(game.RoundCompleteEvent{})
	assert.Zero(t, buf.Len())
}

func TestRecorderSessionConservesChips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands", "session.phhs")

	play := func(seed int64, rounds int) {
		rec, closer, err := OpenSession(path, "sim", 10, testLogger())
		require.NoError(t, err)
		defer closer.Close()

		bus := game.NewEventBus()
		bus.Subscribe(rec)
		g, err := game.NewGame(game.Options{
			Opponents:     2,
			StartingMoney: 500,
			Rules:         game.TableRules{SmallBlind: 5, BigBlind: 10, MinimumBet: 10, MaximumBet: 250, MaxRaisesPerRound: 4},
			Bus:           bus,
			RNG:           randutil.New(seed),
		})
		require.NoError(t, err)
		for i := 0; i < rounds; i++ {
			if _, err := g.PlayRound(context.Background()); errors.Is(err, game.ErrGameOver) {
				break
			} else {
				require.NoError(t, err)
			}
			if g.Over() {
				break
			}
		}
	}

	play(1, 3)
	play(2, 3)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	hands, err := Decode(f)
	require.NoError(t, err)
	require.NotEmpty(t, hands)

	for _, h := range hands {
		start, finish := 0, 0
		for i := range h.StartingStacks {
			start += h.StartingStacks[i]
			finish += h.FinishingStacks[i]
		}
		assert.LessOrEqual(t, finish, start, h.HandID)
		assert.Less(t, start-finish, len(h.Players), "only split remainders may be lost in %s", h.HandID)
	}
}
