package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
)

func TestTrackerRecordsRound(t *testing.T) {
	tr := NewTracker(10)
	now := time.Now()

	a := game.NewPlayer("A", true, 1000)
	b := game.NewPlayer("B", false, 1000)
	b.Dealer = true
	tr.OnEvent(game.NewHandStartEvent(now, "r1", 1, []*game.Player{a, b}))

	a.Money, b.Money = 1050, 950
	tr.OnEvent(game.RoundCompleteEvent{
		PotAmount: 100,
		Winners:   []game.WinnerInfo{{Name: "A", Amount: 100, Score: evaluator.Score{Value: 21400}}},
		Players:   []game.PlayerSnapshot{a.Snapshot(), b.Snapshot()},
	})

	assert.Equal(t, []string{"A", "B"}, tr.Players())

	sa, ok := tr.Player("A")
	require.True(t, ok)
	assert.Equal(t, 5.0, sa.SumBB)
	assert.Equal(t, 1, sa.ShowdownWins)
	assert.Equal(t, 1, sa.PositionResults[1].Rounds, "A sits one after the dealer")

	sb, ok := tr.Player("B")
	require.True(t, ok)
	assert.Equal(t, -5.0, sb.SumBB)
	assert.Equal(t, 0, sb.Wins())
	assert.Equal(t, 1, sb.PositionResults[0].Rounds)

	_, ok = tr.Player("C")
	assert.False(t, ok)
}

func TestTrackerBalancesOverSession(t *testing.T) {
	const bigBlind = 10
	tr := NewTracker(bigBlind)
	bus := game.NewEventBus()
	bus.Subscribe(tr)

	g, err := game.NewGame(game.Options{
		Opponents:     3,
		StartingMoney: 1000,
		Rules:         game.TableRules{SmallBlind: 5, BigBlind: bigBlind, MinimumBet: bigBlind, MaximumBet: 500, MaxRaisesPerRound: 4},
		Bus:           bus,
		RNG:           randutil.New(7),
	})
	require.NoError(t, err)

	remainder := 0
	for i := 0; i < 25 && !g.Over(); i++ {
		result, err := g.PlayRound(context.Background())
		if errors.Is(err, game.ErrGameOver) {
			break
		}
		require.NoError(t, err)
		remainder += result.Remainder
	}

	total := 0.0
	for _, name := range tr.Players() {
		st, _ := tr.Player(name)
		require.NoError(t, st.Validate(), name)
		total += st.SumBB
	}
	assert.InDelta(t, -float64(remainder)/bigBlind, total, 1e-6, "chips won and lost should cancel out")
}
