package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// AIEngine decides for computer seats. It scores the hand for the current
// stage, occasionally takes a random action, and otherwise maps the score
// onto fixed thresholds.
type AIEngine struct {
	rng        *rand.Rand
	minimumBet int
	logger     *log.Logger
}

// NewAIEngine creates an AI that raises in units of minimumBet
func NewAIEngine(rng *rand.Rand, minimumBet int, logger *log.Logger) *AIEngine {
	return &AIEngine{
		rng:        rng,
		minimumBet: minimumBet,
		logger:     logger.WithPrefix("ai"),
	}
}

// Decide implements DecisionMaker
func (ai *AIEngine) Decide(ctx context.Context, p *Player, rc *RoundContext, checkIsPossible bool) Decision {
	logger := ai.logger.With("player", p.Name, "stage", rc.Stage)

	score, err := ai.EvaluateHand(ctx, p, rc)
	if err != nil {
		logger.Warn("Hand evaluation failed", "error", err)
	}

	var winPct float64
	if rc.Stage == StageRiver {
		if winPct, err = evaluator.WinPercentage(ctx, p.Hand, rc.Community); err != nil {
			logger.Warn("Win percentage failed", "error", err)
		}
	}
	logger.Debug("Evaluated hand", "score", fmt.Sprintf("%.2f", score), "win_pct", winPct)

	if roll := ai.rng.IntN(100); roll < 20 {
		return ai.wildcard(roll, rc.Stage, score, winPct, checkIsPossible)
	}

	score += winChanceWeighting(winPct)
	return ai.decideByScore(p, rc.CallAmount(p), score, checkIsPossible)
}

// wildcard is the random branch taken on a roll below 20
func (ai *AIEngine) wildcard(roll int, stage Stage, score, winPct float64, checkIsPossible bool) Decision {
	switch {
	case roll < 5:
		if stage != StagePreFlop && score < 6 && winPct < 90 {
			return NewFold("wildcard fold")
		}
		if checkIsPossible {
			return NewCheck("wildcard fold declined, free check")
		}
		return NewCall("wildcard fold declined")
	case roll < 15:
		return NewCall("wildcard call")
	default:
		return NewRaise(ai.minimumBet, "wildcard raise")
	}
}

func (ai *AIEngine) decideByScore(p *Player, callAmount int, score float64, checkIsPossible bool) Decision {
	reason := fmt.Sprintf("score %.2f", score)
	short := p.Money < callAmount

	switch {
	case score < 2:
		if !checkIsPossible {
			return NewFold(reason + ", weak hand")
		}
		if ai.rng.Float64() < 0.8 {
			return NewCheck(reason + ", weak hand")
		}
		return NewCall(reason + ", weak hand")
	case score < 3:
		if checkIsPossible {
			if ai.rng.Float64() < 0.5 {
				return NewCall(reason + ", marginal hand")
			}
			return NewCheck(reason + ", marginal hand")
		}
		if p.LastAction == Raise || ai.rng.Float64() < 0.8 || short {
			return NewCall(reason + ", marginal hand")
		}
		return NewRaise(ai.minimumBet, reason+", marginal hand")
	case score < 8:
		if ai.rng.Float64() < 0.5 || short {
			return NewCall(reason + ", good hand")
		}
		return NewRaise(ai.minimumBet, reason+", good hand")
	default:
		return NewRaise(ai.minimumBet, reason+", strong hand")
	}
}

// EvaluateHand scores the player's hand for the current stage on the
// decimal hand scale (1 to 10, higher is better).
func (ai *AIEngine) EvaluateHand(ctx context.Context, p *Player, rc *RoundContext) (float64, error) {
	full := make([]deck.Card, 0, len(p.Hand)+len(rc.Community))
	full = append(full, p.Hand...)
	full = append(full, rc.Community...)

	best, err := evaluator.BestHandScore(full)
	if err != nil {
		return 0, err
	}
	score := best.Float()

	switch rc.Stage {
	case StagePreFlop:
		return preFlopStrength(best, p.Hand), nil
	case StageFlop, StageTurn:
		potential, err := evaluator.BestPossibleHand(ctx, full, 7)
		if err != nil {
			return score, err
		}
		if rc.Stage == StageFlop {
			// weighted toward the hand already made
			return (2*score + potential.Float()) / 3, nil
		}
		// weighted toward what the hand can still become
		return (score + 2*potential.Float()) / 3, nil
	}
	return score, nil
}

func preFlopStrength(best evaluator.Score, hole []deck.Card) float64 {
	switch {
	case best.Category == evaluator.OnePair && best.Kicker() >= int(deck.Jack):
		return 10
	case best.Category == evaluator.OnePair:
		return 8
	case best.Category == evaluator.HighCard && best.Kicker() == int(deck.Ace):
		return 5
	}

	if len(hole) == 2 {
		gap := int(hole[0].Rank) - int(hole[1].Rank)
		if gap == 1 || gap == -1 || gap == 2 || gap == -2 {
			return 4
		}
	}
	if best.Kicker() >= int(deck.Ten) {
		return 2
	}
	return best.Float()
}

// winChanceWeighting adjusts a river score by the win percentage band
func winChanceWeighting(pct float64) float64 {
	switch {
	case pct == 0:
		return 0
	case pct < 10:
		return -2
	case pct < 20:
		return -1
	case pct < 60:
		return 0
	case pct < 80:
		return 1
	case pct < 90:
		return 2
	default:
		return 3
	}
}
