package game

// Stage is a step of the round state machine
type Stage int

const (
	StageNewHand Stage = iota
	StageBlind
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StageGameOver
)

func (s Stage) String() string {
	switch s {
	case StageNewHand:
		return "New Hand"
	case StageBlind:
		return "Blind"
	case StagePreFlop:
		return "PreFlop"
	case StageFlop:
		return "Flop"
	case StageTurn:
		return "Turn"
	case StageRiver:
		return "River"
	case StageShowdown:
		return "Showdown"
	case StageGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}
