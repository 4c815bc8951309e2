package game

import "fmt"

// ActionKind identifies what a player did
type ActionKind int

const (
	ActionNone ActionKind = iota
	Check
	Call
	Raise
	AllIn
	Fold
	// SmallBlind and BigBlind are forced bets; they appear in events but
	// are never valid decisions.
	SmallBlind
	BigBlind
)

func (a ActionKind) String() string {
	switch a {
	case ActionNone:
		return ""
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case AllIn:
		return "All In"
	case Fold:
		return "Fold"
	case SmallBlind:
		return "Small Blind"
	case BigBlind:
		return "Big Blind"
	default:
		return "Unknown"
	}
}

// Decision is what a player chooses on their turn. Amount is only used by
// Raise and holds the raise on top of the call.
type Decision struct {
	Kind      ActionKind
	Amount    int
	Reasoning string
}

func (d Decision) String() string {
	if d.Kind == Raise {
		return fmt.Sprintf("Raise %d", d.Amount)
	}
	return d.Kind.String()
}

func NewCheck(reason string) Decision { return Decision{Kind: Check, Reasoning: reason} }
func NewCall(reason string) Decision  { return Decision{Kind: Call, Reasoning: reason} }
func NewFold(reason string) Decision  { return Decision{Kind: Fold, Reasoning: reason} }
func NewAllIn(reason string) Decision { return Decision{Kind: AllIn, Reasoning: reason} }

// NewRaise raises by amount on top of whatever is needed to call
func NewRaise(amount int, reason string) Decision {
	return Decision{Kind: Raise, Amount: amount, Reasoning: reason}
}
