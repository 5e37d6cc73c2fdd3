package game

import "fmt"

// Phase represents the current stage of a hand
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// ActionType is a betting action category
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
)

// String returns the string representation of an action type
func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseActionType maps boundary-layer action names onto action types
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action type %q", s)
	}
}

// Action is one betting action by one seat. Amount is required for
// Bet and Raise and ignored otherwise.
type Action struct {
	Seat   int
	Type   ActionType
	Amount int
}

// String returns a readable form like "seat 1 raise 40"
func (a Action) String() string {
	if a.Type == Bet || a.Type == Raise {
		return fmt.Sprintf("seat %d %s %d", a.Seat, a.Type, a.Amount)
	}
	return fmt.Sprintf("seat %d %s", a.Seat, a.Type)
}
