package robot

import (
	rand "math/rand/v2"
)

// Kind is the category of action a robot wants to take. The betting
// engine maps these onto its own action types.
type Kind int

const (
	Fold Kind = iota
	Check
	Call
	Bet
	Raise
)

func (k Kind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise"}[k]
}

// Decision is a single chosen action. Amount is meaningful only for
// Bet and Raise.
type Decision struct {
	Kind   Kind
	Amount int
}

// Decide produces exactly one action for a robot seat via weighted
// random choice driven by the personality's aggression.
//
// With no live table bet the robot checks with probability
// (1 - aggression) and otherwise bets about half the pot scaled by
// aggression. Facing a bet it folds with probability
// (1 - aggression) * 0.5, calls up to cumulative (1 - aggression),
// and otherwise raises to the table bet scaled by (1 + aggression).
func Decide(p Personality, tableBet, pot int, rng *rand.Rand) Decision {
	if tableBet == 0 {
		if rng.Float64() < 1.0-p.Aggression {
			return Decision{Kind: Check}
		}
		amount := int(float64(pot) * p.Aggression * 0.5)
		if amount < 1 {
			amount = 1
		}
		return Decision{Kind: Bet, Amount: amount}
	}

	r := rng.Float64()
	if r < (1.0-p.Aggression)*0.5 {
		return Decision{Kind: Fold}
	}
	if r < 1.0-p.Aggression {
		return Decision{Kind: Call}
	}
	amount := int(float64(tableBet) * (1.0 + p.Aggression))
	if amount <= tableBet {
		amount = tableBet + 1
	}
	return Decision{Kind: Raise, Amount: amount}
}
