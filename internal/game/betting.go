package game

import (
	"fmt"

	"github.com/lox/holdem-table/internal/robot"
)

// ApplyAction validates and applies one betting action, then lets any
// robot seats act until control reaches a non-robot seat again. A
// returned error means nothing was mutated.
//
// Bet and Raise treat the amount as flat: the seat is debited the
// full amount and both the table bet and the seat's committed amount
// are set to it, without adding prior commitment.
func (s *Session) ApplyAction(a Action) error {
	if a.Seat < 0 || a.Seat >= len(s.Players) {
		return fmt.Errorf("%w: seat %d", ErrInvalidSeat, a.Seat)
	}
	if err := s.applyOne(a); err != nil {
		return err
	}
	s.runRobots()
	return nil
}

// applyOne applies a single action without robot follow-up. All
// validation happens before any chip or pot mutation.
func (s *Session) applyOne(a Action) error {
	p := s.Players[a.Seat]

	switch a.Type {
	case Fold:
		// folded cards leave play; they are not returned to the deck
		p.HoleCards = nil
		p.WinProbability = 0

	case Check:
		if s.CurrentBet != 0 {
			return fmt.Errorf("%w: cannot check into a live bet of %d", ErrIllegalAction, s.CurrentBet)
		}

	case Call:
		required := s.CurrentBet - p.CurrentBet
		if required < 0 {
			required = 0
		}
		if p.Chips < required {
			return fmt.Errorf("%w: call requires %d, seat %d has %d", ErrInsufficientChips, required, a.Seat, p.Chips)
		}
		p.Chips -= required
		s.Pot += required
		p.CurrentBet = s.CurrentBet

	case Bet, Raise:
		if a.Amount <= s.CurrentBet {
			return fmt.Errorf("%w: %s of %d must exceed table bet %d", ErrIllegalAction, a.Type, a.Amount, s.CurrentBet)
		}
		if p.Chips < a.Amount {
			return fmt.Errorf("%w: %s requires %d, seat %d has %d", ErrInsufficientChips, a.Type, a.Amount, a.Seat, p.Chips)
		}
		p.Chips -= a.Amount
		s.Pot += a.Amount
		s.CurrentBet = a.Amount
		p.CurrentBet = a.Amount

	default:
		return fmt.Errorf("%w: unknown action type %d", ErrIllegalAction, a.Type)
	}

	applied := a
	s.LastAction = &applied
	s.roundActions = append(s.roundActions, a)
	p.Stats.recordAction(a.Type, s.Pot)
	s.CurrentPlayer = (a.Seat + 1) % len(s.Players)

	s.logger.Debug("Applied action",
		"action", a.String(),
		"pot", s.Pot,
		"tableBet", s.CurrentBet,
		"chips", p.Chips)
	return nil
}

// runRobots applies robot actions while the active seat is a robot.
// The loop is bounded by the seat count so it always terminates; an
// earlier version recursed from inside the mutation instead.
func (s *Session) runRobots() {
	for i := 0; i < len(s.Players); i++ {
		seat := s.CurrentPlayer
		p := s.Players[seat]
		if !p.IsRobot {
			return
		}
		if !p.HasHoleCards() {
			// folded robot seats pass without acting
			s.CurrentPlayer = (seat + 1) % len(s.Players)
			continue
		}

		persona, ok := s.personalities[p.PersonalityID]
		if !ok {
			persona = robot.Assign(seat - 1)
		}
		decision := robot.Decide(persona, s.CurrentBet, s.Pot, s.rng)
		action := Action{Seat: seat, Type: robotActionType(decision.Kind), Amount: decision.Amount}

		if err := s.applyOne(action); err != nil {
			// the policy picked an unaffordable amount; degrade to
			// the cheapest legal action instead of wedging the hand
			fallback := Action{Seat: seat, Type: Fold}
			if s.CurrentBet == 0 {
				fallback.Type = Check
			} else if p.Chips >= s.CurrentBet-p.CurrentBet {
				fallback.Type = Call
			}
			s.logger.Debug("Robot action rejected, using fallback",
				"seat", seat, "error", err, "fallback", fallback.Type)
			if err := s.applyOne(fallback); err != nil {
				// fold is always legal, so this cannot happen
				s.logger.Error("Robot fallback failed", "seat", seat, "error", err)
				return
			}
		}
	}
}

func robotActionType(k robot.Kind) ActionType {
	switch k {
	case robot.Fold:
		return Fold
	case robot.Check:
		return Check
	case robot.Call:
		return Call
	case robot.Bet:
		return Bet
	default:
		return Raise
	}
}
