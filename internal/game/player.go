package game

import (
	"github.com/lox/holdem-table/internal/deck"
)

// Player represents a seat at the table. Seat index is identity; seat
// 0 is always the human seat.
type Player struct {
	Name           string
	Chips          int
	HoleCards      []deck.Card // empty after folding, 2 while live
	IsRobot        bool
	PersonalityID  string // empty for the human seat
	CurrentBet     int    // amount committed during the current round
	WinProbability float64
	Stats          PlayerStats
}

// HasHoleCards reports whether the seat is still live in the hand
func (p *Player) HasHoleCards() bool {
	return len(p.HoleCards) == 2
}

// resetForNewRound clears the per-round commitment
func (p *Player) resetForNewRound() {
	p.CurrentBet = 0
}

// PlayerStats accumulates per-seat statistics across hands
type PlayerStats struct {
	HandsPlayed  int
	ActionCounts map[ActionType]int
	BiggestPot   int
}

// recordAction counts an action and tracks the largest pot the seat
// has been involved in
func (st *PlayerStats) recordAction(action ActionType, pot int) {
	if st.ActionCounts == nil {
		st.ActionCounts = make(map[ActionType]int)
	}
	st.ActionCounts[action]++
	if pot > st.BiggestPot {
		st.BiggestPot = pot
	}
}

// FavoriteAction returns the most frequent action this seat has taken.
// Ties break toward the lower action type for determinism.
func (st PlayerStats) FavoriteAction() (ActionType, bool) {
	if len(st.ActionCounts) == 0 {
		return 0, false
	}
	var favorite ActionType
	best := -1
	for action := Fold; action <= Raise; action++ {
		if n := st.ActionCounts[action]; n > best {
			favorite = action
			best = n
		}
	}
	return favorite, true
}
