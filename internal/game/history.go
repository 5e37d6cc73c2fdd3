package game

import (
	"time"

	"github.com/lox/holdem-table/internal/deck"
)

// HistoryEntry captures the state of the hand at the end of a betting
// round: the actions taken during it, the pot, the board and every
// seat's hole cards at that moment. Winner is set only by showdown
// entries.
type HistoryEntry struct {
	Timestamp time.Time
	Phase     Phase
	Actions   []Action
	Pot       int
	Board     []deck.Card
	HoleCards [][]deck.Card
	Winner    string
}

// captureHistory appends an entry for the phase just completed,
// consuming the actions accumulated since the previous capture.
func (s *Session) captureHistory(winner string) {
	entry := HistoryEntry{
		Timestamp: s.clock.Now(),
		Phase:     s.Phase,
		Actions:   s.roundActions,
		Pot:       s.Pot,
		Board:     append([]deck.Card(nil), s.Board...),
		Winner:    winner,
	}
	for _, p := range s.Players {
		entry.HoleCards = append(entry.HoleCards, append([]deck.Card(nil), p.HoleCards...))
	}
	s.History = append(s.History, entry)
	s.roundActions = nil
}
