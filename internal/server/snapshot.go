package server

import (
	"time"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// CardJSON serializes a card with named suit and rank, matching the
// shape web clients expect
type CardJSON struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// PlayerJSON is one seat in a state snapshot. Hole cards are exposed
// for every seat: the client renders the whole table face-up.
type PlayerJSON struct {
	Name           string     `json:"name"`
	Chips          int        `json:"chips"`
	HoleCards      []CardJSON `json:"hole_cards"`
	IsRobot        bool       `json:"is_robot"`
	PersonalityID  string     `json:"personality_id,omitempty"`
	CurrentBet     int        `json:"current_bet"`
	WinProbability float64    `json:"win_probability"`
	HandsPlayed    int        `json:"hands_played"`
	FavoriteAction string     `json:"favorite_action,omitempty"`
}

// ActionJSON is one recorded betting action
type ActionJSON struct {
	Seat   int    `json:"seat"`
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
}

// HistoryJSON is one completed betting round
type HistoryJSON struct {
	Timestamp time.Time    `json:"timestamp"`
	Phase     string       `json:"phase"`
	Actions   []ActionJSON `json:"actions"`
	Pot       int          `json:"pot"`
	Board     []CardJSON   `json:"board"`
	Winner    string       `json:"winner,omitempty"`
}

// StateJSON is the full table snapshot returned by every game route
type StateJSON struct {
	Players        []PlayerJSON  `json:"players"`
	CommunityCards []CardJSON    `json:"community_cards"`
	Pot            int           `json:"pot"`
	CurrentBet     int           `json:"current_bet"`
	CurrentPlayer  int           `json:"current_player"`
	Phase          string        `json:"phase"`
	HandNumber     int           `json:"hand_number"`
	Mode           string        `json:"mode"`
	LastAction     *ActionJSON   `json:"last_action,omitempty"`
	History        []HistoryJSON `json:"history"`
	CardsRemaining int           `json:"cards_remaining"`
}

func cardJSON(c deck.Card) CardJSON {
	return CardJSON{Suit: c.Suit.Name(), Rank: c.Rank.Name()}
}

func cardsJSON(cards []deck.Card) []CardJSON {
	out := make([]CardJSON, len(cards))
	for i, c := range cards {
		out[i] = cardJSON(c)
	}
	return out
}

func actionJSON(a game.Action) ActionJSON {
	return ActionJSON{Seat: a.Seat, Type: a.Type.String(), Amount: a.Amount}
}

// Snapshot converts a session into its wire representation. The caller
// must hold whatever lock guards the session.
func Snapshot(s *game.Session) StateJSON {
	state := StateJSON{
		CommunityCards: cardsJSON(s.Board),
		Pot:            s.Pot,
		CurrentBet:     s.CurrentBet,
		CurrentPlayer:  s.CurrentPlayer,
		Phase:          s.Phase.String(),
		HandNumber:     s.HandNumber,
		Mode:           s.Mode,
		CardsRemaining: s.Deck.CardsRemaining(),
	}

	if s.LastAction != nil {
		last := actionJSON(*s.LastAction)
		state.LastAction = &last
	}

	for _, p := range s.Players {
		pj := PlayerJSON{
			Name:           p.Name,
			Chips:          p.Chips,
			HoleCards:      cardsJSON(p.HoleCards),
			IsRobot:        p.IsRobot,
			PersonalityID:  p.PersonalityID,
			CurrentBet:     p.CurrentBet,
			WinProbability: p.WinProbability,
			HandsPlayed:    p.Stats.HandsPlayed,
		}
		if favorite, ok := p.Stats.FavoriteAction(); ok {
			pj.FavoriteAction = favorite.String()
		}
		state.Players = append(state.Players, pj)
	}

	for _, entry := range s.History {
		hj := HistoryJSON{
			Timestamp: entry.Timestamp,
			Phase:     entry.Phase.String(),
			Pot:       entry.Pot,
			Board:     cardsJSON(entry.Board),
			Winner:    entry.Winner,
		}
		for _, a := range entry.Actions {
			hj.Actions = append(hj.Actions, actionJSON(a))
		}
		state.History = append(state.History, hj)
	}

	return state
}
