package game

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/equity"
	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/robot"
)

// Config configures a new session. Zero values fall back to sensible
// defaults; only Seats and StartingChips are required.
type Config struct {
	Seats         int
	Mode          string
	StartingChips int
	Trials        int                 // Monte Carlo trials per equity refresh
	Personalities []robot.Personality // defaults to the built-in catalogue
	Rng           *rand.Rand
	Clock         quartz.Clock
	Logger        *log.Logger
}

// Session is the authoritative state of a single hand in progress:
// the deck, the seats, the board and the betting state. It is not
// safe for concurrent use; the boundary layer serializes access.
type Session struct {
	Deck          *deck.Deck
	Players       []*Player
	Board         []deck.Card
	Pot           int
	CurrentBet    int // table bet: highest single-round commitment so far
	CurrentPlayer int
	LastAction    *Action
	Phase         Phase
	History       []HistoryEntry
	HandNumber    int
	Mode          string

	roundActions  []Action
	personalities map[string]robot.Personality
	trials        int
	rng           *rand.Rand
	clock         quartz.Clock
	logger        *log.Logger
}

// NewSession creates a session with freshly dealt hole cards for every
// seat and an initial equity estimate. Seat 0 is the human seat; every
// other seat is a robot with a personality assigned round-robin.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Seats < 2 || cfg.Seats > 8 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeatCount, cfg.Seats)
	}
	if cfg.Rng == nil {
		cfg.Rng = randutil.New(time.Now().UnixNano())
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Trials <= 0 {
		cfg.Trials = equity.DefaultTrials
	}
	personalities := cfg.Personalities
	if len(personalities) == 0 {
		personalities = robot.Catalogue()
	}

	s := &Session{
		Deck:          deck.New(cfg.Rng),
		Phase:         PreFlop,
		HandNumber:    1,
		Mode:          cfg.Mode,
		personalities: make(map[string]robot.Personality, len(personalities)),
		trials:        cfg.Trials,
		rng:           cfg.Rng,
		clock:         cfg.Clock,
		logger:        cfg.Logger.WithPrefix("session"),
	}

	for _, p := range personalities {
		s.personalities[p.ID] = p
	}

	for seat := 0; seat < cfg.Seats; seat++ {
		player := &Player{
			Name:  "You",
			Chips: cfg.StartingChips,
		}
		if seat > 0 {
			persona := personalities[(seat-1)%len(personalities)]
			player.Name = persona.Name
			player.IsRobot = true
			player.PersonalityID = persona.ID
		}
		player.HoleCards = s.Deck.DealN(2)
		player.Stats.HandsPlayed = 1
		s.Players = append(s.Players, player)
	}

	s.RefreshWinProbabilities()

	s.logger.Info("Created session",
		"seats", cfg.Seats,
		"chips", cfg.StartingChips,
		"mode", cfg.Mode)
	return s, nil
}

// NextHand starts a fresh hand in the same session. Chip stacks and
// per-seat statistics carry over; the deck, board, pot and betting
// state are replaced.
func (s *Session) NextHand() {
	s.HandNumber++
	s.Deck.Reset()
	s.Board = nil
	s.Pot = 0
	s.CurrentBet = 0
	s.CurrentPlayer = 0
	s.LastAction = nil
	s.Phase = PreFlop
	s.roundActions = nil

	for _, p := range s.Players {
		p.HoleCards = s.Deck.DealN(2)
		p.CurrentBet = 0
		p.WinProbability = 0
		p.Stats.HandsPlayed++
	}

	s.RefreshWinProbabilities()
	s.logger.Info("Started new hand", "hand", s.HandNumber)
}

// DealFlop reveals the first three community cards
func (s *Session) DealFlop() {
	s.dealStreet(PreFlop, Flop, 3)
}

// DealTurn reveals the fourth community card
func (s *Session) DealTurn() {
	s.dealStreet(Flop, Turn, 1)
}

// DealRiver reveals the fifth community card
func (s *Session) DealRiver() {
	s.dealStreet(Turn, River, 1)
}

// dealStreet closes out the current betting round, deals n cards onto
// the board and opens the next round. Deals out of phase order are
// no-ops. An exhausted deck deals fewer cards rather than faulting.
func (s *Session) dealStreet(from, to Phase, n int) {
	if s.Phase != from {
		s.logger.Warn("Ignoring out-of-order deal", "phase", s.Phase, "wanted", from)
		return
	}

	s.captureHistory("")

	cards := s.Deck.DealN(n)
	s.Board = append(s.Board, cards...)
	s.Phase = to

	s.CurrentBet = 0
	for _, p := range s.Players {
		p.resetForNewRound()
	}
	s.CurrentPlayer = 0

	s.RefreshWinProbabilities()
	s.logger.Debug("Dealt street", "phase", to, "board", s.Board, "pot", s.Pot)
}

// Showdown compares the remaining live hands, awards the pot (split
// evenly on exact ties, odd chips to the earliest seat) and records
// the final history entry with the winner.
func (s *Session) Showdown() {
	if s.Phase == Showdown {
		return
	}

	winners := s.findWinners()
	if len(winners) > 0 && s.Pot > 0 {
		share := s.Pot / len(winners)
		remainder := s.Pot % len(winners)
		for i, seat := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			s.Players[seat].Chips += amount
		}
		s.Pot = 0
	}

	names := ""
	for i, seat := range winners {
		if i > 0 {
			names += ", "
		}
		names += s.Players[seat].Name
	}

	s.Phase = Showdown
	s.captureHistory(names)
	s.logger.Info("Showdown", "winners", names, "board", s.Board)
}

// findWinners returns the live seats holding the strongest hand. A
// single live seat wins outright; fewer than five total cards means no
// hand can be formed and the pot splits among the live seats.
func (s *Session) findWinners() []int {
	var live []int
	for seat, p := range s.Players {
		if p.HasHoleCards() {
			live = append(live, seat)
		}
	}
	if len(live) <= 1 {
		return live
	}
	if len(s.Board) < 3 {
		return live
	}

	var winners []int
	var best evaluator.Hand
	for _, seat := range live {
		cards := append(append([]deck.Card(nil), s.Players[seat].HoleCards...), s.Board...)
		hand := evaluator.EvaluateBest(cards)
		if len(winners) == 0 {
			winners = []int{seat}
			best = hand
			continue
		}
		switch hand.Compare(best) {
		case 1:
			winners = []int{seat}
			best = hand
		case 0:
			winners = append(winners, seat)
		}
	}
	return winners
}

// TotalChips returns the sum of all stacks plus the pot, used to
// verify chip conservation.
func (s *Session) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// EquityInputs returns defensive copies of everything the equity
// simulator needs, so the estimate can run outside the session lock.
func (s *Session) EquityInputs() (holes [][]deck.Card, board []deck.Card, undealt []deck.Card, trials int) {
	holes = make([][]deck.Card, len(s.Players))
	for i, p := range s.Players {
		holes[i] = append([]deck.Card(nil), p.HoleCards...)
	}
	board = append([]deck.Card(nil), s.Board...)
	return holes, board, s.Deck.Remaining(), s.trials
}

// SetWinProbabilities writes back per-seat probabilities computed from
// a prior EquityInputs snapshot.
func (s *Session) SetWinProbabilities(probs []float64) {
	for i, p := range s.Players {
		if i < len(probs) {
			p.WinProbability = probs[i]
		}
	}
}

// RefreshWinProbabilities recomputes every seat's win probability
// synchronously.
func (s *Session) RefreshWinProbabilities() {
	holes, board, undealt, trials := s.EquityInputs()
	s.SetWinProbabilities(equity.EstimateAll(holes, board, undealt, trials, s.rng))
}
