package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/equity"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/robot"
)

// Server exposes a single table over HTTP. One session exists at a
// time, guarded by a mutex; /new-game replaces it.
type Server struct {
	config *Config
	logger *log.Logger
	rng    *rand.Rand
	http   *http.Server

	mu      sync.Mutex
	session *game.Session
}

// NewServer creates an HTTP server for the configured table
func NewServer(config *Config, logger *log.Logger) *Server {
	return &Server{
		config: config,
		logger: logger.WithPrefix("server"),
		rng:    randutil.New(time.Now().UnixNano()),
	}
}

// actionRequest is the body of POST /player-action. The boundary only
// ever acts for the human seat, so no seat field is accepted.
type actionRequest struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.Handler(),
	}

	s.logger.Info("Starting HTTP server", "addr", s.config.Addr())
	return s.http.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Handler returns the routed handler behind the CORS middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/new-game", s.handleNewGame)
	mux.HandleFunc("/deal-flop", s.dealHandler("flop", (*game.Session).DealFlop))
	mux.HandleFunc("/deal-turn", s.dealHandler("turn", (*game.Session).DealTurn))
	mux.HandleFunc("/deal-river", s.dealHandler("river", (*game.Session).DealRiver))
	mux.HandleFunc("/showdown", s.handleShowdown)
	mux.HandleFunc("/next-hand", s.handleNextHand)
	mux.HandleFunc("/player-action", s.handlePlayerAction)
	mux.HandleFunc("/personalities", s.handlePersonalities)
	mux.HandleFunc("/health", s.handleHealth)
	return corsMiddleware(mux)
}

// corsMiddleware allows any origin. The development frontend is
// served from a different port.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionParams are per-request overrides of the configured game
// settings, taken from /new-game query parameters
type sessionParams struct {
	seats         int
	startingChips int
	mode          string
}

// catalogue returns the effective personality table: the built-ins
// with any configured personality blocks merged in by ID
func (s *Server) catalogue() []robot.Personality {
	var overrides []robot.Personality
	for _, p := range s.config.Personalities {
		overrides = append(overrides, robot.Personality{
			ID:             p.ID,
			Name:           p.Name,
			Tagline:        p.Tagline,
			Aggression:     p.Aggression,
			BluffFrequency: p.BluffFrequency,
			Patience:       p.Patience,
			RiskTolerance:  p.RiskTolerance,
		})
	}
	return robot.Merge(overrides)
}

// newSession builds a session from the server configuration, with any
// per-request overrides applied
func (s *Server) newSession(params sessionParams) (*game.Session, error) {
	cfg := game.Config{
		Seats:         s.config.Game.Seats,
		Mode:          s.config.Game.Mode,
		StartingChips: s.config.Game.StartingChips,
		Trials:        s.config.Game.Trials,
		Personalities: s.catalogue(),
		Rng:           s.rng,
		Logger:        s.logger,
	}
	if params.seats != 0 {
		cfg.Seats = params.seats
	}
	if params.startingChips != 0 {
		cfg.StartingChips = params.startingChips
	}
	if params.mode != "" {
		cfg.Mode = params.mode
	}
	return game.NewSession(cfg)
}

// currentSession returns the active session, creating a fresh default
// one if an operation arrives before /new-game. The caller must hold
// s.mu.
func (s *Server) currentSession() (*game.Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	s.logger.Warn("Operation with no active session, creating one", "error", game.ErrNoActiveSession)
	session, err := s.newSession(sessionParams{})
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	params, err := parseSessionParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.newSession(params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrInvalidSeatCount) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	s.session = session
	s.logger.Info("Created new game", "cards_remaining", session.Deck.CardsRemaining())
	writeJSON(w, http.StatusOK, Snapshot(session))
}

// dealHandler wraps a street deal as an HTTP handler. A deal with no
// active session creates a fresh one and returns it undealt rather
// than advancing a table the client has never seen.
func (s *Server) dealHandler(street string, deal func(*game.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		hadSession := s.session != nil
		session, err := s.currentSession()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if !hadSession {
			writeJSON(w, http.StatusOK, Snapshot(session))
			return
		}
		s.logger.Info("Dealing street", "street", street)
		deal(session)
		writeJSON(w, http.StatusOK, Snapshot(session))
	}
}

func (s *Server) handleShowdown(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.currentSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	session.Showdown()
	writeJSON(w, http.StatusOK, Snapshot(session))
}

func (s *Server) handleNextHand(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.currentSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	session.NextHand()
	writeJSON(w, http.StatusOK, Snapshot(session))
}

func (s *Server) handlePlayerAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	actionType, err := game.ParseActionType(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	session, err := s.currentSession()
	if err != nil {
		s.mu.Unlock()
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// the human always sits at seat 0; robot seats act on their own
	action := game.Action{Seat: 0, Type: actionType, Amount: req.Amount}
	if err := session.ApplyAction(action); err != nil {
		s.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	// folds change everyone's equity; recompute outside the lock so a
	// slow Monte Carlo run cannot stall other requests. The derived
	// rng keeps s.rng from being shared across the unlock.
	holes, board, undealt, trials := session.EquityInputs()
	rng := randutil.Derive(s.rng)
	s.mu.Unlock()

	probs := equity.EstimateAll(holes, board, undealt, trials, rng)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == session {
		session.SetWinProbabilities(probs)
	}
	writeJSON(w, http.StatusOK, Snapshot(session))
}

// parseSessionParams reads optional seats/chips/mode overrides from
// the /new-game query string
func parseSessionParams(r *http.Request) (sessionParams, error) {
	var params sessionParams
	q := r.URL.Query()
	if v := q.Get("seats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("invalid seats %q", v)
		}
		params.seats = n
	}
	if v := q.Get("chips"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return params, fmt.Errorf("invalid chips %q", v)
		}
		params.startingChips = n
	}
	params.mode = q.Get("mode")
	return params, nil
}

func (s *Server) handlePersonalities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalogue())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
