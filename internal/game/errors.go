package game

import "errors"

// Sentinel errors returned by session construction and the betting
// engine. All of them except ErrInvalidSeatCount are recoverable: the
// session is left exactly as it was before the failing call.
var (
	// ErrInvalidSeatCount rejects session creation outside 2-8 seats
	ErrInvalidSeatCount = errors.New("seat count must be between 2 and 8")

	// ErrIllegalAction covers checks into a live bet and bets or
	// raises that do not exceed the table bet
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientChips means the seat cannot cover the amount
	ErrInsufficientChips = errors.New("insufficient chips")

	// ErrInvalidSeat means the action names a seat that doesn't exist
	ErrInvalidSeat = errors.New("invalid seat")

	// ErrNoActiveSession is surfaced by the boundary layer when an
	// operation arrives before any session exists; the boundary
	// recovers by creating a default session
	ErrNoActiveSession = errors.New("no active session")
)
