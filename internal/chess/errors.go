package chess

import "errors"

// Sentinel errors returned by the engine. Use errors.Is to test for them.
var (
	// ErrInvalidFEN indicates a malformed position description.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrIllegalMove indicates a move that is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSquare indicates a square name outside a1..h8.
	ErrInvalidSquare = errors.New("invalid square notation")

	// ErrGameOver is returned when a move is submitted to a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrTimeExhausted is returned by the clock once a side has no time left.
	ErrTimeExhausted = errors.New("time exhausted")

	// ErrUnsupportedMode is returned for game modes that are declared but not implemented.
	ErrUnsupportedMode = errors.New("unsupported game mode")
)
