package chess

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Engine drives a single game: it validates square names, applies moves,
// keeps the optional clock running and remembers how the game ended.
type Engine struct {
	game   *GameState
	clock  *Clock
	status GameStatus
	reason string
	logger zerolog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for move and game-end events.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock attaches a match clock. The side to move is charged on every move.
func WithClock(clock *Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	return newEngine(NewGameState(), opts)
}

func NewEngineFromFEN(fen string, opts ...EngineOption) (*Engine, error) {
	game, err := NewGameStateFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}
	return newEngine(game, opts), nil
}

func newEngine(game *GameState, opts []EngineOption) *Engine {
	e := &Engine{
		game:   game,
		status: StatusActive,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if end := game.Status(); end != NotEnded {
		e.finish(end)
	}
	return e
}

// Game exposes the underlying game state.
func (e *Engine) Game() *GameState {
	return e.game
}

func (e *Engine) Clock() *Clock {
	return e.clock
}

// AttachClock starts charging moves to clock. Games rebuilt from stored
// moves attach their clock only after the replay.
func (e *Engine) AttachClock(clock *Clock) {
	e.clock = clock
}

// MakeMove plays from-to, promoting to promotion ("q", "r", "b", "n" or
// empty for queen) when a pawn reaches the last rank.
func (e *Engine) MakeMove(from, to, promotion string) (*MoveResult, error) {
	if e.status != StatusActive {
		return nil, ErrGameOver
	}

	fromSquare, ok := ParseSquare(from)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSquare, from)
	}
	toSquare, ok := ParseSquare(to)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSquare, to)
	}

	kind := Queen
	if promotion != "" {
		if kind = ParsePromotion(promotion); kind == NoPieceKind {
			return nil, fmt.Errorf("%w: unknown promotion %q", ErrIllegalMove, promotion)
		}
	}

	if err := e.tick(); err != nil {
		return nil, err
	}

	move, ok := e.game.MakeCandidateWithPromotion(fromSquare, toSquare, kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	mover := e.game.Turn()
	outcome := e.game.Apply(move)
	if outcome.Result == InvalidMove {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	e.logger.Debug().
		Str("move", move.String()).
		Str("kind", move.Kind.String()).
		Str("color", mover.String()).
		Msg("Move applied")

	result := &MoveResult{
		From:  from,
		To:    to,
		Kind:  move.Kind.String(),
		FEN:   e.game.FEN(),
		Check: e.game.IsCheck(),
	}
	if move.Kind == Promotion {
		result.Promotion = move.PromoteTo.String()
	}
	if outcome.Result == GameEnded {
		e.finish(outcome.End)
		result.Checkmate = outcome.End == Checkmate
		result.Draw = outcome.End.IsDraw()
		result.GameOver = true
		result.Result = string(e.status)
		result.Reason = e.reason
	}
	return result, nil
}

// tick charges the side to move. Running out of time ends the game.
func (e *Engine) tick() error {
	if e.clock == nil {
		return nil
	}
	turn := e.game.Turn()
	err := e.clock.Tick(turn)
	if errors.Is(err, ErrTimeExhausted) {
		e.LoseOnTime(turn)
		return fmt.Errorf("%w: %w", ErrGameOver, err)
	}
	return err
}

// LoseOnTime ends an active game with loser's flag down.
func (e *Engine) LoseOnTime(loser Color) {
	if e.status != StatusActive {
		return
	}
	e.status = winnerStatus(loser.Other())
	e.reason = ReasonTime
	e.logger.Info().Str("color", loser.String()).Msg("Flag fell")
}

// CheckFlag samples the clock for the side to move without a move and
// reports whether the game was lost on time.
func (e *Engine) CheckFlag() bool {
	if e.status != StatusActive {
		return e.reason == ReasonTime
	}
	return e.tick() != nil
}

func (e *Engine) finish(end EndReason) {
	switch {
	case end == Checkmate:
		// The side to move is mated.
		e.status = winnerStatus(e.game.Turn().Other())
	case end.IsDraw():
		e.status = StatusDraw
	}
	e.reason = end.String()
	e.logger.Info().Str("status", string(e.status)).Str("reason", e.reason).Msg("Game ended")
}

func winnerStatus(c Color) GameStatus {
	if c == White {
		return StatusWhiteWon
	}
	return StatusBlackWon
}

// LegalMovesFrom lists the legal moves of the piece on square.
func (e *Engine) LegalMovesFrom(square string) ([]LegalMove, error) {
	sq, ok := ParseSquare(square)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSquare, square)
	}
	moves := e.game.LegalMovesFrom(sq)
	out := make([]LegalMove, 0, len(moves))
	for _, m := range moves {
		out = append(out, newLegalMove(m))
	}
	return out, nil
}

// LegalMoves lists every legal move of the side to move.
func (e *Engine) LegalMoves(ctx context.Context) ([]LegalMove, error) {
	moves, err := e.game.LegalMovesParallel(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LegalMove, 0, len(moves))
	for _, m := range moves {
		out = append(out, newLegalMove(m))
	}
	return out, nil
}

func (e *Engine) GetFEN() string {
	return e.game.FEN()
}

func (e *Engine) GetStatus() GameStatus {
	return e.status
}

// GetReason says why the game ended, or "" while it is still running.
func (e *Engine) GetReason() string {
	return e.reason
}

func (e *Engine) GetActiveColor() string {
	return e.game.Turn().String()
}

func (e *Engine) IsCheck() bool {
	return e.game.IsCheck()
}

// GetMoves returns the played moves in coordinate form.
func (e *Engine) GetMoves() []string {
	history := e.game.History()
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.String()
	}
	return moves
}

// LoadFEN replaces the game with the position described by fen. On error
// the current game is kept.
func (e *Engine) LoadFEN(fen string) error {
	game, err := NewGameStateFromFEN(fen)
	if err != nil {
		return err
	}
	e.game = game
	e.status = StatusActive
	e.reason = ""
	if end := game.Status(); end != NotEnded {
		e.finish(end)
	}
	return nil
}

// GetPieceValues returns the material values keyed by piece name.
func (e *Engine) GetPieceValues() map[string]int {
	values := make(map[string]int, len(StandardPieceValues))
	for kind, v := range StandardPieceValues {
		values[kind.String()] = v
	}
	return values
}

// GetMaterialCount sums the material of each side.
func (e *Engine) GetMaterialCount() MaterialCount {
	var count MaterialCount
	pos := e.game.Position()
	for _, sq := range AllSquares() {
		piece, ok := pos.Board.Get(sq)
		if !ok {
			continue
		}
		if piece.Color == White {
			count.White += StandardPieceValues[piece.Kind]
		} else {
			count.Black += StandardPieceValues[piece.Kind]
		}
	}
	return count
}

// GetMaterialBalance is White's material minus Black's.
func (e *Engine) GetMaterialBalance() int {
	count := e.GetMaterialCount()
	return count.White - count.Black
}

// ParseMove splits coordinate notation such as "e7e8q" into its parts.
func ParseMove(s string) (from, to, promotion string, err error) {
	if len(s) != 4 && len(s) != 5 {
		return "", "", "", fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	return s[0:2], s[2:4], s[4:], nil
}

func ParsePromotion(p string) PieceKind {
	switch p {
	case "q", "queen":
		return Queen
	case "r", "rook":
		return Rook
	case "b", "bishop":
		return Bishop
	case "n", "knight":
		return Knight
	default:
		return NoPieceKind
	}
}
