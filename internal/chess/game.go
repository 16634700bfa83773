package chess

import "context"

// Result is the coarse outcome of GameState.Apply.
type Result int

const (
	Continue Result = iota
	InvalidMove
	GameEnded
)

func (r Result) String() string {
	switch r {
	case InvalidMove:
		return "invalid_move"
	case GameEnded:
		return "game_ended"
	default:
		return "continue"
	}
}

// EndReason says why a game ended.
type EndReason int

const (
	NotEnded EndReason = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
)

var endReasonNames = map[EndReason]string{
	NotEnded:             "",
	Checkmate:            "checkmate",
	Stalemate:            "stalemate",
	FiftyMoveRule:        "fifty_move_rule",
	InsufficientMaterial: "insufficient_material",
}

func (e EndReason) String() string {
	return endReasonNames[e]
}

// IsDraw reports whether the reason ends the game without a winner.
func (e EndReason) IsDraw() bool {
	return e == Stalemate || e == FiftyMoveRule || e == InsufficientMaterial
}

// Outcome is returned by GameState.Apply.
type Outcome struct {
	Result Result
	End    EndReason
}

// GameState owns a position and the moves played from it. It is the only
// mutable component of the engine and is not safe for concurrent use.
type GameState struct {
	pos     Position
	start   Position
	history []Move
}

// NewGameState starts a game from the standard initial position.
func NewGameState() *GameState {
	return NewGameStateFrom(StartPosition())
}

// NewGameStateFrom starts a game from pos.
func NewGameStateFrom(pos Position) *GameState {
	return &GameState{pos: pos, start: pos}
}

// NewGameStateFromFEN parses fen and starts a game from it.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGameStateFrom(pos), nil
}

// Position returns a copy of the current position.
func (g *GameState) Position() Position {
	return g.pos
}

func (g *GameState) Turn() Color {
	return g.pos.Turn
}

func (g *GameState) FEN() string {
	return g.pos.FEN()
}

// EnPassantTarget returns the square the side to move may capture onto en
// passant, if any.
func (g *GameState) EnPassantTarget() (Square, bool) {
	return g.pos.EnPassantTarget()
}

// StartFEN returns the position the game was started from.
func (g *GameState) StartFEN() string {
	return g.start.FEN()
}

// History returns the accepted moves in order.
func (g *GameState) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// Clone returns an independent copy of the game.
func (g *GameState) Clone() *GameState {
	return &GameState{pos: g.pos, start: g.start, history: g.History()}
}

// LegalMovesFrom lists the legal moves of the piece on sq.
func (g *GameState) LegalMovesFrom(sq Square) []Move {
	return g.pos.MovesFrom(sq, Legal)
}

// PseudoLegalMovesFrom lists moves of the piece on sq ignoring king safety.
func (g *GameState) PseudoLegalMovesFrom(sq Square) []Move {
	return g.pos.MovesFrom(sq, PseudoLegal)
}

// LegalMoves lists every legal move of the side to move.
func (g *GameState) LegalMoves() []Move {
	return g.pos.Moves(Legal)
}

// LegalMovesParallel is LegalMoves computed with one goroutine per piece.
func (g *GameState) LegalMovesParallel(ctx context.Context) ([]Move, error) {
	return g.pos.MovesParallel(ctx, Legal)
}

// IsCheck reports whether the side to move is in check.
func (g *GameState) IsCheck() bool {
	return g.pos.InCheck()
}

// IsCheckmate reports whether the side to move has no legal move and is in check.
func (g *GameState) IsCheckmate() bool {
	return g.IsCheck() && !g.hasLegalMove()
}

// IsStalemate reports whether the side to move has no legal move and is not in check.
func (g *GameState) IsStalemate() bool {
	return !g.IsCheck() && !g.hasLegalMove()
}

func (g *GameState) hasLegalMove() bool {
	for _, sq := range AllSquares() {
		if pc, ok := g.pos.Board.Get(sq); ok && pc.Color == g.pos.Turn {
			if len(g.pos.MovesFrom(sq, Legal)) > 0 {
				return true
			}
		}
	}
	return false
}

// FiftyMoveRule reports whether a hundred half-moves have passed without a
// pawn move or capture.
func (g *GameState) FiftyMoveRule() bool {
	return g.pos.HalfmoveClock >= 100
}

// Status evaluates the current position for a terminal condition.
func (g *GameState) Status() EndReason {
	if !g.hasLegalMove() {
		if g.IsCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if g.FiftyMoveRule() {
		return FiftyMoveRule
	}
	if g.pos.InsufficientMaterial() {
		return InsufficientMaterial
	}
	return NotEnded
}

// MakeCandidate finds the pseudo-legal move of the side to move from from
// to to. A pawn reaching the last rank is promoted to a queen; use
// MakeCandidateWithPromotion to choose another piece.
func (g *GameState) MakeCandidate(from, to Square) (Move, bool) {
	return g.MakeCandidateWithPromotion(from, to, Queen)
}

// MakeCandidateWithPromotion is MakeCandidate with an explicit promotion
// kind. kind is ignored for moves that do not promote.
func (g *GameState) MakeCandidateWithPromotion(from, to Square, kind PieceKind) (Move, bool) {
	if from == to {
		return Move{}, false
	}
	for _, m := range g.pos.MovesFrom(from, PseudoLegal) {
		if m.To != to {
			continue
		}
		if m.Kind == Promotion && m.PromoteTo != kind {
			continue
		}
		return m, true
	}
	return Move{}, false
}

// NeedsPromotion reports whether moving from from to to is a pawn promotion,
// in which case the driver should ask which piece to promote to.
func (g *GameState) NeedsPromotion(from, to Square) bool {
	m, ok := g.MakeCandidate(from, to)
	return ok && m.Kind == Promotion
}

// Apply plays m if it is legal. Illegal moves leave the game untouched and
// report InvalidMove.
func (g *GameState) Apply(m Move) Outcome {
	if m.From == m.To || !g.isLegalCandidate(m) {
		return Outcome{Result: InvalidMove}
	}

	g.pos.play(m)
	g.history = append(g.history, m)

	if end := g.Status(); end != NotEnded {
		return Outcome{Result: GameEnded, End: end}
	}
	return Outcome{Result: Continue}
}

func (g *GameState) isLegalCandidate(m Move) bool {
	for _, legal := range g.pos.MovesFrom(m.From, Legal) {
		if legal == m {
			return true
		}
	}
	return false
}
