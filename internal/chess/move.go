package chess

// MoveKind classifies a move by its side effects on the board.
type MoveKind int

const (
	Normal MoveKind = iota
	Capture
	EnPassant
	Castle
	Promotion
)

var moveKindNames = map[MoveKind]string{
	Normal:    "normal",
	Capture:   "capture",
	EnPassant: "en_passant",
	Castle:    "castle",
	Promotion: "promotion",
}

func (k MoveKind) String() string {
	return moveKindNames[k]
}

// CastleSide distinguishes king-side from queen-side castling.
type CastleSide int

const (
	Short CastleSide = iota
	Long
)

func (s CastleSide) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// Move describes a single ply. Only the fields relevant to Kind are set:
//   - Capture: Captured is the kind taken on To.
//   - EnPassant: CapturedAt is the square of the pawn being taken.
//   - Castle: Side says which rook moves; From/To are the king's squares.
//   - Promotion: PromoteTo is the new kind, Captured is set if it also takes.
type Move struct {
	Kind       MoveKind
	From       Square
	To         Square
	Piece      Piece
	Captured   PieceKind
	CapturedAt Square
	Side       CastleSide
	PromoteTo  PieceKind
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Kind == Capture || m.Kind == EnPassant || m.Captured != NoPieceKind
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Kind == Promotion {
		s += string(fenLetters[m.PromoteTo])
	}
	return s
}

func newMove(kind MoveKind, from, to Square, piece Piece) Move {
	return Move{Kind: kind, From: from, To: to, Piece: piece}
}
