package chess

// Color is the owner of a piece and the side to move.
type Color int

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// pawnDirection is the rank delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) lastRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PieceKind identifies a piece independently of its owner.
type PieceKind int

const (
	NoPieceKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceKindNames = map[PieceKind]string{
	NoPieceKind: "none",
	Pawn:        "pawn",
	Knight:      "knight",
	Bishop:      "bishop",
	Rook:        "rook",
	Queen:       "queen",
	King:        "king",
}

func (k PieceKind) String() string {
	return pieceKindNames[k]
}

// StandardPieceValues maps piece kinds to their conventional material value.
var StandardPieceValues = map[PieceKind]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   0, // King has no material value
}

// promotionKinds are the kinds a pawn may become, strongest first.
var promotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// Piece is an immutable (kind, owner) pair.
type Piece struct {
	Kind  PieceKind
	Color Color
}

var fenLetters = map[PieceKind]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

// FEN returns the piece letter, upper case for White.
func (p Piece) FEN() byte {
	letter := fenLetters[p.Kind]
	if p.Color == White {
		letter -= 'a' - 'A'
	}
	return letter
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Kind.String()
}

func pieceFromFEN(c byte) (Piece, bool) {
	color := Black
	lower := c
	if c >= 'A' && c <= 'Z' {
		color = White
		lower = c + ('a' - 'A')
	}
	for kind, letter := range fenLetters {
		if letter == lower {
			return Piece{Kind: kind, Color: color}, true
		}
	}
	return Piece{}, false
}
