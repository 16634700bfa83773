package chess

// CastlingRights holds the four independent castling permissions.
type CastlingRights struct {
	WhiteShort bool
	WhiteLong  bool
	BlackShort bool
	BlackLong  bool
}

func (r CastlingRights) has(c Color, side CastleSide) bool {
	switch {
	case c == White && side == Short:
		return r.WhiteShort
	case c == White && side == Long:
		return r.WhiteLong
	case c == Black && side == Short:
		return r.BlackShort
	default:
		return r.BlackLong
	}
}

// Home squares whose vacation clears a castling right. Any piece leaving or
// arriving on one of these squares clears the rights tied to it, which is a
// simplification of "this king or rook has never moved".
var castlingSquares = []struct {
	sq    Square
	clear func(*CastlingRights)
}{
	{Square{File: 4, Rank: 0}, func(r *CastlingRights) { r.WhiteShort, r.WhiteLong = false, false }},
	{Square{File: 7, Rank: 0}, func(r *CastlingRights) { r.WhiteShort = false }},
	{Square{File: 0, Rank: 0}, func(r *CastlingRights) { r.WhiteLong = false }},
	{Square{File: 4, Rank: 7}, func(r *CastlingRights) { r.BlackShort, r.BlackLong = false, false }},
	{Square{File: 7, Rank: 7}, func(r *CastlingRights) { r.BlackShort = false }},
	{Square{File: 0, Rank: 7}, func(r *CastlingRights) { r.BlackLong = false }},
}

func (r *CastlingRights) update(m Move) {
	for _, cs := range castlingSquares {
		if m.From == cs.sq || m.To == cs.sq {
			cs.clear(r)
		}
	}
}

// Position is everything needed to continue a game from a given point:
// the board, the side to move, castling rights, the en-passant target and
// the two move counters. It contains no slices or pointers, so copying a
// Position yields a fully independent position.
type Position struct {
	Board          Board
	Turn           Color
	Castling       CastlingRights
	EnPassant      Square
	HasEnPassant   bool
	HalfmoveClock  int
	FullmoveNumber int
}

// StartPosition returns the standard initial position.
func StartPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// EnPassantTarget returns the square a pawn may capture onto en passant.
func (p *Position) EnPassantTarget() (Square, bool) {
	return p.EnPassant, p.HasEnPassant
}

// play applies m to the position without any legality checks and updates
// rights, the en-passant target, counters and the side to move.
func (p *Position) play(m Move) {
	p.Board.Apply(m)
	p.Castling.update(m)

	p.EnPassant, p.HasEnPassant = Square{}, false
	if m.Piece.Kind == Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		p.EnPassant = Square{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
		p.HasEnPassant = true
	}

	if m.Piece.Kind == Pawn || m.IsCapture() {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if p.Turn == Black {
		p.FullmoveNumber++
	}
	p.Turn = p.Turn.Other()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
