package chess

import "strings"

type cell struct {
	piece    Piece
	occupied bool
}

// Board is an 8x8 grid addressed [rank][file]. It is a plain value:
// assigning a Board copies every square.
type Board struct {
	cells [8][8]cell
}

// Get returns the piece on sq, if any.
func (b *Board) Get(sq Square) (Piece, bool) {
	c := b.cells[sq.Rank][sq.File]
	return c.piece, c.occupied
}

func (b *Board) Set(sq Square, p Piece) {
	b.cells[sq.Rank][sq.File] = cell{piece: p, occupied: true}
}

func (b *Board) Remove(sq Square) {
	b.cells[sq.Rank][sq.File] = cell{}
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return !b.cells[sq.Rank][sq.File].occupied
}

// Apply performs m on the grid. The move is trusted completely; legality
// is the caller's concern.
func (b *Board) Apply(m Move) {
	switch m.Kind {
	case Normal, Capture:
		b.Remove(m.From)
		b.Set(m.To, m.Piece)
	case EnPassant:
		b.Remove(m.From)
		b.Set(m.To, m.Piece)
		b.Remove(m.CapturedAt)
	case Castle:
		rank := m.From.Rank
		rookFrom, rookTo := Square{File: 7, Rank: rank}, Square{File: 5, Rank: rank}
		if m.Side == Long {
			rookFrom, rookTo = Square{File: 0, Rank: rank}, Square{File: 3, Rank: rank}
		}
		b.Remove(m.From)
		b.Set(m.To, m.Piece)
		if rook, ok := b.Get(rookFrom); ok {
			b.Remove(rookFrom)
			b.Set(rookTo, rook)
		}
	case Promotion:
		b.Remove(m.From)
		b.Set(m.To, Piece{Kind: m.PromoteTo, Color: m.Piece.Color})
	}
}

// find returns the first square holding p.
func (b *Board) find(p Piece) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			c := b.cells[rank][file]
			if c.occupied && c.piece == p {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// String draws the board from White's side, one rank per line.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			c := b.cells[rank][file]
			if !c.occupied {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(c.piece.FEN())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
