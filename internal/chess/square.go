package chess

import "fmt"

// Square is a validated (file, rank) coordinate. Files and ranks are
// zero-based: a1 is {0, 0} and h8 is {7, 7}.
type Square struct {
	File int
	Rank int
}

// NewSquare returns the square at file, rank. ok is false when either
// coordinate is outside the board.
func NewSquare(file, rank int) (sq Square, ok bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square{}, false
	}
	return Square{File: file, Rank: rank}, true
}

// Offset returns the square df files and dr ranks away.
func (s Square) Offset(df, dr int) (Square, bool) {
	return NewSquare(s.File+df, s.Rank+dr)
}

// ParseSquare parses algebraic square names such as "e4".
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return Square{}, false
	}
	return NewSquare(int(name[0])-'a', int(name[1])-'1')
}

func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

// AllSquares lists every square, rank by rank starting at a1.
func AllSquares() []Square {
	squares := make([]Square, 0, 64)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			squares = append(squares, Square{File: file, Rank: rank})
		}
	}
	return squares
}

func mustSquare(name string) Square {
	sq, ok := ParseSquare(name)
	if !ok {
		panic("chess: bad square literal " + name)
	}
	return sq
}
