package chess

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GenMode selects how strictly moves are filtered.
type GenMode int

const (
	// PseudoLegal moves follow piece movement and occupancy only.
	PseudoLegal GenMode = iota
	// Legal moves additionally never leave the mover's king attacked.
	Legal
)

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	rookOffsets   = []offset{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}
	bishopOffsets = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	royalOffsets  = append(append([]offset{}, rookOffsets...), bishopOffsets...)
)

// MovesFrom generates the moves of the side to move starting on sq. A
// square that is empty or holds an opponent's piece yields nothing.
func (p *Position) MovesFrom(sq Square, mode GenMode) []Move {
	pseudo := p.pseudoLegalFrom(sq)
	if mode == PseudoLegal {
		return pseudo
	}
	var legal []Move
	for _, m := range pseudo {
		if p.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// Moves generates moves for every piece of the side to move.
func (p *Position) Moves(mode GenMode) []Move {
	var moves []Move
	for _, sq := range AllSquares() {
		if piece, ok := p.Board.Get(sq); ok && piece.Color == p.Turn {
			moves = append(moves, p.MovesFrom(sq, mode)...)
		}
	}
	return moves
}

// MovesParallel generates the same moves as Moves, filtering each origin
// square in its own goroutine. Every goroutine works on its own copy of the
// position, so the result matches Moves exactly, including order.
func (p *Position) MovesParallel(ctx context.Context, mode GenMode) ([]Move, error) {
	var origins []Square
	for _, sq := range AllSquares() {
		if piece, ok := p.Board.Get(sq); ok && piece.Color == p.Turn {
			origins = append(origins, sq)
		}
	}

	results := make([][]Move, len(origins))
	g, ctx := errgroup.WithContext(ctx)
	for i, sq := range origins {
		i, sq := i, sq
		pos := *p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = pos.MovesFrom(sq, mode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var moves []Move
	for _, r := range results {
		moves = append(moves, r...)
	}
	return moves, nil
}

// isLegal plays m on a copy of the position and reports whether the mover's
// king is safe afterwards. Castling additionally requires the king not to
// start in check or cross an attacked square.
func (p *Position) isLegal(m Move) bool {
	mover := p.Turn
	if m.Kind == Castle {
		if p.InCheck() {
			return false
		}
		transit := Square{File: (m.From.File + m.To.File) / 2, Rank: m.From.Rank}
		if p.Attacked(transit, mover.Other()) {
			return false
		}
	}
	next := *p
	next.play(m)
	king, ok := next.Board.find(Piece{Kind: King, Color: mover})
	if !ok {
		return true
	}
	return !next.Attacked(king, mover.Other())
}

func (p *Position) pseudoLegalFrom(sq Square) []Move {
	piece, ok := p.Board.Get(sq)
	if !ok || piece.Color != p.Turn {
		return nil
	}
	switch piece.Kind {
	case Pawn:
		return p.pawnMoves(sq, piece)
	case Knight:
		return p.offsetMoves(sq, piece, knightOffsets, 1)
	case Bishop:
		return p.offsetMoves(sq, piece, bishopOffsets, 7)
	case Rook:
		return p.offsetMoves(sq, piece, rookOffsets, 7)
	case Queen:
		return p.offsetMoves(sq, piece, royalOffsets, 7)
	case King:
		return append(p.offsetMoves(sq, piece, royalOffsets, 1), p.castleMoves(sq, piece)...)
	}
	return nil
}

// offsetMoves walks each direction up to maxSteps squares, stopping at the
// first occupied square. Enemy pieces there are captured, own pieces block.
func (p *Position) offsetMoves(from Square, piece Piece, offsets []offset, maxSteps int) []Move {
	var moves []Move
	for _, o := range offsets {
		for step := 1; step <= maxSteps; step++ {
			to, ok := from.Offset(o.df*step, o.dr*step)
			if !ok {
				break
			}
			target, occupied := p.Board.Get(to)
			if !occupied {
				moves = append(moves, newMove(Normal, from, to, piece))
				continue
			}
			if target.Color != piece.Color {
				m := newMove(Capture, from, to, piece)
				m.Captured = target.Kind
				moves = append(moves, m)
			}
			break
		}
	}
	return moves
}

func (p *Position) pawnMoves(from Square, piece Piece) []Move {
	var moves []Move
	dir := piece.Color.pawnDirection()

	if one, ok := from.Offset(0, dir); ok && p.Board.IsEmpty(one) {
		moves = appendPawnMove(moves, newMove(Normal, from, one, piece))
		if from.Rank == piece.Color.pawnRank() {
			if two, ok := from.Offset(0, 2*dir); ok && p.Board.IsEmpty(two) {
				moves = append(moves, newMove(Normal, from, two, piece))
			}
		}
	}

	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if target, occupied := p.Board.Get(to); occupied {
			if target.Color != piece.Color {
				m := newMove(Capture, from, to, piece)
				m.Captured = target.Kind
				moves = appendPawnMove(moves, m)
			}
			continue
		}
		if p.HasEnPassant && to == p.EnPassant {
			m := newMove(EnPassant, from, to, piece)
			m.Captured = Pawn
			m.CapturedAt = Square{File: to.File, Rank: from.Rank}
			moves = append(moves, m)
		}
	}
	return moves
}

// appendPawnMove expands a move onto the last rank into one promotion per
// promotable kind.
func appendPawnMove(moves []Move, m Move) []Move {
	if m.To.Rank != m.Piece.Color.lastRank() {
		return append(moves, m)
	}
	for _, kind := range promotionKinds {
		promo := m
		promo.Kind = Promotion
		promo.PromoteTo = kind
		moves = append(moves, promo)
	}
	return moves
}

// castleMoves offers castling whenever the right is held, the rook is on its
// corner and every square between king and rook is empty. Attack checks are
// left to the legality filter.
func (p *Position) castleMoves(from Square, king Piece) []Move {
	home := Square{File: 4, Rank: king.Color.homeRank()}
	if from != home {
		return nil
	}
	var moves []Move
	for _, side := range []CastleSide{Short, Long} {
		if !p.Castling.has(king.Color, side) {
			continue
		}
		rookFile, kingFile, between := 7, 6, []int{5, 6}
		if side == Long {
			rookFile, kingFile, between = 0, 2, []int{1, 2, 3}
		}
		rook, ok := p.Board.Get(Square{File: rookFile, Rank: home.Rank})
		if !ok || rook != (Piece{Kind: Rook, Color: king.Color}) {
			continue
		}
		empty := true
		for _, f := range between {
			if !p.Board.IsEmpty(Square{File: f, Rank: home.Rank}) {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		m := newMove(Castle, from, Square{File: kingFile, Rank: home.Rank}, king)
		m.Side = side
		moves = append(moves, m)
	}
	return moves
}

// Attacked reports whether any piece of color by attacks sq.
func (p *Position) Attacked(sq Square, by Color) bool {
	// Pawns attack diagonally forward, so look one rank behind sq from by's view.
	for _, df := range []int{-1, 1} {
		if from, ok := sq.Offset(df, -by.pawnDirection()); ok {
			if pc, ok := p.Board.Get(from); ok && pc == (Piece{Kind: Pawn, Color: by}) {
				return true
			}
		}
	}
	if p.attackedAlong(sq, by, knightOffsets, 1, Knight) ||
		p.attackedAlong(sq, by, royalOffsets, 1, King) ||
		p.attackedAlong(sq, by, rookOffsets, 7, Rook, Queen) ||
		p.attackedAlong(sq, by, bishopOffsets, 7, Bishop, Queen) {
		return true
	}
	return false
}

func (p *Position) attackedAlong(sq Square, by Color, offsets []offset, maxSteps int, kinds ...PieceKind) bool {
	for _, o := range offsets {
		for step := 1; step <= maxSteps; step++ {
			from, ok := sq.Offset(o.df*step, o.dr*step)
			if !ok {
				break
			}
			pc, occupied := p.Board.Get(from)
			if !occupied {
				continue
			}
			if pc.Color == by {
				for _, k := range kinds {
					if pc.Kind == k {
						return true
					}
				}
			}
			break
		}
	}
	return false
}

// InCheck reports whether the side to move has its king attacked.
func (p *Position) InCheck() bool {
	king, ok := p.Board.find(Piece{Kind: King, Color: p.Turn})
	if !ok {
		return false
	}
	return p.Attacked(king, p.Turn.Other())
}

// InsufficientMaterial reports positions where neither side can mate:
// bare kings, or a single minor piece against a bare king.
func (p *Position) InsufficientMaterial() bool {
	minors := 0
	for _, sq := range AllSquares() {
		pc, ok := p.Board.Get(sq)
		if !ok {
			continue
		}
		switch pc.Kind {
		case King:
		case Knight, Bishop:
			minors++
		default:
			return false
		}
	}
	return minors <= 1
}
