package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN describes the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a six-field position description. Any malformed field
// fails the whole parse; no partially filled Position is returned.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	var pos Position
	if err := parsePlacement(&pos.Board, fields[0]); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		pos.Turn = White
	case "b":
		pos.Turn = Black
	default:
		return Position{}, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := parseCastling(fields[2])
	if err != nil {
		return Position{}, err
	}
	pos.Castling = rights

	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return Position{}, fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFEN, fields[3])
		}
		pos.EnPassant, pos.HasEnPassant = sq, true
	}

	half, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("%w: halfmove clock: %v", ErrInvalidFEN, err)
	}
	full, err := strconv.ParseUint(fields[5], 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("%w: fullmove number: %v", ErrInvalidFEN, err)
	}
	pos.HalfmoveClock, pos.FullmoveNumber = int(half), int(full)

	return pos, nil
}

func parsePlacement(board *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					break
				}
				continue
			}
			piece, ok := pieceFromFEN(c)
			if !ok {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				file++
				break
			}
			board.Set(Square{File: file, Rank: rank}, piece)
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d does not describe 8 files", ErrInvalidFEN, rank+1)
		}
	}
	return nil
}

func parseCastling(field string) (CastlingRights, error) {
	var rights CastlingRights
	if field == "-" {
		return rights, nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			rights.WhiteShort = true
		case 'Q':
			rights.WhiteLong = true
		case 'k':
			rights.BlackShort = true
		case 'q':
			rights.BlackLong = true
		default:
			return CastlingRights{}, fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, c)
		}
	}
	return rights, nil
}

// FEN serialises the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece, ok := p.Board.Get(Square{File: file, Rank: rank})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FEN())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if p.Castling.WhiteShort {
		castling += "K"
	}
	if p.Castling.WhiteLong {
		castling += "Q"
	}
	if p.Castling.BlackShort {
		castling += "k"
	}
	if p.Castling.BlackLong {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if p.HasEnPassant {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}
