package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidPositionNotation is returned when a FEN string cannot be loaded.
var ErrInvalidPositionNotation = errors.New("invalid position notation")

// ParseFEN parses a FEN string and returns a Position.
// No partial position is returned on error.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: need 6 fields, got %d", ErrInvalidPositionNotation, len(parts))
	}

	pos := &Position{}
	pos.Clear()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidPositionNotation, parts[1])
	}

	// Castling rights and en passant never fail the parse
	pos.CastlingRights = parseCastlingRights(parts[2])
	if sq, err := ParseSquare(parts[3]); err == nil {
		pos.EnPassant = sq
	}

	hmc, err := strconv.ParseUint(parts[4], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidPositionNotation, parts[4])
	}
	pos.HalfMoveClock = int(hmc)

	fmn, err := strconv.ParseUint(parts[5], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidPositionNotation, parts[5])
	}
	pos.FullMoveNumber = int(fmn)

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// Rank lengths are not validated: a long rank spills into the next row and
// anything past the last square is dropped.
func parsePiecePlacement(pos *Position, placement string) error {
	file, row := 0, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c >= '0' && c <= '9':
			file += int(c - '0')
		case c == '/':
			file = 0
			row++
		default:
			piece, err := PieceFromChar(c)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPositionNotation, err)
			}
			idx := file + row*Width
			if idx < Size {
				pos.setPiece(piece, Square(idx))
			}
			file++
		}
	}
	return nil
}

// parseCastlingRights decodes each character as a piece code: a king grants
// the short right to its color and a queen the long right. Everything else,
// including "-", is ignored.
func parseCastlingRights(castling string) CastlingRights {
	rights := NoCastling
	for i := 0; i < len(castling); i++ {
		piece, err := PieceFromChar(castling[i])
		if err != nil {
			continue
		}
		switch piece.Type() {
		case King:
			rights |= castleRight(piece.Color(), true)
		case Queen:
			rights |= castleRight(piece.Color(), false)
		}
	}
	return rights
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < Height; row++ {
		empty := 0
		for file := 0; file < Width; file++ {
			piece := p.squares[NewSquare(file, row)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Height-1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
