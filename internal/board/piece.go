package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType represents the kind of a chess piece.
// The zero value is NoPieceType so that an empty Piece has no kind.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := "?pnbrqk"
	if pt > King {
		return '?'
	}
	return chars[pt]
}

// Piece is a single board occupant packed into one byte:
// bits 0-2: piece type (0 = none)
// bit 3:    white
// bit 4:    black
type Piece uint8

const (
	typeMask  Piece = 0b00111
	whiteBit  Piece = 0b01000
	blackBit  Piece = 0b10000
	colorMask Piece = whiteBit | blackBit
)

// NoPiece is the empty square.
const NoPiece Piece = 0

const (
	WhitePawn   = Piece(Pawn) | whiteBit
	WhiteKnight = Piece(Knight) | whiteBit
	WhiteBishop = Piece(Bishop) | whiteBit
	WhiteRook   = Piece(Rook) | whiteBit
	WhiteQueen  = Piece(Queen) | whiteBit
	WhiteKing   = Piece(King) | whiteBit
	BlackPawn   = Piece(Pawn) | blackBit
	BlackKnight = Piece(Knight) | blackBit
	BlackBishop = Piece(Bishop) | blackBit
	BlackRook   = Piece(Rook) | blackBit
	BlackQueen  = Piece(Queen) | blackBit
	BlackKing   = Piece(King) | blackBit
)

func colorBit(c Color) Piece {
	switch c {
	case White:
		return whiteBit
	case Black:
		return blackBit
	default:
		return 0
	}
}

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > King || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | colorBit(c)
}

// PieceFromChar converts a FEN character to a Piece.
// Uppercase letters are white, lowercase black.
func PieceFromChar(c byte) (Piece, error) {
	color := White
	lower := c
	if c >= 'a' && c <= 'z' {
		color = Black
	} else if c >= 'A' && c <= 'Z' {
		lower = c + ('a' - 'A')
	}

	var pt PieceType
	switch lower {
	case 'k':
		pt = King
	case 'q':
		pt = Queen
	case 'r':
		pt = Rook
	case 'b':
		pt = Bishop
	case 'n':
		pt = Knight
	case 'p':
		pt = Pawn
	default:
		return NoPiece, fmt.Errorf("%w: piece code %q", ErrInvalidNotation, c)
	}
	return NewPiece(pt, color), nil
}

// IsEmpty returns true if p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

// IsColor returns true if the piece belongs to c.
func (p Piece) IsColor(c Color) bool {
	bit := colorBit(c)
	return bit != 0 && p&bit != 0
}

// Is returns true if the piece has kind pt.
func (p Piece) Is(pt PieceType) bool {
	return pt != NoPieceType && p.Type() == pt
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Color returns the Color of the piece, NoColor for an empty square.
func (p Piece) Color() Color {
	switch p & colorMask {
	case whiteBit:
		return White
	case blackBit:
		return Black
	default:
		return NoColor
	}
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black, empty for NoPiece.
func (p Piece) String() string {
	if p.IsEmpty() {
		return ""
	}
	ch := p.Type().Char()
	if p.IsColor(White) {
		ch -= 'a' - 'A'
	}
	return string(ch)
}
