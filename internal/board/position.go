package board

import (
	"fmt"
	"strings"
)

// CastlingRights records which colors may still castle on each side.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castleRight returns the single right for a color and side.
func castleRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case c == Black && kingSide:
		return BlackKingSideCastle
	case c == Black:
		return BlackQueenSideCastle
	default:
		return NoCastling
	}
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	r := castleRight(c, kingSide)
	return r != NoCastling && cr&r != 0
}

// Colors returns the colors holding the right on one side, white first.
func (cr CastlingRights) Colors(kingSide bool) []Color {
	var colors []Color
	for _, c := range []Color{White, Black} {
		if cr.CanCastle(c, kingSide) {
			colors = append(colors, c)
		}
	}
	return colors
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Position represents a complete chess position.
// It holds only fixed-size arrays, so copying the struct copies the board.
type Position struct {
	squares [Size]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture
	FullMoveNumber int    // Incremented after black moves, starts at 1
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates an independent copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq).IsEmpty()
}

// setPiece places a piece on a square, dropping anything off the board.
func (p *Position) setPiece(piece Piece, sq Square) {
	if sq.IsValid() {
		p.squares[sq] = piece
	}
}

// Clear resets the position to an empty board with white to move.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
}

// String draws the board as a box grid followed by the game state.
func (p *Position) String() string {
	var sb strings.Builder

	sb.WriteString("┌───" + strings.Repeat("┬───", Width-2) + "┬───┐\n")
	for row := 0; row < Height; row++ {
		sb.WriteString("│")
		for file := 0; file < Width; file++ {
			piece := p.squares[NewSquare(file, row)]
			if piece.IsEmpty() {
				sb.WriteString("   │")
			} else {
				fmt.Fprintf(&sb, " %s │", piece)
			}
		}
		fmt.Fprintf(&sb, " %d\n", Height-row)
		if row < Height-1 {
			sb.WriteString("├───" + strings.Repeat("┼───", Width-2) + "┼───┤\n")
		}
	}
	sb.WriteString("└───" + strings.Repeat("┴───", Width-2) + "┴───┘\n")
	sb.WriteString("  a   b   c   d   e   f   g   h\n")

	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castle short: %v\n", p.CastlingRights.Colors(true))
	fmt.Fprintf(&sb, "Castle long: %v\n", p.CastlingRights.Colors(false))
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}
