// Package board implements the rules core of a chess program: a 64-square
// mailbox position, pseudo-legal move generation and move application.
package board

import (
	"errors"
	"fmt"
)

// Board dimensions.
const (
	Width  = 8
	Height = 8
	Size   = Width * Height
)

// ErrInvalidNotation is returned for a malformed square or piece code.
var ErrInvalidNotation = errors.New("invalid notation")

// Square represents a square on the chess board (0-63).
// Row-major from the top-left: A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = Size
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) % Width
}

// Row returns the board row of the square (0-7, where 0 is rank 8).
func (sq Square) Row() int {
	return int(sq) / Width
}

// Rank returns the rank of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return Height - 1 - sq.Row()
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// NewSquare creates a square from file and row (0-indexed, row 0 is rank 8).
func NewSquare(file, row int) Square {
	return Square(file + row*Width)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file >= Width || rank < 0 || rank >= Height {
		return NoSquare, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}

	return NewSquare(file, Height-1-rank), nil
}
