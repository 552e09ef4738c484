package board

import (
	"errors"
	"fmt"
)

// ErrMoveNotFound is returned when a well-formed move is not among the
// generated moves.
var ErrMoveNotFound = errors.New("move not available")

// ParseMove resolves coordinate notation such as "e2e4" or "e7e8q" against
// the moves generated for the position. A trailing promotion letter is
// accepted and ignored, since pawns always promote to a queen.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: move %q", ErrInvalidNotation, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		if _, err := PieceFromChar(s[4]); err != nil {
			return NoMove, err
		}
	}

	m, ok := p.GeneratePseudoLegalMoves().Find(from, to)
	if !ok {
		return NoMove, fmt.Errorf("%w: %s", ErrMoveNotFound, s)
	}
	return m, nil
}
