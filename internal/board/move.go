package board

// MoveTag marks a move that needs special handling.
type MoveTag uint8

const (
	TagNone MoveTag = iota
	TagEnPassant
	TagCastleShort
	TagCastleLong
	TagPromoteQueen
	TagPromoteRook
	TagPromoteBishop
	TagPromoteKnight
	TagDoublePush
)

// String returns a short name for the tag.
func (t MoveTag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagEnPassant:
		return "en-passant"
	case TagCastleShort:
		return "castle-short"
	case TagCastleLong:
		return "castle-long"
	case TagPromoteQueen:
		return "promote-queen"
	case TagPromoteRook:
		return "promote-rook"
	case TagPromoteBishop:
		return "promote-bishop"
	case TagPromoteKnight:
		return "promote-knight"
	case TagDoublePush:
		return "double-push"
	default:
		return "unknown"
	}
}

// IsPromotion returns true for the four promotion tags.
func (t MoveTag) IsPromotion() bool {
	return t >= TagPromoteQueen && t <= TagPromoteKnight
}

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: tag
type Move uint16

const (
	fromMask = 0x003F
	toMask   = 0x0FC0
	tagMask  = 0xF000
	toShift  = 6
	tagShift = 12
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move from its origin, destination and tag.
func NewMove(from, to Square, tag MoveTag) Move {
	return Move(from)&fromMask | Move(to)<<toShift&toMask | Move(tag)<<tagShift&tagMask
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Tag returns the special-move tag.
func (m Move) Tag() MoveTag {
	return MoveTag((m & tagMask) >> tagShift)
}

// Decompose returns the origin, destination and tag of the move.
func (m Move) Decompose() (from, to Square, tag MoveTag) {
	return m.From(), m.To(), m.Tag()
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	t := m.Tag()
	return t == TagCastleShort || t == TagCastleLong
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Tag() == TagEnPassant
}

// String returns the move in coordinate form (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// MoveList is a list of generated moves.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 64)}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for _, x := range ml.moves {
		if x == m {
			return true
		}
	}
	return false
}

// From returns the moves starting on sq, in generation order.
func (ml *MoveList) From(sq Square) []Move {
	var out []Move
	for _, m := range ml.moves {
		if m.From() == sq {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the first move from one square to another.
func (ml *MoveList) Find(from, to Square) (Move, bool) {
	for _, m := range ml.moves {
		if m.From() == from && m.To() == to {
			return m, true
		}
	}
	return NoMove, false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}
