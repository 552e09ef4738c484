package board

// MakeMove applies a move generated for this exact position.
// The move is trusted: no legality or bounds re-check is performed, and
// passing a stale or foreign move is undefined.
func (p *Position) MakeMove(m Move) {
	from, to, tag := m.Decompose()

	us := p.SideToMove
	them := us.Other()
	piece := p.squares[from]
	captured := p.squares[to]
	isPawn := piece.Is(Pawn)

	// Castling moves the rook and costs both rights
	if piece.Is(King) {
		switch tag {
		case TagCastleShort:
			p.relocate(step(from, East, 3), step(from, East, 1))
		case TagCastleLong:
			p.relocate(step(from, West, 4), step(from, West, 1))
		}
		p.CastlingRights &^= castleRight(us, true) | castleRight(us, false)
	}

	// A rook leaving its square costs the right on its half of the board
	if piece.Is(Rook) {
		p.CastlingRights &^= castleRight(us, kingSideHalf(from))
	}

	// So does a rook being captured, for its owner
	if captured.Is(Rook) {
		p.CastlingRights &^= castleRight(them, kingSideHalf(to))
	}

	// Back-rank arrival always promotes to a queen
	if isPawn && (to.Row() == 0 || to.Row() == Height-1) {
		piece = NewPiece(Queen, us)
	}

	// The captured pawn sits beside the target, on the origin row
	if tag == TagEnPassant && p.EnPassant != NoSquare {
		p.squares[NewSquare(p.EnPassant.File(), from.Row())] = NoPiece
	}

	if tag == TagDoublePush {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	} else {
		p.EnPassant = NoSquare
	}

	if isPawn || !captured.IsEmpty() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	p.squares[to] = piece
	p.squares[from] = NoPiece

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
}

// relocate moves whatever stands on from to to.
func (p *Position) relocate(from, to Square) {
	p.squares[to] = p.squares[from]
	p.squares[from] = NoPiece
}

// kingSideHalf reports whether sq lies on files e-h.
func kingSideHalf(sq Square) bool {
	return sq.File() >= Width/2
}
