package board

// pawnStartDistance is the forward edge distance of a pawn on its start row.
const pawnStartDistance = Height - 2

// GeneratePseudoLegalMoves generates all pseudo-legal moves for the side to
// move. Moves that leave the mover's king attacked are included.
// Squares are visited in index order and directions in table order.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove

	for sq := Square(0); sq < NoSquare; sq++ {
		piece := p.squares[sq]
		if !piece.IsColor(us) {
			continue
		}
		switch piece.Type() {
		case King:
			p.generateKingMoves(ml, sq)
		case Queen:
			p.generateSlidingMoves(ml, sq, North, SouthEast)
		case Rook:
			p.generateSlidingMoves(ml, sq, North, West)
		case Bishop:
			p.generateSlidingMoves(ml, sq, NorthWest, SouthEast)
		case Knight:
			p.generateKnightMoves(ml, sq)
		case Pawn:
			p.generatePawnMoves(ml, sq)
		}
	}

	return ml
}

// GenerateMoves returns the pseudo-legal moves as a slice.
func (p *Position) GenerateMoves() []Move {
	return p.GeneratePseudoLegalMoves().Slice()
}

// generateKingMoves generates single steps and castling.
func (p *Position) generateKingMoves(ml *MoveList, from Square) {
	us := p.SideToMove

	for d := North; d <= SouthEast; d++ {
		if SquaresToEdge(from, d) < 1 {
			continue
		}
		to := step(from, d, 1)
		if !p.squares[to].IsColor(us) {
			ml.Add(NewMove(from, to, TagNone))
		}
	}

	// Castling only needs the right and an empty path; the rook must fit
	// on the board three squares east or four squares west.
	if p.CastlingRights.CanCastle(us, true) && SquaresToEdge(from, East) >= 3 &&
		p.pathEmpty(from, East, 2) {
		ml.Add(NewMove(from, step(from, East, 2), TagCastleShort))
	}
	if p.CastlingRights.CanCastle(us, false) && SquaresToEdge(from, West) >= 4 &&
		p.pathEmpty(from, West, 3) {
		ml.Add(NewMove(from, step(from, West, 2), TagCastleLong))
	}
}

// pathEmpty reports whether the n squares after from in direction d are empty.
func (p *Position) pathEmpty(from Square, d Direction, n int) bool {
	for i := 1; i <= n; i++ {
		if !p.squares[step(from, d, i)].IsEmpty() {
			return false
		}
	}
	return true
}

// generateSlidingMoves walks each direction in [first, last] until the
// edge, a friendly piece (excluded) or an enemy piece (included).
func (p *Position) generateSlidingMoves(ml *MoveList, from Square, first, last Direction) {
	us := p.SideToMove

	for d := first; d <= last; d++ {
		for n := 1; n <= SquaresToEdge(from, d); n++ {
			to := step(from, d, n)
			target := p.squares[to]
			if target.IsColor(us) {
				break
			}
			ml.Add(NewMove(from, to, TagNone))
			if !target.IsEmpty() {
				break
			}
		}
	}
}

// generateKnightMoves uses the precomputed jump table.
func (p *Position) generateKnightMoves(ml *MoveList, from Square) {
	us := p.SideToMove
	for _, to := range KnightJumps(from) {
		if !p.squares[to].IsColor(us) {
			ml.Add(NewMove(from, to, TagNone))
		}
	}
}

// pawnDirections returns the forward direction and the two capture
// directions for a color.
func pawnDirections(c Color) (forward Direction, captures [2]Direction) {
	if c == White {
		return North, [2]Direction{NorthWest, NorthEast}
	}
	return South, [2]Direction{SouthWest, SouthEast}
}

// generatePawnMoves generates pushes, double pushes, captures and en passant.
// Promotions are not tagged; MakeMove promotes on arrival.
func (p *Position) generatePawnMoves(ml *MoveList, from Square) {
	us := p.SideToMove
	forward, captures := pawnDirections(us)

	distance := SquaresToEdge(from, forward)
	if distance < 1 {
		return
	}

	to := step(from, forward, 1)
	if p.squares[to].IsEmpty() {
		ml.Add(NewMove(from, to, TagNone))
		if distance == pawnStartDistance {
			to2 := step(from, forward, 2)
			if p.squares[to2].IsEmpty() {
				ml.Add(NewMove(from, to2, TagDoublePush))
			}
		}
	}

	if p.EnPassant != NoSquare {
		for _, d := range captures {
			if SquaresToEdge(from, d) < 1 {
				continue
			}
			if to := step(from, d, 1); to == p.EnPassant {
				ml.Add(NewMove(from, to, TagEnPassant))
			}
		}
	}

	for _, d := range captures {
		if SquaresToEdge(from, d) < 1 {
			continue
		}
		to := step(from, d, 1)
		target := p.squares[to]
		if !target.IsEmpty() && !target.IsColor(us) {
			ml.Add(NewMove(from, to, TagNone))
		}
	}
}
