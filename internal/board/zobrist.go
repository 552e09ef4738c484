package board

// Zobrist keys, generated from a fixed seed so hashes are stable across
// runs and can be persisted.
var (
	zobristPiece      [2][King + 1][Size]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [Width]uint64
	zobristCastling   [AllCastling + 1]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

// xorshift64*
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := Square(0); sq < NoSquare; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of the position. The move counters are
// not part of the hash.
func (p *Position) Hash() uint64 {
	var h uint64
	for sq := Square(0); sq < NoSquare; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			continue
		}
		h ^= zobristPiece[piece.Color()][piece.Type()][sq]
	}
	if p.EnPassant.IsValid() {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	h ^= zobristCastling[p.CastlingRights&AllCastling]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
