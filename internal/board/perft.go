package board

// Perft counts the leaf nodes of the pseudo-legal move tree to the given
// depth. Positions where a king can be captured are counted like any other.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := p.GeneratePseudoLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		child := p.Copy()
		child.MakeMove(m)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs perft below each root move, in generation order.
func Divide(p *Position, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}

	moves := p.GeneratePseudoLegalMoves()
	entries := make([]DivideEntry, 0, moves.Len())
	for _, m := range moves.Slice() {
		child := p.Copy()
		child.MakeMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(child, depth-1)})
	}
	return entries
}
