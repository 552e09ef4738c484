package board

// Direction indexes the eight ray directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	NorthWest
	NorthEast
	SouthWest
	SouthEast
)

// DirectionOffsets holds the index delta of one step in each direction.
var DirectionOffsets = [8]int{
	-Width,     // N
	1,          // E
	Width,      // S
	-1,         // W
	-Width - 1, // NW
	-Width + 1, // NE
	Width - 1,  // SW
	Width + 1,  // SE
}

// KnightOffsets holds the index delta of each knight jump. Jump i pairs
// two steps along orthogonal direction i/2 with one step along (i/2+1)%4,
// or one and two for odd i.
var KnightOffsets = [8]int{
	-2*Width + 1,
	-Width + 2,
	Width + 2,
	2*Width + 1,
	2*Width - 1,
	Width - 2,
	-Width - 2,
	-2*Width - 1,
}

// Pre-computed per-square geometry, read-only after init.
var (
	squaresToEdge [Size][8]int
	knightJumps   [Size][]Square
)

func init() {
	initSquaresToEdge()
	initKnightJumps()
}

func initSquaresToEdge() {
	for sq := Square(0); sq < NoSquare; sq++ {
		x := sq.File()
		y := sq.Row()

		north := y
		east := Width - x - 1
		south := Height - y - 1
		west := x

		squaresToEdge[sq] = [8]int{
			north,
			east,
			south,
			west,
			min(north, west),
			min(north, east),
			min(south, west),
			min(south, east),
		}
	}
}

func initKnightJumps() {
	for sq := Square(0); sq < NoSquare; sq++ {
		edge := squaresToEdge[sq]
		jumps := make([]Square, 0, 8)
		for i := 0; i < 8; i++ {
			major := edge[i/2]
			minor := edge[(i/2+1)%4]
			if major >= 2-i%2 && minor >= 2-(i+1)%2 {
				jumps = append(jumps, Square(int(sq)+KnightOffsets[i]))
			}
		}
		knightJumps[sq] = jumps
	}
}

// SquaresToEdge returns how many steps fit between sq and the board edge
// in direction d.
func SquaresToEdge(sq Square, d Direction) int {
	return squaresToEdge[sq][d]
}

// KnightJumps returns the knight destinations from sq. The slice is shared
// and must not be modified.
func KnightJumps(sq Square) []Square {
	return knightJumps[sq]
}

// step returns the square n steps from sq in direction d. The caller
// bounds n with SquaresToEdge.
func step(sq Square, d Direction, n int) Square {
	return Square(int(sq) + DirectionOffsets[d]*n)
}
