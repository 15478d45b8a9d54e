package chess

import (
	"fmt"
	"math/bits"
)

// A File is the file of a square, a through h.
type File int8

// A Rank is the rank of a square, 1 through 8.
type Rank int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// String returns the file letter.
func (f File) String() string {
	return string(rune('a' + f))
}

// String returns the rank digit.
func (r Rank) String() string {
	return string(rune('1' + r))
}

// A Square is one of the 64 squares of the board, numbered a1 = 0 through h8 = 63.
// The numbering is the iteration order used everywhere: ascending rank, then file.
type Square int8

// NoSquare is the zero value for an absent square.
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const numOfSquaresInBoard = 64

// NewSquare returns the square at the given file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)*8 + int8(f))
}

// File returns the square's file.
func (sq Square) File() File {
	return File(sq % 8)
}

// Rank returns the square's rank.
func (sq Square) Rank() Rank {
	return Rank(sq / 8)
}

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool {
	return sq >= A1 && sq <= H8
}

// String implements the fmt.Stringer interface and returns
// the square in algebraic form, e.g. "e4". NoSquare returns "-".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// ParseSquare parses a square name such as "e4".
func ParseSquare(s string) (Square, error) {
	sq := parseSquare(s)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	return sq, nil
}

// parseSquare converts a square name (e.g., "e4") into a Square.
func parseSquare(s string) Square {
	const squareLen = 2
	if len(s) != squareLen {
		return NoSquare
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	// Validate file and rank are within bounds
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}

	return Square(rank*8 + file)
}

// offset returns the square reached by moving df files and dr ranks from sq,
// or NoSquare when that leaves the board.
func (sq Square) offset(df, dr int) Square {
	f := int(sq.File()) + df
	r := int(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return Square(r*8 + f)
}

// isLight reports whether sq is a light square.
func (sq Square) isLight() bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 1
}

// A SquareSet is a set of squares stored as a 64-bit mask.
type SquareSet uint64

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.Valid() && s&(1<<uint(sq)) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares returns the members of the set in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for s != 0 {
		sq := Square(bits.TrailingZeros64(uint64(s)))
		out = append(out, sq)
		s &= s - 1
	}
	return out
}

func (s SquareSet) with(sq Square) SquareSet {
	return s | 1<<uint(sq)
}
