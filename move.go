package chess

// A MoveTag represents a notable consequence of a move.
type MoveTag uint8

const (
	// Capture indicates that the move captures a piece.
	Capture MoveTag = 1 << iota
	// DoublePawnPush indicates a pawn advancing two squares.
	DoublePawnPush
	// EnPassant indicates that the move captures via en passant.
	EnPassant
	// KingSideCastle indicates that the move is a king side castle.
	KingSideCastle
	// QueenSideCastle indicates that the move is a queen side castle.
	QueenSideCastle
)

// A Move is the movement of a piece from one square to another.
//
// Only the squares and the promotion are input; tags are derived by the
// move generator and a Move built with NewMove carries none until it is
// resolved against a position with Apply or Resolve.
type Move struct {
	s1    Square
	s2    Square
	promo PieceType
	tags  MoveTag
}

// NewMove returns an unresolved move. promo is NoPieceType unless the
// move is a promotion.
func NewMove(from, to Square, promo PieceType) Move {
	return Move{s1: from, s2: to, promo: promo}
}

// String returns the move in coordinate (UCI) notation, e.g. "e7e8q".
func (m Move) String() string {
	return UCINotation{}.encode(m)
}

// S1 returns the origin square of the move.
func (m Move) S1() Square {
	return m.s1
}

// S2 returns the destination square of the move.
func (m Move) S2() Square {
	return m.s2
}

// Promo returns the promotion piece type of the move.
func (m Move) Promo() PieceType {
	return m.promo
}

// Tags returns the derived tags.
func (m Move) Tags() MoveTag {
	return m.tags
}

// HasTag returns true if the move contains the MoveTag given.
func (m Move) HasTag(tag MoveTag) bool {
	return (tag & m.tags) > 0
}

// IsCastle reports whether m is a castling move on either side.
func (m Move) IsCastle() bool {
	return m.HasTag(KingSideCastle | QueenSideCastle)
}

// sameAs compares the user supplied parts of two moves.
func (m Move) sameAs(o Move) bool {
	return m.s1 == o.s1 && m.s2 == o.s2 && m.promo == o.promo
}

// Resolve returns the legal move in b matching m's squares and promotion,
// with its tags filled in.
func Resolve(b Board, m Move) (Move, error) {
	return b.findLegal(m)
}
