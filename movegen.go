package chess

import "fmt"

// direction is a single file/rank step.
type direction struct {
	df, dr int
}

// moveRule describes how a piece type moves: a set of directions and
// whether it keeps going along them.
type moveRule struct {
	dirs   []direction
	slides bool
}

var (
	orthogonal = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	allDirs    = []direction{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	knightDirs = []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// moveRules is indexed by PieceType. Pawns are handled separately.
var moveRules = [...]moveRule{
	Knight: {dirs: knightDirs},
	Bishop: {dirs: diagonal, slides: true},
	Rook:   {dirs: orthogonal, slides: true},
	Queen:  {dirs: allDirs, slides: true},
	King:   {dirs: allDirs},
}

// pawnDir returns the rank step of c's pawns.
func pawnDir(c Color) int {
	if c == Black {
		return -1
	}
	return 1
}

// AttackedSquares returns every square a piece of color by could move to
// or capture on, ignoring pins and the color of whatever stands there.
func AttackedSquares(b Board, by Color) (SquareSet, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return b.attackedSquares(by), nil
}

func (b Board) attackedSquares(by Color) SquareSet {
	var set SquareSet
	for from := A1; from <= H8; from++ {
		p := b.squares[from]
		if p.IsEmpty() || p.Color() != by {
			continue
		}
		if p.Type() == Pawn {
			for _, df := range [2]int{-1, 1} {
				if to := from.offset(df, pawnDir(by)); to != NoSquare {
					set = set.with(to)
				}
			}
			continue
		}
		rule := moveRules[p.Type()]
		for _, d := range rule.dirs {
			for to := from.offset(d.df, d.dr); to != NoSquare; to = to.offset(d.df, d.dr) {
				set = set.with(to)
				if !rule.slides || !b.squares[to].IsEmpty() {
					break
				}
			}
		}
	}
	return set
}

// isAttacked reports whether sq is attacked by a piece of color by. It
// looks outward from sq instead of building the whole attack set.
func (b Board) isAttacked(sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}
	for _, df := range [2]int{-1, 1} {
		if from := sq.offset(df, -pawnDir(by)); from != NoSquare && b.squares[from] == NewPiece(by, Pawn) {
			return true
		}
	}
	for _, t := range [...]PieceType{Knight, King} {
		for _, d := range moveRules[t].dirs {
			if from := sq.offset(d.df, d.dr); from != NoSquare && b.squares[from] == NewPiece(by, t) {
				return true
			}
		}
	}
	for _, slider := range [...]struct {
		dirs []direction
		kind PieceType
	}{{orthogonal, Rook}, {diagonal, Bishop}} {
		for _, d := range slider.dirs {
			for from := sq.offset(d.df, d.dr); from != NoSquare; from = from.offset(d.df, d.dr) {
				p := b.squares[from]
				if p.IsEmpty() {
					continue
				}
				if p.Color() == by && (p.Type() == slider.kind || p.Type() == Queen) {
					return true
				}
				break
			}
		}
	}
	return false
}

// InCheck reports whether the side to move is in check.
func InCheck(b Board) bool {
	return b.isAttacked(b.KingSquare(b.turn), b.turn.Other())
}

// PseudoLegalMoves returns every move that follows the movement rules of
// the pieces without checking whether the mover's king is left attacked.
// Castling is only generated when the king does not start on, pass through
// or land on an attacked square.
func PseudoLegalMoves(b Board) ([]Move, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.pseudoLegalMoves(), nil
}

// LegalMoves returns the moves available to the side to move. The order
// is deterministic: by origin square (a1 to h8), then by a fixed
// direction order per piece, promotions as N, B, R, Q.
func LegalMoves(b Board) ([]Move, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.legalMoves(), nil
}

// legalMoves filters the pseudo-legal moves by playing each one and
// testing the mover's king. b must already be valid.
func (b Board) legalMoves() []Move {
	pseudo := b.pseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		nb := b.play(m)
		if !nb.isAttacked(nb.KingSquare(b.turn), nb.turn) {
			legal = append(legal, m)
		}
	}
	return legal
}

// hasLegalMoves is legalMoves with an early exit.
func (b Board) hasLegalMoves() bool {
	for _, m := range b.pseudoLegalMoves() {
		nb := b.play(m)
		if !nb.isAttacked(nb.KingSquare(b.turn), nb.turn) {
			return true
		}
	}
	return false
}

// hasLegalEnPassant reports whether an en passant capture is legal now.
func (b Board) hasLegalEnPassant() bool {
	if b.enPassant == NoSquare {
		return false
	}
	for _, m := range b.legalMoves() {
		if m.HasTag(EnPassant) {
			return true
		}
	}
	return false
}

type movegen struct {
	Board
	moves []Move
}

func (b Board) pseudoLegalMoves() []Move {
	gen := movegen{Board: b, moves: make([]Move, 0, 48)}
	for from := A1; from <= H8; from++ {
		p := gen.squares[from]
		if p.IsEmpty() || p.Color() != gen.turn {
			continue
		}
		switch p.Type() {
		case Pawn:
			gen.pawn(from)
		case King:
			gen.steps(from, moveRules[King])
			gen.castles(from)
		default:
			gen.steps(from, moveRules[p.Type()])
		}
	}
	return gen.moves
}

// steps adds moves along each direction of rule, stopping at the board
// edge, a friendly piece, or after a capture.
func (gen *movegen) steps(from Square, rule moveRule) {
	for _, d := range rule.dirs {
		for to := from.offset(d.df, d.dr); to != NoSquare; to = to.offset(d.df, d.dr) {
			target := gen.squares[to]
			if target.IsEmpty() {
				gen.moves = append(gen.moves, Move{s1: from, s2: to})
			} else {
				if target.Color() != gen.turn {
					gen.moves = append(gen.moves, Move{s1: from, s2: to, tags: Capture})
				}
				break
			}
			if !rule.slides {
				break
			}
		}
	}
}

func (gen *movegen) pawn(from Square) {
	dir := pawnDir(gen.turn)
	startRank := Rank2
	if gen.turn == Black {
		startRank = Rank7
	}

	if one := from.offset(0, dir); one != NoSquare && gen.squares[one].IsEmpty() {
		gen.addPawnMove(from, one, 0)
		if from.Rank() == startRank {
			if two := one.offset(0, dir); gen.squares[two].IsEmpty() {
				gen.moves = append(gen.moves, Move{s1: from, s2: two, tags: DoublePawnPush})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := from.offset(df, dir)
		if to == NoSquare {
			continue
		}
		target := gen.squares[to]
		switch {
		case !target.IsEmpty() && target.Color() != gen.turn:
			gen.addPawnMove(from, to, Capture)
		case target.IsEmpty() && to == gen.enPassant &&
			gen.squares[to.offset(0, -dir)] == NewPiece(gen.turn.Other(), Pawn):
			gen.moves = append(gen.moves, Move{s1: from, s2: to, tags: Capture | EnPassant})
		}
	}
}

// addPawnMove adds a pawn move, expanding it into the four promotions
// when it reaches the last rank.
func (gen *movegen) addPawnMove(from, to Square, tags MoveTag) {
	if to.Rank() != backRank(gen.turn.Other()) {
		gen.moves = append(gen.moves, Move{s1: from, s2: to, tags: tags})
		return
	}
	for _, promo := range promoPieceTypes {
		gen.moves = append(gen.moves, Move{s1: from, s2: to, promo: promo, tags: tags})
	}
}

// castles adds the castling moves of the king on kingSq.
func (gen *movegen) castles(kingSq Square) {
	us := gen.turn
	if kingSq.Rank() != backRank(us) {
		return
	}
	for _, s := range [2]Side{KingSide, QueenSide} {
		if !gen.castling.CanCastle(us, s) {
			continue
		}
		rookSq := gen.castleRookSquare(us, s)
		if gen.squares[rookSq] != NewPiece(us, Rook) {
			continue
		}
		kingTo := NewSquare(kingCastleFile[s], backRank(us))
		rookTo := NewSquare(rookCastleFile[s], backRank(us))

		lo, hi := minSquare(kingSq, rookSq, kingTo, rookTo), maxSquare(kingSq, rookSq, kingTo, rookTo)
		clear := true
		for sq := lo; sq <= hi; sq++ {
			if sq != kingSq && sq != rookSq && !gen.squares[sq].IsEmpty() {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		// The rook is lifted before testing the king's path so a rook on
		// the path cannot hide an attacker behind it in Chess960 layouts.
		probe := gen.Board
		probe.squares[rookSq] = NoPiece
		step := 1
		if kingTo < kingSq {
			step = -1
		}
		safe := true
		for sq := kingSq; ; sq += Square(step) {
			if probe.isAttacked(sq, us.Other()) {
				safe = false
				break
			}
			if sq == kingTo {
				break
			}
		}
		if !safe {
			continue
		}

		tag := KingSideCastle
		if s == QueenSide {
			tag = QueenSideCastle
		}
		gen.moves = append(gen.moves, Move{s1: kingSq, s2: gen.castleTarget(us, s, kingSq), tags: tag})
	}
}

func minSquare(sqs ...Square) Square {
	m := sqs[0]
	for _, sq := range sqs[1:] {
		if sq < m {
			m = sq
		}
	}
	return m
}

func maxSquare(sqs ...Square) Square {
	m := sqs[0]
	for _, sq := range sqs[1:] {
		if sq > m {
			m = sq
		}
	}
	return m
}

// findLegal returns the legal move with the same squares and promotion as m.
func (b Board) findLegal(m Move) (Move, error) {
	if err := b.Validate(); err != nil {
		return Move{}, err
	}
	for _, legal := range b.legalMoves() {
		if legal.s1 == m.s1 && legal.s2 == m.s2 && legal.promo == m.promo {
			return legal, nil
		}
	}
	reason := ""
	switch p := b.Piece(m.s1); {
	case p.IsEmpty():
		reason = fmt.Sprintf("no piece on %s", m.s1)
	case p.Color() != b.turn:
		reason = fmt.Sprintf("%s is not to move", p.Color().Name())
	}
	return Move{}, &MoveError{Move: m, FEN: b.String(), Reason: reason}
}
