package chess

// Apply plays m on b and returns the resulting board. The move is matched
// against LegalMoves(b) by origin, destination and promotion; any tags on
// m are ignored. b itself is never modified.
func Apply(b Board, m Move) (Board, error) {
	legal, err := b.findLegal(m)
	if err != nil {
		return Board{}, err
	}
	return b.play(legal), nil
}

// play performs a generated move without validation.
func (b Board) play(m Move) Board {
	us := b.turn
	nb := b
	moving := b.squares[m.s1]

	nb.enPassant = NoSquare
	nb.halfMoveClock++

	if m.IsCastle() {
		s := KingSide
		if m.HasTag(QueenSideCastle) {
			s = QueenSide
		}
		rookSq := b.castleRookSquare(us, s)
		nb.squares[m.s1] = NoPiece
		nb.squares[rookSq] = NoPiece
		nb.squares[NewSquare(kingCastleFile[s], backRank(us))] = moving
		nb.squares[NewSquare(rookCastleFile[s], backRank(us))] = NewPiece(us, Rook)
	} else {
		captureSq := m.s2
		if m.HasTag(EnPassant) {
			captureSq = NewSquare(m.s2.File(), m.s1.Rank())
		}
		captured := b.squares[captureSq]
		nb.squares[captureSq] = NoPiece
		nb.squares[m.s1] = NoPiece
		if m.promo != NoPieceType {
			nb.squares[m.s2] = NewPiece(us, m.promo)
		} else {
			nb.squares[m.s2] = moving
		}

		if moving.Type() == Pawn || !captured.IsEmpty() {
			nb.halfMoveClock = 0
		}
		if m.HasTag(DoublePawnPush) {
			nb.enPassant = m.s1.offset(0, pawnDir(us))
		}
		if captured.Type() == Rook {
			nb.clearCastleForSquare(captureSq)
		}
		if moving.Type() == Rook {
			nb.clearCastleForSquare(m.s1)
		}
	}

	if moving.Type() == King {
		nb.clearCastle(us, KingSide)
		nb.clearCastle(us, QueenSide)
	}
	if us == Black {
		nb.fullMoveNumber++
	}
	nb.turn = us.Other()
	return nb
}
