package chess

import (
	"fmt"
	"strings"
)

// A Board is a complete chess position: piece placement, side to move,
// castling rights, en passant target and the move counters.
//
// Board is a value. Methods never modify the receiver and Apply returns a
// new Board, so a Board can be shared between goroutines without locking.
type Board struct {
	squares        [numOfSquaresInBoard]Piece
	turn           Color
	castling       CastleRights
	rookFiles      [2][2]File
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
}

// emptyBoard returns a board with no pieces and default state.
func emptyBoard() Board {
	return Board{
		turn:           White,
		rookFiles:      [2][2]File{defaultRookFile, defaultRookFile},
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
}

// StartingBoard returns the standard initial position.
func StartingBoard() Board {
	b, err := DecodeFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Piece returns the piece on sq, NoPiece when empty or off board.
func (b Board) Piece(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// Turn returns the side to move.
func (b Board) Turn() Color {
	return b.turn
}

// CastleRights returns the castling flags.
func (b Board) CastleRights() CastleRights {
	return b.castling
}

// CastleRookFile returns the file of the rook that castles with color c
// on side s. It is only meaningful while the matching flag is set.
func (b Board) CastleRookFile(c Color, s Side) File {
	return b.rookFiles[colorIndex(c)][s]
}

// EnPassantSquare returns the en passant target, NoSquare if none.
func (b Board) EnPassantSquare() Square {
	return b.enPassant
}

// HalfMoveClock returns the number of half moves since the last capture or pawn move.
func (b Board) HalfMoveClock() int {
	return b.halfMoveClock
}

// FullMoveNumber returns the full move number, starting at 1.
func (b Board) FullMoveNumber() int {
	return b.fullMoveNumber
}

// KingSquare returns the square of c's king, NoSquare if there is none.
func (b Board) KingSquare(c Color) Square {
	k := NewPiece(c, King)
	for sq := A1; sq <= H8; sq++ {
		if b.squares[sq] == k {
			return sq
		}
	}
	return NoSquare
}

// SquareMap returns the occupied squares.
func (b Board) SquareMap() map[Square]Piece {
	m := make(map[Square]Piece)
	for sq := A1; sq <= H8; sq++ {
		if p := b.squares[sq]; !p.IsEmpty() {
			m[sq] = p
		}
	}
	return m
}

// WithPiece returns a copy of b with p placed on sq (NoPiece clears it).
// Castling flags are never re-set by this; a flag whose king or rook
// is displaced is dropped.
func (b Board) WithPiece(sq Square, p Piece) Board {
	if !sq.Valid() {
		return b
	}
	old := b.squares[sq]
	b.squares[sq] = p
	if old.Type() == King {
		b.clearCastle(old.Color(), KingSide)
		b.clearCastle(old.Color(), QueenSide)
	}
	if old.Type() == Rook {
		b.clearCastleForSquare(sq)
	}
	return b
}

// WithTurn returns a copy of b with c to move and the en passant target cleared.
func (b Board) WithTurn(c Color) Board {
	if c != b.turn {
		b.enPassant = NoSquare
	}
	b.turn = c
	return b
}

// String implements the fmt.Stringer interface and returns the FEN.
func (b Board) String() string {
	return EncodeFEN(b)
}

// Draw returns a visual representation of the board, white at the bottom.
func (b Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n A B C D E F G H\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String())
		for f := FileA; f <= FileH; f++ {
			p := b.squares[NewSquare(f, r)]
			if p.IsEmpty() {
				sb.WriteString("-")
			} else {
				sb.WriteString(p.String())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Validate checks the structural invariants every position must hold:
// one king per side, no pawns on the first or last rank, castling flags
// backed by an unmoved king and rook, a plausible en passant square, and
// the side that just moved not being in check.
func (b Board) Validate() error {
	if b.turn != White && b.turn != Black {
		return &InvalidPositionError{Reason: "no side to move"}
	}
	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		p := b.squares[sq]
		switch p.Type() {
		case King:
			kings[colorIndex(p.Color())]++
		case Pawn:
			if sq.Rank() == Rank1 || sq.Rank() == Rank8 {
				return &InvalidPositionError{Reason: fmt.Sprintf("pawn on %s", sq)}
			}
		}
	}
	for i, c := range [2]Color{White, Black} {
		if kings[i] != 1 {
			return &InvalidPositionError{Reason: fmt.Sprintf("%s has %d kings", c.Name(), kings[i])}
		}
	}
	if err := b.validateCastling(); err != nil {
		return err
	}
	if b.enPassant != NoSquare {
		want := Rank6
		if b.turn == Black {
			want = Rank3
		}
		if b.enPassant.Rank() != want {
			return &InvalidPositionError{Reason: fmt.Sprintf("en passant square %s on wrong rank", b.enPassant)}
		}
	}
	if b.halfMoveClock < 0 || b.fullMoveNumber < 0 {
		return &InvalidPositionError{Reason: "negative move counters"}
	}
	them := b.turn.Other()
	if b.isAttacked(b.KingSquare(them), b.turn) {
		return &InvalidPositionError{Reason: fmt.Sprintf("%s is in check but it is %s's turn", them.Name(), b.turn.Name())}
	}
	return nil
}

func (b Board) validateCastling() error {
	for _, c := range [2]Color{White, Black} {
		for _, s := range [2]Side{KingSide, QueenSide} {
			if !b.castling.CanCastle(c, s) {
				continue
			}
			kingSq := b.KingSquare(c)
			if kingSq.Rank() != backRank(c) {
				return &InvalidPositionError{Reason: fmt.Sprintf("%s may castle but the king has left its home rank", c.Name())}
			}
			rookSq := b.castleRookSquare(c, s)
			if b.squares[rookSq] != NewPiece(c, Rook) {
				return &InvalidPositionError{Reason: fmt.Sprintf("%s may castle %s but there is no rook on %s", c.Name(), s, rookSq)}
			}
			if s == KingSide && rookSq <= kingSq || s == QueenSide && rookSq >= kingSq {
				return &InvalidPositionError{Reason: fmt.Sprintf("%s castling rook %s on wrong side of king", c.Name(), rookSq)}
			}
		}
	}
	return nil
}

// positionKey identifies a position for repetition detection.
type positionKey struct {
	squares   [numOfSquaresInBoard]Piece
	turn      Color
	castling  CastleRights
	rookFiles [2][2]File
	enPassant Square
}

// key returns b's repetition key. The en passant square only counts
// when a capture onto it is actually legal.
func (b Board) key() positionKey {
	k := positionKey{
		squares:   b.squares,
		turn:      b.turn,
		castling:  b.castling,
		rookFiles: b.rookFiles,
		enPassant: NoSquare,
	}
	if b.enPassant != NoSquare && b.hasLegalEnPassant() {
		k.enPassant = b.enPassant
	}
	return k
}

// SamePosition reports whether b and other are the same position for the
// purposes of repetition: placement, side to move, castling rights and en
// passant availability. Move counters are ignored.
func (b Board) SamePosition(other Board) bool {
	return b.key() == other.key()
}
