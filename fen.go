package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the FEN of the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const numOfFENFields = 6

// DecodeFEN parses a six field FEN string. It never returns a partially
// built Board: any problem yields the zero Board and a *FENError.
//
// The castling field accepts the standard KQkq letters and, for Chess960
// layouts, rook file letters (A-H for white, a-h for black).
func DecodeFEN(fen string) (Board, error) {
	fail := func(field, format string, args ...any) (Board, error) {
		return Board{}, &FENError{FEN: fen, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	parts := strings.Fields(fen)
	if len(parts) != numOfFENFields {
		return fail("", "need %d fields, got %d", numOfFENFields, len(parts))
	}

	b := emptyBoard()
	if err := decodePlacement(&b, parts[0]); err != nil {
		return fail("placement", "%s", err)
	}

	switch parts[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return fail("side to move", "%q is not w or b", parts[1])
	}

	if err := decodeCastling(&b, parts[2]); err != nil {
		return fail("castling", "%s", err)
	}

	if parts[3] != "-" {
		sq := parseSquare(parts[3])
		if sq == NoSquare {
			return fail("en passant", "%q is not a square", parts[3])
		}
		want := Rank6
		if b.turn == Black {
			want = Rank3
		}
		if sq.Rank() != want {
			return fail("en passant", "%s must be on rank %s with %s to move", sq, want, b.turn.Name())
		}
		b.enPassant = sq
	}

	half, err := decodeCounter(parts[4])
	if err != nil {
		return fail("half move clock", "%s", err)
	}
	b.halfMoveClock = half

	full, err := decodeCounter(parts[5])
	if err != nil {
		return fail("full move number", "%s", err)
	}
	b.fullMoveNumber = full

	if err := b.Validate(); err != nil {
		var ipe *InvalidPositionError
		if errors.As(err, &ipe) {
			return fail("position", "%s", ipe.Reason)
		}
		return fail("position", "%s", err)
	}
	return b, nil
}

func decodePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("need 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return fmt.Errorf("rank %s has more than 8 squares", rank)
				}
				continue
			}
			p := pieceFromFEN(c)
			if p.IsEmpty() {
				return fmt.Errorf("invalid piece character %q", c)
			}
			if file >= 8 {
				return fmt.Errorf("rank %s has more than 8 squares", rank)
			}
			b.squares[NewSquare(File(file), rank)] = p
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %s has %d squares", rank, file)
		}
	}
	return nil
}

func decodeCastling(b *Board, field string) error {
	if field == "-" {
		return nil
	}
	if field == "" {
		return errors.New("empty field")
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		color := White
		if c >= 'a' && c <= 'z' {
			color = Black
		}
		kingSq := b.KingSquare(color)
		if kingSq == NoSquare || kingSq.Rank() != backRank(color) {
			return fmt.Errorf("%q given but the %s king is not on its home rank", c, color.Name())
		}

		var side Side
		var rookFile File
		switch {
		case c == 'K' || c == 'k':
			side = KingSide
			f, ok := b.outermostRook(color, kingSq, side)
			if !ok {
				return fmt.Errorf("%q given but there is no rook on the king side", c)
			}
			rookFile = f
		case c == 'Q' || c == 'q':
			side = QueenSide
			f, ok := b.outermostRook(color, kingSq, side)
			if !ok {
				return fmt.Errorf("%q given but there is no rook on the queen side", c)
			}
			rookFile = f
		case c >= 'A' && c <= 'H' || c >= 'a' && c <= 'h':
			rookFile = File(c|0x20) - 'a'
			sq := NewSquare(rookFile, backRank(color))
			if b.squares[sq] != NewPiece(color, Rook) {
				return fmt.Errorf("%q given but there is no rook on %s", c, sq)
			}
			side = QueenSide
			if rookFile > kingSq.File() {
				side = KingSide
			}
		default:
			return fmt.Errorf("invalid character %q", c)
		}

		flag := castleFlag(color, side)
		if b.castling&flag != 0 {
			return fmt.Errorf("duplicate right %q", c)
		}
		b.castling |= flag
		b.rookFiles[colorIndex(color)][side] = rookFile
	}
	return nil
}

// outermostRook finds the rook of color c furthest from the king on side s
// of its back rank.
func (b Board) outermostRook(c Color, kingSq Square, s Side) (File, bool) {
	rook := NewPiece(c, Rook)
	r := backRank(c)
	if s == KingSide {
		for f := FileH; f > kingSq.File(); f-- {
			if b.squares[NewSquare(f, r)] == rook {
				return f, true
			}
		}
		return 0, false
	}
	for f := FileA; f < kingSq.File(); f++ {
		if b.squares[NewSquare(f, r)] == rook {
			return f, true
		}
	}
	return 0, false
}

func decodeCounter(s string) (int, error) {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		return 0, fmt.Errorf("%q must be an unsigned integer", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}

// EncodeFEN returns the FEN of b. It is the inverse of DecodeFEN.
func EncodeFEN(b Board) string {
	var sb strings.Builder

	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := b.squares[NewSquare(f, r)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.fenByte())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.turn.String())
	sb.WriteByte(' ')
	sb.WriteString(encodeCastling(b))
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMoveNumber))

	return sb.String()
}

// encodeCastling writes KQkq when the castling rook is the outermost one
// on its side, and the rook's file letter otherwise.
func encodeCastling(b Board) string {
	if b.castling == NoCastleRights {
		return "-"
	}
	var sb strings.Builder
	for _, c := range [2]Color{White, Black} {
		kingSq := b.KingSquare(c)
		for _, s := range [2]Side{KingSide, QueenSide} {
			if !b.castling.CanCastle(c, s) {
				continue
			}
			file := b.rookFiles[colorIndex(c)][s]
			var ch byte
			if outer, ok := b.outermostRook(c, kingSq, s); ok && outer == file {
				ch = "KQ"[s]
			} else {
				ch = 'A' + byte(file)
			}
			if c == Black {
				ch |= 0x20
			}
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}
