package chess

import (
	"fmt"
	"regexp"
	"strings"
)

// Encoder is the interface implemented by objects that can
// encode a move into a string given the board it is played in.
type Encoder interface {
	Encode(b Board, m Move) (string, error)
}

// Decoder is the interface implemented by objects that can
// decode a string into a legal move of the given board.
type Decoder interface {
	Decode(b Board, s string) (Move, error)
}

// Notation is the interface implemented by objects that can
// encode and decode moves.
type Notation interface {
	Encoder
	Decoder
	fmt.Stringer
}

// AlgebraicNotation (or Standard Algebraic Notation) is the
// official chess notation used by FIDE. Examples: e4, e5,
// O-O (short castling), e8=Q (promotion).
type AlgebraicNotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// Encode implements the Encoder interface.
func (AlgebraicNotation) Encode(b Board, m Move) (string, error) {
	return EncodeSAN(b, m)
}

// Decode implements the Decoder interface.
func (AlgebraicNotation) Decode(b Board, s string) (Move, error) {
	return DecodeSAN(b, s)
}

// EncodeSAN returns the standard algebraic notation of m in b. Ambiguity
// between pieces of the same type is resolved with the origin file, else
// the origin rank, else both. The check or mate suffix is computed on the
// resulting board.
func EncodeSAN(b Board, m Move) (string, error) {
	legal, err := b.findLegal(m)
	if err != nil {
		return "", err
	}
	return b.san(legal), nil
}

// san encodes a move already known to be legal in b.
func (b Board) san(m Move) string {
	var sb strings.Builder
	switch {
	case m.HasTag(KingSideCastle):
		sb.WriteString(KingSide.String())
	case m.HasTag(QueenSideCastle):
		sb.WriteString(QueenSide.String())
	default:
		p := b.squares[m.s1]
		if p.Type() != Pawn {
			sb.WriteString(p.Type().String())
			sb.WriteString(b.disambiguation(m, p.Type()))
		}
		if m.HasTag(Capture) {
			if p.Type() == Pawn {
				sb.WriteString(m.s1.File().String())
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.s2.String())
		if m.promo != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(m.promo.String())
		}
	}

	nb := b.play(m)
	if InCheck(nb) {
		if nb.hasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func (b Board) disambiguation(m Move, pt PieceType) string {
	var others []Square
	for _, o := range b.legalMoves() {
		if o.s2 != m.s2 || o.s1 == m.s1 || o.IsCastle() {
			continue
		}
		if b.squares[o.s1].Type() == pt {
			others = append(others, o.s1)
		}
	}
	if len(others) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq.File() == m.s1.File() {
			sameFile = true
		}
		if sq.Rank() == m.s1.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return m.s1.File().String()
	case !sameRank:
		return m.s1.Rank().String()
	}
	return m.s1.String()
}

var sanPattern = regexp.MustCompile(`^([PNBRQK])?([a-h])?([1-8])?(x|:)?([a-h][1-8])(?:=?([NBRQnbrq]))?(?:e\.?p\.?)?$`)

// DecodeSAN resolves one algebraic token against the legal moves of b.
// Check, mate and annotation suffixes are ignored, zeros are accepted in
// castling. The token must identify exactly one legal move.
func DecodeSAN(b Board, token string) (Move, error) {
	if err := b.Validate(); err != nil {
		return Move{}, err
	}
	s := strings.TrimRight(strings.TrimSpace(token), "+#!?")
	if s == "" {
		return Move{}, &PGNError{Token: token, Kind: Malformed, Detail: "empty token"}
	}

	switch strings.ReplaceAll(s, "0", "O") {
	case "O-O":
		return b.decodeCastle(token, KingSideCastle)
	case "O-O-O":
		return b.decodeCastle(token, QueenSideCastle)
	}

	parts := sanPattern.FindStringSubmatch(s)
	if parts == nil {
		return Move{}, &PGNError{Token: token, Kind: Malformed, Detail: "not algebraic notation"}
	}
	piece := Pawn
	if parts[1] != "" {
		piece = PieceTypeFromString(parts[1])
	}
	fromFile, fromRank := File(-1), Rank(-1)
	if parts[2] != "" {
		fromFile = File(parts[2][0] - 'a')
	}
	if parts[3] != "" {
		fromRank = Rank(parts[3][0] - '1')
	}
	capture := parts[4] != ""
	dest := parseSquare(parts[5])
	promo := NoPieceType
	if parts[6] != "" {
		promo = PieceTypeFromString(parts[6])
	}

	var matches []Move
	for _, m := range b.legalMoves() {
		if m.s2 != dest || m.IsCastle() || m.promo != promo {
			continue
		}
		if b.squares[m.s1].Type() != piece {
			continue
		}
		if fromFile >= 0 && m.s1.File() != fromFile || fromRank >= 0 && m.s1.Rank() != fromRank {
			continue
		}
		if capture && !m.HasTag(Capture) {
			continue
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return Move{}, &PGNError{Token: token, Kind: NoSuchMove}
	case 1:
		return matches[0], nil
	}
	return Move{}, &PGNError{Token: token, Kind: Ambiguous, Candidates: matches}
}

func (b Board) decodeCastle(token string, tag MoveTag) (Move, error) {
	for _, m := range b.legalMoves() {
		if m.HasTag(tag) {
			return m, nil
		}
	}
	return Move{}, &PGNError{Token: token, Kind: NoSuchMove, Detail: "castling is not legal"}
}

// UCINotation is a more computer friendly alternative to algebraic
// notation. This notation uses the same format as the UCI (Universal Chess
// Interface). Examples: e2e4, e7e5, e1g1 (white short castling), e7e8q (for promotion).
type UCINotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Encoder interface.
func (n UCINotation) Encode(b Board, m Move) (string, error) {
	legal, err := b.findLegal(m)
	if err != nil {
		return "", err
	}
	return n.encode(legal), nil
}

func (UCINotation) encode(m Move) string {
	s := m.s1.String() + m.s2.String()
	if m.promo != NoPieceType {
		s += strings.ToLower(m.promo.String())
	}
	return s
}

// Decode implements the Decoder interface. Castling may also be given
// as the king moving onto its own rook (e1h1).
func (UCINotation) Decode(b Board, s string) (Move, error) {
	if err := b.Validate(); err != nil {
		return Move{}, err
	}
	tok := strings.TrimSpace(s)
	if !isCoordinateMoveToken(tok) {
		return Move{}, &PGNError{Token: s, Kind: Malformed, Detail: "not coordinate notation"}
	}
	from, to := parseSquare(tok[0:2]), parseSquare(tok[2:4])
	promo := NoPieceType
	if len(tok) == 5 {
		promo = pieceTypeFromByte(tok[4])
	}

	want := NewMove(from, to, promo)
	for _, m := range b.legalMoves() {
		if m.sameAs(want) {
			return m, nil
		}
		if m.IsCastle() && m.s1 == from && promo == NoPieceType {
			side := KingSide
			if m.HasTag(QueenSideCastle) {
				side = QueenSide
			}
			if b.castleRookSquare(b.turn, side) == to {
				return m, nil
			}
		}
	}
	return Move{}, &PGNError{Token: s, Kind: NoSuchMove}
}

func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}
