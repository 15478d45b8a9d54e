package chess

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// CastlingRule decides which castling layouts a variant accepts.
type CastlingRule uint8

const (
	// StandardCastling requires the king on the e-file and the rooks on the
	// a- and h-files.
	StandardCastling CastlingRule = iota
	// Chess960Castling accepts any king between its two castling rooks.
	Chess960Castling
)

func (r CastlingRule) String() string {
	if r == Chess960Castling {
		return "chess960"
	}
	return "standard"
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *CastlingRule) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		*r = StandardCastling
	case "chess960", "960", "fischerandom":
		*r = Chess960Castling
	default:
		return fmt.Errorf("chess: unknown castling rule %q", s)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r CastlingRule) MarshalYAML() (any, error) {
	return r.String(), nil
}

// A Variant holds the rule parameters a Game is started with: the initial
// layout and the castling rule. Move generation itself is the same for
// every variant.
type Variant struct {
	Name     string       `yaml:"name"`
	FEN      string       `yaml:"fen,omitempty"`
	Castling CastlingRule `yaml:"castling"`
	// Position selects a Chess960 starting position (0-959) when FEN is empty.
	Position *int `yaml:"position,omitempty"`
}

// Standard is standard chess from the usual starting position.
func Standard() Variant {
	return Variant{Name: "Standard", FEN: StartingFEN, Castling: StandardCastling}
}

// FromPosition is standard chess from the given FEN.
func FromPosition(fen string) Variant {
	return Variant{Name: "From Position", FEN: fen, Castling: StandardCastling}
}

// Chess960 is Fischer random chess from starting position id (0-959,
// 518 being the standard layout).
func Chess960(id int) Variant {
	return Variant{Name: "Chess960", Castling: Chess960Castling, Position: &id}
}

// Board returns the variant's initial board, checking it against the
// castling rule.
func (v Variant) Board() (Board, error) {
	fen := v.FEN
	if fen == "" && v.Position != nil {
		rank, err := chess960BackRank(*v.Position)
		if err != nil {
			return Board{}, err
		}
		fen = fmt.Sprintf("%s/pppppppp/8/8/8/8/PPPPPPPP/%s w KQkq - 0 1", strings.ToLower(rank), rank)
	}
	if fen == "" {
		fen = StartingFEN
	}
	b, err := DecodeFEN(fen)
	if err != nil {
		return Board{}, err
	}
	if v.Castling == StandardCastling {
		if err := checkStandardCastling(b); err != nil {
			return Board{}, &FENError{FEN: fen, Field: "castling", Reason: err.Error()}
		}
	}
	return b, nil
}

func checkStandardCastling(b Board) error {
	for _, c := range [2]Color{White, Black} {
		for _, s := range [2]Side{KingSide, QueenSide} {
			if !b.castling.CanCastle(c, s) {
				continue
			}
			if b.KingSquare(c).File() != FileE || b.CastleRookFile(c, s) != defaultRookFile[s] {
				return fmt.Errorf("%s castling needs the king on e and rooks on a and h in standard chess", c.Name())
			}
		}
	}
	return nil
}

// knightPlacements enumerates the two knight slots among five free squares.
var knightPlacements = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
}

// chess960BackRank returns white's back rank for Chess960 position id,
// using the Scharnagl numbering.
func chess960BackRank(id int) (string, error) {
	if id < 0 || id > 959 {
		return "", fmt.Errorf("chess: chess960 position %d out of range", id)
	}
	var rank [8]byte
	n := id
	rank[2*(n%4)+1] = 'B'
	n /= 4
	rank[2*(n%4)] = 'B'
	n /= 4
	place := func(skip int, piece byte) {
		for f := range rank {
			if rank[f] != 0 {
				continue
			}
			if skip == 0 {
				rank[f] = piece
				return
			}
			skip--
		}
	}
	place(n%6, 'Q')
	n /= 6
	kn := knightPlacements[n]
	// the second knight index shifts down once the first is placed
	place(kn[0], 'N')
	place(kn[1]-1, 'N')
	place(0, 'R')
	place(0, 'K')
	place(0, 'R')
	return string(rank[:]), nil
}

// ParseVariant reads a single variant definition from YAML.
func ParseVariant(data []byte) (Variant, error) {
	var v Variant
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Variant{}, fmt.Errorf("chess: parsing variant: %w", err)
	}
	if _, err := v.Board(); err != nil {
		return Variant{}, fmt.Errorf("chess: variant %q: %w", v.Name, err)
	}
	return v, nil
}

// LoadVariants reads every YAML document in r as a variant definition.
func LoadVariants(r io.Reader) ([]Variant, error) {
	dec := yaml.NewDecoder(r)
	var out []Variant
	for {
		var v Variant
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("chess: parsing variant %d: %w", len(out)+1, err)
		}
		if _, err := v.Board(); err != nil {
			return nil, fmt.Errorf("chess: variant %q: %w", v.Name, err)
		}
		out = append(out, v)
	}
}

// MarshalVariant writes v as YAML.
func MarshalVariant(v Variant) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
