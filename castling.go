package chess

// Side is the wing a castling move goes to.
type Side uint8

const (
	// KingSide is castling towards the h-file (O-O).
	KingSide Side = iota
	// QueenSide is castling towards the a-file (O-O-O).
	QueenSide
)

// String returns the SAN for castling on this side.
func (s Side) String() string {
	if s == KingSide {
		return "O-O"
	}
	return "O-O-O"
}

// CastleRights holds the four independent castling flags.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// castleFlag returns the flag for color c castling on side s.
func castleFlag(c Color, s Side) CastleRights {
	if c == White {
		if s == KingSide {
			return WhiteKingSide
		}
		return WhiteQueenSide
	}
	if s == KingSide {
		return BlackKingSide
	}
	return BlackQueenSide
}

// CanCastle returns true if the flag for color c on side s is set.
func (cr CastleRights) CanCastle(c Color, s Side) bool {
	if c != White && c != Black {
		return false
	}
	return cr&castleFlag(c, s) != 0
}

// String returns the standard FEN castling field, "-" when empty.
func (cr CastleRights) String() string {
	if cr == NoCastleRights {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// standard rook home files.
var defaultRookFile = [2]File{KingSide: FileH, QueenSide: FileA}

// castling destination files, shared by standard chess and Chess960.
var (
	kingCastleFile = [2]File{KingSide: FileG, QueenSide: FileC}
	rookCastleFile = [2]File{KingSide: FileF, QueenSide: FileD}
)

// backRank returns the home rank of color c.
func backRank(c Color) Rank {
	if c == Black {
		return Rank8
	}
	return Rank1
}

// colorIndex maps White to 0 and Black to 1.
func colorIndex(c Color) int {
	if c == Black {
		return 1
	}
	return 0
}

// castleRookSquare returns the square of the rook that castles with
// color c on side s.
func (b Board) castleRookSquare(c Color, s Side) Square {
	return NewSquare(b.rookFiles[colorIndex(c)][s], backRank(c))
}

// castleTarget is the destination square of a castling move.
// Boards with the standard king and rook files use the king's
// two-square step; any other layout encodes castling as the king
// moving onto its own rook so the move cannot be confused with an
// ordinary king step.
func (b Board) castleTarget(c Color, s Side, kingSq Square) Square {
	if kingSq.File() == FileE && b.rookFiles[colorIndex(c)][s] == defaultRookFile[s] {
		return NewSquare(kingCastleFile[s], backRank(c))
	}
	return b.castleRookSquare(c, s)
}

// clearCastle drops the flag for c on side s and resets the stored
// rook file so equal positions compare equal.
func (b *Board) clearCastle(c Color, s Side) {
	b.castling &^= castleFlag(c, s)
	b.rookFiles[colorIndex(c)][s] = defaultRookFile[s]
}

// clearCastleForSquare drops any castling flag that depends on a rook
// standing on sq.
func (b *Board) clearCastleForSquare(sq Square) {
	for _, c := range [2]Color{White, Black} {
		if sq.Rank() != backRank(c) {
			continue
		}
		for _, s := range [2]Side{KingSide, QueenSide} {
			if b.castling.CanCastle(c, s) && b.rookFiles[colorIndex(c)][s] == sq.File() {
				b.clearCastle(c, s)
			}
		}
	}
}
