package chess

// Color represents the color of a chess piece or the side to move.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display friendly name.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// PieceType is the kind of a piece independent of its color.
type PieceType int8

const (
	// NoPieceType is the zero value.
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes returns all piece types, pawn first.
func PieceTypes() [6]PieceType {
	return [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}
}

// promoPieceTypes is the order in which promotions are generated.
var promoPieceTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

// String returns the upper case SAN letter, empty for pawns.
func (p PieceType) String() string {
	switch p {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// PieceTypeFromString maps a SAN letter (either case) to a piece type.
func PieceTypeFromString(s string) PieceType {
	if len(s) != 1 {
		return NoPieceType
	}
	return pieceTypeFromByte(s[0])
}

func pieceTypeFromByte(b byte) PieceType {
	switch b {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPieceType
}

// Piece is a colored piece. The zero value is NoPiece.
type Piece struct {
	color Color
	kind  PieceType
}

// NoPiece is an empty square.
var NoPiece = Piece{}

// NewPiece returns the piece of the given color and type.
func NewPiece(c Color, t PieceType) Piece {
	if c == NoColor || t == NoPieceType {
		return NoPiece
	}
	return Piece{color: c, kind: t}
}

// Color returns the piece's color.
func (p Piece) Color() Color {
	return p.color
}

// Type returns the piece's type.
func (p Piece) Type() PieceType {
	return p.kind
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.kind == NoPieceType
}

// String returns the FEN letter: upper case for white, lower case for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return ""
	}
	return string(p.fenByte())
}

func (p Piece) fenByte() byte {
	b := "?PNBRQK"[p.kind]
	if p.color == Black {
		b += 'a' - 'A'
	}
	return b
}

// pieceFromFEN converts a FEN letter into a piece.
func pieceFromFEN(b byte) Piece {
	t := pieceTypeFromByte(b)
	if t == NoPieceType {
		return NoPiece
	}
	if b >= 'a' && b <= 'z' {
		return NewPiece(Black, t)
	}
	return NewPiece(White, t)
}
