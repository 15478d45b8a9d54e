package chess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validFENs = []string{
	StartingFEN,
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"2r3k1/1q1nbppp/r3p3/3pP3/pPpP4/P1Q2N2/2RN1PPP/2R4K b - b3 100 60",
	"4k3/8/8/8/8/8/8/4K3 w - - 0 0",
	// Chess960 layouts
	"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w KQkq - 2 9",
	"4k3/8/8/8/8/8/8/RK2R2R w E - 0 1",
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range validFENs {
		t.Run(fen, func(t *testing.T) {
			b, err := DecodeFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := EncodeFEN(b); got != fen {
				t.Fatalf("expected %s but got %s", fen, got)
			}
			if b.String() != fen {
				t.Fatalf("String() should match EncodeFEN")
			}
		})
	}
}

func TestDecodeFENFields(t *testing.T) {
	b, err := DecodeFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	assert.Equal(t, Black, b.Turn())
	assert.Equal(t, E3, b.EnPassantSquare())
	assert.Equal(t, AllCastleRights, b.CastleRights())
	assert.Equal(t, 0, b.HalfMoveClock())
	assert.Equal(t, 1, b.FullMoveNumber())
	assert.Equal(t, NewPiece(White, Pawn), b.Piece(E4))
	assert.Equal(t, NoPiece, b.Piece(E2))
	assert.Equal(t, E1, b.KingSquare(White))
	assert.Equal(t, E8, b.KingSquare(Black))
	assert.Len(t, b.SquareMap(), 32)
}

func TestDecodeFENShredderCastling(t *testing.T) {
	b, err := DecodeFEN("bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9")
	require.NoError(t, err)

	assert.Equal(t, FileH, b.CastleRookFile(White, KingSide))
	assert.Equal(t, FileF, b.CastleRookFile(White, QueenSide))
	assert.Equal(t, FileH, b.CastleRookFile(Black, KingSide))
	assert.Equal(t, FileF, b.CastleRookFile(Black, QueenSide))
	// the outermost rooks castle, so the plain letters are written back
	assert.Equal(t, "KQkq", encodeCastling(b))

	b, err = DecodeFEN("1rqbkrbn/1ppppp1p/1n6/p1N3p1/8/2P4P/PP1PPPP1/1RQBKRBN w FBfb - 0 9")
	require.NoError(t, err)
	assert.Equal(t, FileF, b.CastleRookFile(White, KingSide))
	assert.Equal(t, FileB, b.CastleRookFile(White, QueenSide))
	assert.Equal(t, "1rqbkrbn/1ppppp1p/1n6/p1N3p1/8/2P4P/PP1PPPP1/1RQBKRBN w KQkq - 0 9", b.String())
}

func TestEncodeFENInnerRook(t *testing.T) {
	b, err := DecodeFEN("4k3/8/8/8/8/8/8/RK2R2R w E - 0 1")
	require.NoError(t, err)
	assert.Equal(t, FileE, b.CastleRookFile(White, KingSide))
	assert.False(t, b.CastleRights().CanCastle(White, QueenSide))

	// K would pick the h-rook
	b, err = DecodeFEN("4k3/8/8/8/8/8/8/RK2R2R w K - 0 1")
	require.NoError(t, err)
	assert.Equal(t, FileH, b.CastleRookFile(White, KingSide))
}

func TestDecodeFENRejects(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty", "", ""},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", ""},
		{"seven fields", StartingFEN + " 1", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"short rank", "rnbqkbnr/pppppppp/8/8/7/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"long rank", "rnbqkbnr/pppppppp/8/8/44/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1", "placement"},
		{"nine squares", "rnbqkbnr/pppppppp/8/8/8/9/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", "placement"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "side to move"},
		{"bad castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1", "castling"},
		{"duplicate castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KKkq - 0 1", "castling"},
		{"castling without rook", "rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "castling"},
		{"castling with moved king", "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQ1BNR w KQkq - 0 1", "castling"},
		{"en passant not a square", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e9 0 1", "en passant"},
		{"en passant wrong rank", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e6 0 1", "en passant"},
		{"negative half move clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "half move clock"},
		{"signed full move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 +1", "full move number"},
		{"text counter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 one", "full move number"},
		{"missing king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1", "position"},
		{"two kings", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKKBNR w kq - 0 1", "position"},
		{"pawn on back rank", "rnbqkbnP/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQq - 0 1", "position"},
		{"waiting side in check", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", "position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeFEN(tt.fen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFEN))
			assert.Equal(t, Board{}, b)

			var fe *FENError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.fen, fe.FEN)
		})
	}
}

func TestValidateBuiltBoard(t *testing.T) {
	b := StartingBoard().WithPiece(E8, NoPiece)
	err := b.Validate()
	require.ErrorIs(t, err, ErrInvalidPosition)

	_, err = LegalMoves(b)
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = Apply(b, NewMove(E2, E4, NoPieceType))
	require.ErrorIs(t, err, ErrInvalidPosition)
}

func TestWithPieceDropsCastling(t *testing.T) {
	b := StartingBoard().WithPiece(H1, NoPiece)
	assert.False(t, b.CastleRights().CanCastle(White, KingSide))
	assert.True(t, b.CastleRights().CanCastle(White, QueenSide))

	// putting the rook back does not restore the right
	b = b.WithPiece(H1, NewPiece(White, Rook))
	assert.False(t, b.CastleRights().CanCastle(White, KingSide))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Qkq - 0 1", b.String())
}

func TestBoardDraw(t *testing.T) {
	d := StartingBoard().Draw()
	assert.Contains(t, d, "A B C D E F G H")
}
