package chess

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameString(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) *Game
		expected string
	}{
		{
			name:     "GameStringWithNoMoves",
			setup:    func(t *testing.T) *Game { return NewGame() },
			expected: "*",
		},
		{
			name: "GameStringWithSingleMove",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4")
				return g
			},
			expected: "1. e4 *",
		},
		{
			name: "GameStringWithLongerGame",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "Nf3", "Nc6", "Nc3", "e6", "e4", "a6", "Ne2", "Nf6", "Ned4")
				return g
			},
			expected: "1. Nf3 Nc6 2. Nc3 e6 3. e4 a6 4. Ne2 Nf6 5. Ned4 *",
		},
		{
			name: "GameStringWithComments",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				g.Root().SetComment("Opening")
				playAll(t, g, "e4")
				g.Current().SetComment("Good move")
				return g
			},
			expected: "{Opening} 1. e4 {Good move} *",
		},
		{
			name: "GameStringWithVariations",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5", "Nf3")
				require.NoError(t, g.Undo())
				playAll(t, g, "Nc3")
				return g
			},
			expected: "1. e4 e5 2. Nf3 (2. Nc3) *",
		},
		{
			name: "GameStringWithMultipleNestedVariations",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5", "Nf3")
				require.NoError(t, g.Undo())
				playAll(t, g, "Nc3")
				require.NoError(t, g.Undo())
				playAll(t, g, "d4", "d5", "c4")
				require.NoError(t, g.Undo())
				playAll(t, g, "c3")
				return g
			},
			expected: "1. e4 e5 2. Nf3 (2. Nc3) (2. d4 d5 3. c4 (3. c3)) *",
		},
		{
			name: "GameStringWithVariationsForBlack",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5", "Nf3", "Nc6", "Bb5", "a6")
				require.NoError(t, g.Undo())
				playAll(t, g, "d6")
				return g
			},
			expected: "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 (3... d6) *",
		},
		{
			name: "GameStringWithBlackVariationInTheMiddle",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5", "Nf3")
				require.NoError(t, g.Undo())
				require.NoError(t, g.Undo())
				playAll(t, g, "d5")
				return g
			},
			expected: "1. e4 e5 (1... d5) 2. Nf3 *",
		},
		{
			name: "GameStringWithVariationsOnRoot",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4")
				require.NoError(t, g.Undo())
				playAll(t, g, "d4")
				return g
			},
			expected: "1. e4 (1. d4) *",
		},
		{
			name: "GameStringResumesBlackAfterVariation",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5")
				require.NoError(t, g.GoTo(g.Root()))
				playAll(t, g, "d4")
				return g
			},
			expected: "1. e4 (1. d4) 1... e5 *",
		},
		{
			name: "GameStringWithTags",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				g.AddTagPair("Site", "Test Site")
				g.AddTagPair("Annotator", "Someone")
				g.AddTagPair("Event", "Test Event")
				return g
			},
			expected: "[Event \"Test Event\"]\n[Site \"Test Site\"]\n[Annotator \"Someone\"]\n\n*",
		},
		{
			name: "GameStringEscapesTagValues",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				g.AddTagPair("Event", `The "Big" One \ 2`)
				return g
			},
			expected: "[Event \"The \\\"Big\\\" One \\\\ 2\"]\n\n*",
		},
		{
			name: "GameStringWithWhiteWinResult",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				g.Resign(Black)
				return g
			},
			expected: "1-0",
		},
		{
			name: "GameStringWithBlackWinResult",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4")
				g.LoseOnTime(White)
				return g
			},
			expected: "1. e4 0-1",
		},
		{
			name: "GameStringWithDrawResult",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				require.NoError(t, g.Draw(DrawByAgreement))
				return g
			},
			expected: "1/2-1/2",
		},
		{
			name: "GameStringWithCheckmate",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "f3", "e5", "g4", "Qh4#")
				return g
			},
			expected: "1. f3 e5 2. g4 Qh4# 0-1",
		},
		{
			name: "GameStringResultComesFromMainLine",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "f3", "e5", "g4")
				playAll(t, g, "Qh4#")
				require.NoError(t, g.Undo())
				playAll(t, g, "d5")
				require.NoError(t, g.PromoteVariation(g.Current()))
				return g
			},
			expected: "1. f3 e5 2. g4 d5 (2... Qh4#) *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.setup(t)
			if g.String() != tt.expected {
				t.Fatalf("\n\tExpected:'%v'\n\tGot:     '%v'\n", tt.expected, g.String())
			}
		})
	}
}

func TestPGNFromPosition(t *testing.T) {
	g := newGameFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 b Q - 0 40")
	playAll(t, g, "Kd7", "O-O-O+")

	expected := "[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/8/R3K3 b Q - 0 40\"]\n\n40... Kd7 41. O-O-O+ *"
	assert.Equal(t, expected, g.PGN())

	// an explicit FEN tag is kept as given
	g.AddTagPair("FEN", "custom")
	assert.Equal(t, "[FEN \"custom\"]\n\n40... Kd7 41. O-O-O+ *", g.PGN())
}

func TestMoveReader(t *testing.T) {
	mr := NewMoveReader(strings.NewReader("1. e4 e5!? 2.Nf3 $1 Nc6 !! 3... a6\n 1-0 4. d4"))
	var got []string
	for {
		tok, err := mr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, tok)
	}
	assert.Equal(t, []string{"e4", "e5!?", "Nf3", "Nc6", "a6"}, got)

	// stays at EOF
	_, err := mr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMoveReaderRejectsNonMovetext(t *testing.T) {
	for _, text := range []string{"1. e4 {comment}", "1. e4 (1. d4)", "[Event \"x\"]", "; rest of line"} {
		mr := NewMoveReader(strings.NewReader(text))
		var err error
		for err == nil {
			_, err = mr.Next()
		}
		assert.ErrorIs(t, err, ErrMalformedMove, text)
	}
}

func TestReadMoves(t *testing.T) {
	g := NewGame()
	n, err := g.ReadMoves(strings.NewReader("1. e4 e5 2. g1f3 Nc6 3. Bb5 a6 *"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}, g.MainLineSAN())
	assert.True(t, g.IsAtEnd())
	assert.Equal(t, "r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4", g.FEN())
}

func TestReadMovesStopsAtBadMove(t *testing.T) {
	g := NewGame()
	n, err := g.ReadMoves(strings.NewReader("1. e4 e5 2. Ke3 Nc6"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSuchMove)
	assert.Contains(t, err.Error(), "move 3")
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"e4", "e5"}, g.MainLineSAN())
}

func TestReadMovesAfterMate(t *testing.T) {
	g := NewGame()
	n, err := g.ReadMoves(strings.NewReader("1. f3 e5 2. g4 Qh4# 3. a3"))
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 4, n)
	assert.Equal(t, Checkmate, g.Method())
}

func TestMarshalText(t *testing.T) {
	g := NewGame()
	playAll(t, g, "d4", "d5", "c4")
	text, err := g.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1. d4 d5 2. c4 *", string(text))

	var other Game
	require.NoError(t, other.UnmarshalText(text))
	assert.Equal(t, g.MainLineSAN(), other.MainLineSAN())
	assert.Equal(t, g.FEN(), other.FEN())
	assert.Equal(t, string(text), other.String())
}

func TestTagOrder(t *testing.T) {
	opt, err := WithVariant(Chess960(0))
	require.NoError(t, err)
	g := NewGame(opt)
	g.AddTagPair("Annotator", "Someone")
	g.AddTagPair("Result", "*")
	g.AddTagPair("Event", "Test")

	expected := "[Event \"Test\"]\n[Result \"*\"]\n[Variant \"Chess960\"]\n[SetUp \"1\"]\n" +
		"[FEN \"bbqnnrkr/pppppppp/8/8/8/8/PPPPPPPP/BBQNNRKR w KQkq - 0 1\"]\n[Annotator \"Someone\"]\n\n*"
	assert.Equal(t, expected, g.PGN())
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Game
	}{
		{
			name: "tags and comments",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				g.AddTagPair("Event", `The "Big" One`)
				g.AddTagPair("White", "Someone")
				g.Root().SetComment("Opening")
				playAll(t, g, "e4", "e5")
				g.Current().SetComment("Solid reply")
				return g
			},
		},
		{
			name: "nested variations",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5", "Nf3")
				require.NoError(t, g.Undo())
				playAll(t, g, "Nc3")
				require.NoError(t, g.Undo())
				playAll(t, g, "d4", "d5", "c4")
				require.NoError(t, g.Undo())
				playAll(t, g, "c3")
				require.NoError(t, g.GoTo(g.Root()))
				playAll(t, g, "d4")
				g.Current().SetComment("Queen pawn")
				return g
			},
		},
		{
			name: "start from position",
			setup: func(t *testing.T) *Game {
				g := newGameFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 b Q - 0 40")
				g.AddTagPair("Event", "Endgame")
				playAll(t, g, "Kd7", "O-O-O+")
				require.NoError(t, g.Undo())
				playAll(t, g, "Ra7+")
				return g
			},
		},
		{
			name: "chess960",
			setup: func(t *testing.T) *Game {
				opt, err := WithVariant(Chess960(0))
				require.NoError(t, err)
				g := NewGame(opt)
				playAll(t, g, "g4", "g5")
				return g
			},
		},
		{
			name: "checkmate in a side line",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "f3", "e5", "g4", "Qh4#")
				require.NoError(t, g.Undo())
				playAll(t, g, "d5")
				require.NoError(t, g.PromoteVariation(g.Current()))
				return g
			},
		},
		{
			name: "checkmate",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "f3", "e5", "g4", "Qh4#")
				return g
			},
		},
		{
			name: "resignation",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4")
				g.Resign(Black)
				return g
			},
		},
		{
			name: "draw by agreement",
			setup: func(t *testing.T) *Game {
				g := NewGame()
				playAll(t, g, "e4", "e5")
				require.NoError(t, g.Draw(DrawByAgreement))
				return g
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.setup(t)
			text, err := g.MarshalText()
			require.NoError(t, err)

			var back Game
			require.NoError(t, back.UnmarshalText(text), string(text))
			assert.Equal(t, string(text), back.String())
			assert.Equal(t, g.Root().Board(), back.Root().Board())
			assert.Equal(t, g.MainLineSAN(), back.MainLineSAN())
			assert.Equal(t, g.Outcome(), back.Outcome())
			assert.True(t, back.IsAtEnd())
			assert.Equal(t, g.TagPairs(), back.TagPairs())
			assert.Equal(t, g.Variant().Castling, back.Variant().Castling)
		})
	}
}

func TestUnmarshalTextResult(t *testing.T) {
	var g Game
	require.NoError(t, g.UnmarshalText([]byte("1. e4 e5 0-1")))
	assert.Equal(t, BlackWon, g.Outcome())
	assert.Equal(t, Resignation, g.Method())

	// the position decides over the result marker
	require.NoError(t, g.UnmarshalText([]byte("1. f3 e5 2. g4 Qh4# 1/2-1/2")))
	assert.Equal(t, Checkmate, g.Method())
	assert.Equal(t, BlackWon, g.Outcome())
}

func TestUnmarshalTextReplacesTree(t *testing.T) {
	g := newGameFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	g.AddTagPair("Event", "Old")
	playAll(t, g, "Ra7")

	require.NoError(t, g.UnmarshalText([]byte("1. d4 d5")))
	assert.Equal(t, []string{"d4", "d5"}, g.MainLineSAN())
	assert.Equal(t, StartingBoard(), g.Root().Board())
	assert.Empty(t, g.TagPairs())
}

func TestUnmarshalTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target error
	}{
		{"illegal move", "1. e4 e5 2. Ke3", ErrNoSuchMove},
		{"bad tag", "[Event Test]\n\n1. e4 *", ErrMalformedMove},
		{"bad fen tag", "[SetUp \"1\"]\n[FEN \"8/8/8 w - - 0 1\"]\n\n*", ErrInvalidFEN},
		{"unclosed variation", "1. e4 (1. d4 *", ErrMalformedMove},
		{"stray parenthesis", "1. e4 ) *", ErrMalformedMove},
		{"variation before any move", "( 1. d4 ) *", ErrMalformedMove},
		{"result inside variation", "1. e4 (1. d4 1-0) *", ErrMalformedMove},
		{"moves after result", "1. e4 * e5", ErrMalformedMove},
		{"move after mate", "1. f3 e5 2. g4 Qh4# 3. a3", ErrGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			playAll(t, g, "c4")
			before := g.String()

			err := g.UnmarshalText([]byte(tt.text))
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, g.String())
		})
	}
}
