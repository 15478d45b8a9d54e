package chess

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

// String implements the fmt.Stringer interface and returns
// the game's PGN.
func (g *Game) String() string {
	return g.PGN()
}

// PGN exports the whole tree: tag pairs, the main line with every
// variation in parentheses, comments, and the result. The result is the
// status at the end of the main line.
func (g *Game) PGN() string {
	var sb strings.Builder

	tags := g.exportTags()
	for _, tagPair := range tags {
		sb.WriteString(fmt.Sprintf("[%s \"%s\"]\n", tagPair.Key, escapeTagValue(tagPair.Value)))
	}
	// Append empty line after tag pairs as per definition
	if len(tags) > 0 {
		sb.WriteString("\n")
	}

	var tokens []string
	if g.root.comment != "" {
		tokens = append(tokens, "{"+g.root.comment+"}")
	}
	tokens = append(tokens, writeMoves(g.root, true)...)
	tokens = append(tokens, g.mainLineEnd().status.Outcome().String())
	sb.WriteString(strings.Join(tokens, " "))
	return sb.String()
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's PGN.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// reads back what MarshalText writes: tag pairs, the move tree with
// comments and variations, and the result. A FEN tag sets the starting
// position and a Variant "Chess960" tag the castling rule. A result the
// moves do not explain is read as a resignation or a draw by agreement.
// On error g is left unchanged.
func (g *Game) UnmarshalText(text []byte) error {
	tags, movetext, err := readTagSection(string(text))
	if err != nil {
		return err
	}

	variant := Standard()
	if fen, ok := tags["FEN"]; ok {
		variant = FromPosition(fen)
	}
	if strings.EqualFold(tags["Variant"], "Chess960") {
		variant.Name = "Chess960"
		variant.Castling = Chess960Castling
	}
	start, err := variant.Board()
	if err != nil {
		return err
	}
	for _, derived := range []string{"FEN", "SetUp", "Variant"} {
		delete(tags, derived)
	}

	ng := &Game{
		variant:                        variant,
		tagPairs:                       tags,
		ignoreRepetitionDraw:           g.ignoreRepetitionDraw,
		ignoreFiftyMoveRuleDraw:        g.ignoreFiftyMoveRuleDraw,
		ignoreInsufficientMaterialDraw: g.ignoreInsufficientMaterialDraw,
	}
	ng.root = &Node{board: start}
	ng.root.status = ng.evaluate(ng.root)
	ng.current = ng.root
	if err := ng.readTree(movetext); err != nil {
		return err
	}
	ng.current = ng.mainLineEnd()
	*g = *ng
	return nil
}

var tagPairPattern = regexp.MustCompile(`^\[([A-Za-z0-9_]+)\s+"((?:[^"\\]|\\.)*)"\]$`)

var tagUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// readTagSection splits text into its tag pairs and the movetext after them.
func readTagSection(text string) (TagPairs, string, error) {
	tags := make(TagPairs)
	rest := text
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if !strings.HasPrefix(rest, "[") {
			return tags, rest, nil
		}
		line, after, _ := strings.Cut(rest, "\n")
		line = strings.TrimSpace(line)
		m := tagPairPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, "", &PGNError{Token: line, Kind: Malformed, Detail: "not a tag pair"}
		}
		tags[m[1]] = tagUnescaper.Replace(m[2])
		rest = after
	}
}

// readTree plays the movetext into g starting at its root. A variation
// replaces the move right before it, so "(" steps back to that move's
// parent and ")" returns to where the variation began.
func (g *Game) readTree(movetext string) error {
	var (
		stack  []*Node
		result Outcome
	)
	n := 0
	for _, tok := range movetextTokens(movetext) {
		if result != "" {
			return &PGNError{Token: tok, Kind: Malformed, Detail: "text after the result"}
		}
		switch {
		case strings.HasPrefix(tok, "{"):
			g.current.comment = strings.TrimSpace(strings.TrimSuffix(tok[1:], "}"))
			continue
		case tok == "(":
			if g.current.parent == nil {
				return &PGNError{Token: tok, Kind: Malformed, Detail: "variation without a move to replace"}
			}
			stack = append(stack, g.current)
			g.current = g.current.parent
			continue
		case tok == ")":
			if len(stack) == 0 {
				return &PGNError{Token: tok, Kind: Malformed, Detail: "unbalanced parenthesis"}
			}
			g.current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		tok = stripMoveNumber(tok)
		switch {
		case tok == "" || tok[0] == '$' || strings.Trim(tok, "!?") == "":
			continue
		case isResultToken(tok):
			if len(stack) > 0 {
				return &PGNError{Token: tok, Kind: Malformed, Detail: "result inside a variation"}
			}
			result = Outcome(tok)
			continue
		}

		var notation Notation = AlgebraicNotation{}
		if isCoordinateMoveToken(tok) {
			notation = UCINotation{}
		}
		if err := g.PushNotationMove(tok, notation); err != nil {
			return fmt.Errorf("chess: move %d: %w", n+1, err)
		}
		n++
	}
	if len(stack) > 0 {
		return &PGNError{Token: "(", Kind: Malformed, Detail: "unbalanced parenthesis"}
	}

	end := g.mainLineEnd()
	if end.status.IsOver() {
		return nil
	}
	switch result {
	case WhiteWon:
		end.status = Status{Method: Resignation, Winner: White}
	case BlackWon:
		end.status = Status{Method: Resignation, Winner: Black}
	case Draw:
		end.status = Status{Method: DrawByAgreement}
	}
	return nil
}

// movetextTokens splits movetext into comments, parentheses and words.
func movetextTokens(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				tokens = append(tokens, s[i:])
				return tokens
			}
			tokens = append(tokens, s[i:i+end+1])
			i += end + 1
		case c == '(' || c == ')':
			tokens = append(tokens, s[i:i+1])
			i++
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\r\n(){", rune(s[j])) {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		}
	}
	return tokens
}

// MainLineSAN returns the algebraic notation of every main line move.
func (g *Game) MainLineSAN() []string {
	line := g.MainLine()
	out := make([]string, len(line))
	for i, n := range line {
		out[i] = n.san
	}
	return out
}

func (g *Game) mainLineEnd() *Node {
	cur := g.root
	for len(cur.children) > 0 {
		cur = cur.children[0]
	}
	return cur
}

// sortableTagPair is its own
type sortableTagPair struct {
	Key   string
	Value string
}

// exportTags lists the tag pairs in export order, adding SetUp and FEN
// when the game does not start from the standard position and Variant
// for Chess960 games.
func (g *Game) exportTags() []sortableTagPair {
	tags := make([]sortableTagPair, 0, len(g.tagPairs)+2)
	for tag, value := range g.tagPairs {
		tags = append(tags, sortableTagPair{Key: tag, Value: value})
	}
	if g.variant.Castling == Chess960Castling {
		if _, ok := g.tagPairs["Variant"]; !ok {
			tags = append(tags, sortableTagPair{Key: "Variant", Value: "Chess960"})
		}
	}
	if g.root.board != StartingBoard() {
		if _, ok := g.tagPairs["FEN"]; !ok {
			tags = append(tags,
				sortableTagPair{Key: "SetUp", Value: "1"},
				sortableTagPair{Key: "FEN", Value: g.root.board.String()},
			)
		}
	}
	slices.SortFunc(tags, cmpTags)
	return tags
}

// Compares two tags to determine in which order they should be brought up
func cmpTags(a, b sortableTagPair) int {
	// Don't re-order duplicate keys
	if a.Key == b.Key {
		return 0
	}

	// PGN defined tags take priority
	for _, req := range []string{
		"Event",
		"Site",
		"Date",
		"Round",
		"White",
		"Black",
		"Result",
		"Variant",
		"SetUp",
		"FEN",
	} {
		if a.Key == req {
			return -1
		}
		if b.Key == req {
			return +1
		}
	}

	// Finally compare the keys directly and sort by ascending
	return strings.Compare(a.Key, b.Key)
}

func escapeTagValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// writeMoves returns the movetext tokens following node: the main line
// first, each alternative wrapped in parentheses right after the move it
// replaces. A black move gets an explicit "N..." number at the start of a
// line and after a variation closes.
func writeMoves(node *Node, forceNumber bool) []string {
	var tokens []string
	for len(node.children) > 0 {
		main := node.children[0]
		tokens = append(tokens, writeMove(node, main, forceNumber)...)
		forceNumber = false

		for _, variation := range node.children[1:] {
			sub := writeMove(node, variation, true)
			sub = append(sub, writeMoves(variation, false)...)
			sub[0] = "(" + sub[0]
			sub[len(sub)-1] += ")"
			tokens = append(tokens, sub...)
			forceNumber = true
		}
		node = main
	}
	return tokens
}

func writeMove(parent, n *Node, forceNumber bool) []string {
	var tokens []string
	b := parent.board
	if b.turn == White {
		tokens = append(tokens, fmt.Sprintf("%d.", b.fullMoveNumber))
	} else if forceNumber {
		tokens = append(tokens, fmt.Sprintf("%d...", b.fullMoveNumber))
	}
	tokens = append(tokens, n.san)
	if n.comment != "" {
		tokens = append(tokens, "{"+n.comment+"}")
	}
	return tokens
}

// A MoveReader reads movetext one move token at a time. Move numbers,
// NAGs, annotation glyphs and result markers are skipped. Tag pairs,
// comments and variations are not supported and yield a *PGNError.
type MoveReader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewMoveReader returns a MoveReader reading from r.
func NewMoveReader(r io.Reader) *MoveReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &MoveReader{scanner: scanner}
}

// Next returns the next move token. It returns io.EOF after the last move
// or a result marker.
func (mr *MoveReader) Next() (string, error) {
	for !mr.done && mr.scanner.Scan() {
		tok := stripMoveNumber(mr.scanner.Text())
		switch {
		case tok == "":
			continue
		case isResultToken(tok):
			mr.done = true
			return "", io.EOF
		case tok[0] == '$' || strings.Trim(tok, "!?") == "":
			continue
		case strings.ContainsAny(tok[:1], "[]{}();%"):
			return "", &PGNError{Token: tok, Kind: Malformed, Detail: "only movetext is supported"}
		}
		return tok, nil
	}
	if err := mr.scanner.Err(); err != nil {
		return "", err
	}
	mr.done = true
	return "", io.EOF
}

// stripMoveNumber drops a leading "12." or "12..." from tok.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == len(tok) || tok[i] != '.' {
		return tok
	}
	return strings.TrimLeft(tok[i:], ".")
}

func isResultToken(tok string) bool {
	switch Outcome(tok) {
	case NoOutcome, WhiteWon, BlackWon, Draw:
		return true
	}
	return false
}

// ReadMoves plays every move read from r, starting at the cursor. Tokens
// in coordinate notation (e2e4) are accepted next to algebraic ones. It
// returns the number of moves played; on error the moves before the
// failing one stay in the tree.
func (g *Game) ReadMoves(r io.Reader) (int, error) {
	mr := NewMoveReader(r)
	n := 0
	for {
		tok, err := mr.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		var notation Notation = AlgebraicNotation{}
		if isCoordinateMoveToken(tok) {
			notation = UCINotation{}
		}
		if err := g.PushNotationMove(tok, notation); err != nil {
			return n, fmt.Errorf("chess: move %d: %w", n+1, err)
		}
		n++
	}
}
