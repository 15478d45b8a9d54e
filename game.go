/*
Package chess implements the rules of chess for host applications: board
representation, legal move generation, FEN and SAN, and a branching game
tree with undo and redo.

A Game keeps every line that has been played. Playing a move where a
continuation already exists adds a variation instead of replacing it, and
undo and redo only move the cursor, so nothing is lost until a variation
is removed explicitly.
Example usage:

	// Create new game
	game := chess.NewGame()

	// Make moves
	game.PlaySAN("e4")
	game.PlaySAN("e5")

	// Step back and try another line
	game.Undo()
	game.PlaySAN("c5")

	// Check game status
	if game.Status().IsOver() {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}

Boards are values and safe for concurrent readers. A Game is not: callers
sharing one must serialize every call that moves the cursor or changes the
tree.
*/
package chess

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game represents a single chess game and all of its lines.
type Game struct {
	root                           *Node    // Root of the tree, the starting position
	current                        *Node    // Cursor
	variant                        Variant  // Rules the game was started with
	tagPairs                       TagPairs // PGN tag pairs
	ignoreRepetitionDraw           bool     // Flag for automatic repetition draw handling
	ignoreFiftyMoveRuleDraw        bool     // Flag for automatic fifty move draw handling
	ignoreInsufficientMaterialDraw bool     // Flag for automatic insufficient material draw handling
}

// FEN takes a string and returns a function that starts the game from
// that position. Since FEN doesn't encode prior moves, the tree holds only
// the root. The returned function is designed to be used in the NewGame
// constructor. An error is returned if there is a problem parsing the FEN.
func FEN(fen string) (func(*Game), error) {
	v := FromPosition(fen)
	b, err := v.Board()
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.variant = v
		g.root.board = b
	}, nil
}

// WithVariant returns a Game option that starts the game from the
// variant's initial board. An error is returned if the variant's layout
// is invalid.
func WithVariant(v Variant) (func(*Game), error) {
	b, err := v.Board()
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.variant = v
		g.root.board = b
	}, nil
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	opt, err := FEN("8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
//	game := NewGame(opt)
func NewGame(options ...func(*Game)) *Game {
	root := &Node{board: StartingBoard()}
	game := &Game{
		root:     root,
		current:  root,
		variant:  Standard(),
		tagPairs: make(TagPairs),
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	root.status = game.evaluate(root)
	return game
}

// Variant returns the rules the game was started with.
func (g *Game) Variant() Variant {
	return g.variant
}

// Root returns the node holding the starting position.
func (g *Game) Root() *Node {
	return g.root
}

// Current returns the node under the cursor.
func (g *Game) Current() *Node {
	return g.current
}

// Board returns the position under the cursor.
func (g *Game) Board() Board {
	return g.current.board
}

// FEN returns the FEN notation of the current position.
func (g *Game) FEN() string {
	return g.current.board.String()
}

// LegalMoves returns all legal moves in the current position.
func (g *Game) LegalMoves() []Move {
	return g.current.board.legalMoves()
}

// Status returns the status at the cursor.
func (g *Game) Status() Status {
	return g.current.status
}

// Outcome returns the game outcome at the cursor.
func (g *Game) Outcome() Outcome {
	return g.current.status.Outcome()
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.current.status.Method
}

// PlayMove plays m from the cursor and advances the cursor to the new
// node. If the cursor already has children the move becomes a new
// variation after them; if one of them is the same move the cursor moves
// there instead of duplicating it. Any tags on m are ignored.
//
// It returns ErrGameOver when the cursor is on a finished position and a
// *MoveError when m is not legal.
func (g *Game) PlayMove(m Move) error {
	if g.current.status.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.current.status)
	}
	legal, err := g.current.board.findLegal(m)
	if err != nil {
		return err
	}

	if existing := g.findExistingMove(legal); existing != nil {
		g.current = existing
		return nil
	}

	parent := g.current
	node := &Node{
		board:  parent.board.play(legal),
		move:   legal,
		san:    parent.board.san(legal),
		parent: parent,
	}
	parent.children = append(parent.children, node)
	node.status = g.evaluate(node)
	g.current = node
	return nil
}

// PlaySAN decodes an algebraic token in the current position and plays it.
func (g *Game) PlaySAN(token string) error {
	return g.PushNotationMove(token, AlgebraicNotation{})
}

// PlayUCI decodes a coordinate token such as e2e4 or e7e8q and plays it.
func (g *Game) PlayUCI(token string) error {
	return g.PushNotationMove(token, UCINotation{})
}

// PushNotationMove adds a move to the game using any supported notation.
//
// Example:
//
//	err := game.PushNotationMove("e4", chess.AlgebraicNotation{})
//	err = game.PushNotationMove("c7c5", chess.UCINotation{})
func (g *Game) PushNotationMove(moveStr string, notation Notation) error {
	if g.current.status.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.current.status)
	}
	move, err := notation.Decode(g.current.board, moveStr)
	if err != nil {
		return err
	}
	return g.PlayMove(move)
}

func (g *Game) findExistingMove(move Move) *Node {
	for _, child := range g.current.children {
		if child.move.sameAs(move) {
			return child
		}
	}
	return nil
}

// Undo moves the cursor to its parent. It returns ErrNoParent at the root.
func (g *Game) Undo() error {
	if g.current.parent == nil {
		return ErrNoParent
	}
	g.current = g.current.parent
	return nil
}

// Redo moves the cursor along the main line. It returns ErrNoChild at
// the end of a line.
func (g *Game) Redo() error {
	return g.RedoVariation(0)
}

// RedoVariation moves the cursor to child i of the current node, 0 being
// the main line.
func (g *Game) RedoVariation(i int) error {
	if i < 0 || i >= len(g.current.children) {
		return fmt.Errorf("%w: index %d of %d", ErrNoChild, i, len(g.current.children))
	}
	g.current = g.current.children[i]
	return nil
}

// GoTo moves the cursor to n, which must belong to this game.
func (g *Game) GoTo(n *Node) error {
	if n == nil || n.root() != g.root {
		return ErrNotInTree
	}
	g.current = n
	return nil
}

// IsAtStart returns true if the cursor is at the root.
func (g *Game) IsAtStart() bool {
	return g.current == g.root
}

// IsAtEnd returns true if the cursor has no continuation.
func (g *Game) IsAtEnd() bool {
	return len(g.current.children) == 0
}

// NavigateToMainLine moves the cursor up to the nearest node on the main line.
func (g *Game) NavigateToMainLine() {
	for !g.current.IsMainLine() {
		g.current = g.current.parent
	}
}

// PromoteVariation makes n the first child of its parent, and so the main
// line from there. The order of the other siblings is kept.
func (g *Game) PromoteVariation(n *Node) error {
	if n == nil || n.root() != g.root {
		return ErrNotInTree
	}
	if n.parent == nil {
		return ErrNoParent
	}
	children := n.parent.children
	i := n.childIndex()
	copy(children[1:i+1], children[:i])
	children[0] = n
	return nil
}

// RemoveVariation deletes n and everything after it. If the cursor was
// inside the removed subtree it moves to n's parent.
func (g *Game) RemoveVariation(n *Node) error {
	if n == nil || n.root() != g.root {
		return ErrNotInTree
	}
	if n.parent == nil {
		return ErrNoParent
	}
	parent := n.parent
	i := n.childIndex()
	parent.children = append(parent.children[:i], parent.children[i+1:]...)
	if n.isAncestorOf(g.current) {
		g.current = parent
	}
	n.parent = nil
	return nil
}

// Variations returns all alternative moves at the given node, that is
// every child except the main line.
func (g *Game) Variations(n *Node) []*Node {
	if n == nil || len(n.children) <= 1 {
		return nil
	}
	return append([]*Node(nil), n.children[1:]...)
}

// MainLine returns the nodes of the main line after the root.
func (g *Game) MainLine() []*Node {
	var nodes []*Node
	for cur := g.root; len(cur.children) > 0; {
		cur = cur.children[0]
		nodes = append(nodes, cur)
	}
	return nodes
}

// Line returns the nodes from the root to the cursor, the root included.
func (g *Game) Line() []*Node {
	var nodes []*Node
	for cur := g.current; cur != nil; cur = cur.parent {
		nodes = append(nodes, cur)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// Positions returns the boards from the root to the cursor.
func (g *Game) Positions() []Board {
	line := g.Line()
	boards := make([]Board, len(line))
	for i, n := range line {
		boards[i] = n.board
	}
	return boards
}

// Draw claims a draw at the cursor by the given method. DrawByAgreement
// is always accepted; DrawByRepetition and DrawByFiftyMove are accepted
// when the position qualifies, which matters when the automatic draw was
// turned off with an option.
func (g *Game) Draw(method Method) error {
	if g.current.status.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.current.status)
	}
	switch method {
	case DrawByRepetition:
		if numOfRepetitions(g.current) < numOfRepetitionsForRepetition {
			return fmt.Errorf("chess: draw by repetition requires at least three repetitions of the current position")
		}
	case DrawByFiftyMove:
		if g.current.board.halfMoveClock < halfMoveClockForFiftyMoveRule {
			return fmt.Errorf("chess: draw by fifty move rule requires a half move clock of 100 or greater")
		}
	case DrawByAgreement:
	default:
		return fmt.Errorf("chess: invalid draw method %s", method)
	}
	g.current.status = Status{Method: method}
	return nil
}

// EligibleDraws returns valid inputs for the Draw() method.
func (g *Game) EligibleDraws() []Method {
	if g.current.status.IsOver() {
		return nil
	}
	draws := []Method{DrawByAgreement}
	if numOfRepetitions(g.current) >= numOfRepetitionsForRepetition {
		draws = append(draws, DrawByRepetition)
	}
	if g.current.board.halfMoveClock >= halfMoveClockForFiftyMoveRule {
		draws = append(draws, DrawByFiftyMove)
	}
	return draws
}

// Resign resigns the game for the given color. If the game has
// already been completed then the game is not updated.
func (g *Game) Resign(color Color) {
	g.declareLoss(color, Resignation)
}

// LoseOnTime records that color ran out of time.
func (g *Game) LoseOnTime(color Color) {
	g.declareLoss(color, LostOnTime)
}

func (g *Game) declareLoss(color Color, method Method) {
	if g.current.status.IsOver() || color == NoColor {
		return
	}
	g.current.status = Status{Method: method, Winner: color.Other()}
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the tag pair for the given key or nil
// if it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns a copy of the tag pairs in key value format.
func (g *Game) TagPairs() TagPairs {
	return maps.Clone(g.tagPairs)
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// Clone returns a deep copy of the game. The cursor of the copy points at
// the node matching the original cursor.
func (g *Game) Clone() *Game {
	ret := &Game{
		variant:                        g.variant,
		tagPairs:                       maps.Clone(g.tagPairs),
		ignoreRepetitionDraw:           g.ignoreRepetitionDraw,
		ignoreFiftyMoveRuleDraw:        g.ignoreFiftyMoveRuleDraw,
		ignoreInsufficientMaterialDraw: g.ignoreInsufficientMaterialDraw,
	}
	if ret.tagPairs == nil {
		ret.tagPairs = make(TagPairs)
	}
	ret.root = g.root.clone(nil)

	// replay the cursor's child indexes in the copy
	var path []int
	for cur := g.current; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.childIndex())
	}
	ret.current = ret.root
	for i := len(path) - 1; i >= 0; i-- {
		ret.current = ret.current.children[path[i]]
	}
	return ret
}

// Split takes a Game with a main line and 0 or more variations and returns a
// slice of Games (one for each line), each containing exactly one line and
// no variations. The cursor of each game is at the end of its line.
func (g *Game) Split() []*Game {
	var paths [][]*Node
	for _, n := range g.root.children {
		paths = append(paths, collectPaths(n)...)
	}

	games := make([]*Game, 0, len(paths))
	for _, path := range paths {
		games = append(games, g.buildOneGameFromPath(path))
	}
	return games
}

func (g *Game) buildOneGameFromPath(path []*Node) *Game {
	root := &Node{board: g.root.board, status: g.root.status, comment: g.root.comment}
	cur := root
	for _, n := range path {
		child := &Node{
			board:   n.board,
			move:    n.move,
			san:     n.san,
			parent:  cur,
			status:  n.status,
			comment: n.comment,
		}
		cur.children = []*Node{child}
		cur = child
	}

	newG := g.Clone()
	newG.root = root
	newG.current = cur
	return newG
}

// IgnoreRepetitionDraw returns a Game option that disables automatic draws
// caused by threefold repetition. Draw(DrawByRepetition) can still claim it.
func IgnoreRepetitionDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreRepetitionDraw = true
	}
}

// IgnoreFiftyMoveRuleDraw returns a Game option that disables automatic draws
// triggered by the fifty move rule. Draw(DrawByFiftyMove) can still claim it.
func IgnoreFiftyMoveRuleDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreFiftyMoveRuleDraw = true
	}
}

// IgnoreInsufficientMaterialDraw returns a Game option that disables automatic draws
// caused by insufficient material. When applied, the game will not automatically
// end in a draw even if checkmate is impossible with the remaining pieces.
func IgnoreInsufficientMaterialDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreInsufficientMaterialDraw = true
	}
}
