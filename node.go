package chess

// A Node is one position in a game tree. Every node except the root
// records the move that produced it from its parent. The first child is
// the main line, further children are variations.
type Node struct {
	board    Board
	move     Move
	san      string
	parent   *Node
	children []*Node
	status   Status
	comment  string
}

// Board returns the position at this node.
func (n *Node) Board() Board {
	return n.board
}

// Move returns the move that led to this node. ok is false at the root.
func (n *Node) Move() (m Move, ok bool) {
	if n.parent == nil {
		return Move{}, false
	}
	return n.move, true
}

// SAN returns the algebraic notation of the move that led to this node,
// empty at the root.
func (n *Node) SAN() string {
	return n.san
}

// Parent returns the parent node, nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the continuations from this node, main line first.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Status returns the game status at this node.
func (n *Node) Status() Status {
	return n.status
}

// Comment returns the comment attached to this node.
func (n *Node) Comment() string {
	return n.comment
}

// SetComment attaches a comment, written into PGN output after the move.
func (n *Node) SetComment(c string) {
	n.comment = c
}

// Ply returns the number of moves from the root to this node.
func (n *Node) Ply() int {
	ply := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		ply++
	}
	return ply
}

// IsMainLine reports whether every step from the root to n takes the
// first child.
func (n *Node) IsMainLine() bool {
	for cur := n; cur.parent != nil; cur = cur.parent {
		if cur.parent.children[0] != cur {
			return false
		}
	}
	return true
}

// childIndex returns n's position among its siblings, -1 at the root.
func (n *Node) childIndex() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// root walks up to the top of n's tree.
func (n *Node) root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// isAncestorOf reports whether n is other or one of other's ancestors.
func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// clone deep copies n and its subtree under parent.
func (n *Node) clone(parent *Node) *Node {
	c := &Node{
		board:   n.board,
		move:    n.move,
		san:     n.san,
		parent:  parent,
		status:  n.status,
		comment: n.comment,
	}
	c.children = make([]*Node, len(n.children))
	for i, child := range n.children {
		c.children[i] = child.clone(c)
	}
	return c
}

// collectPaths returns all paths from the given node to each leaf.
// Each path starts with the given node and ends with a leaf.
func collectPaths(node *Node) [][]*Node {
	if node == nil {
		return nil
	}
	if len(node.children) == 0 {
		return [][]*Node{{node}}
	}
	var paths [][]*Node
	for _, c := range node.children {
		for _, p := range collectPaths(c) {
			path := append([]*Node{node}, p...)
			paths = append(paths, path)
		}
	}
	return paths
}
