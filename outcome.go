package chess

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the way a game reached its status.
type Method uint8

const (
	// InProgress indicates that the game has not ended.
	InProgress Method = iota
	// Checkmate indicates that the side to move is mated.
	Checkmate
	// Stalemate indicates that the side to move has no legal move and is not in check.
	Stalemate
	// DrawByFiftyMove indicates a half move clock of one hundred or more.
	DrawByFiftyMove
	// DrawByInsufficientMaterial indicates that neither side can mate.
	DrawByInsufficientMaterial
	// DrawByRepetition indicates the same position three times in the line.
	DrawByRepetition
	// Resignation indicates that a player resigned.
	Resignation
	// DrawByAgreement indicates that the players agreed to a draw.
	DrawByAgreement
	// LostOnTime indicates that a player ran out of time.
	LostOnTime
)

var methodNames = [...]string{
	InProgress:                 "InProgress",
	Checkmate:                  "Checkmate",
	Stalemate:                  "Stalemate",
	DrawByFiftyMove:            "DrawByFiftyMove",
	DrawByInsufficientMaterial: "DrawByInsufficientMaterial",
	DrawByRepetition:           "DrawByRepetition",
	Resignation:                "Resignation",
	DrawByAgreement:            "DrawByAgreement",
	LostOnTime:                 "LostOnTime",
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return "Unknown"
}

// Status is a method plus the winner, NoColor for draws and games in progress.
type Status struct {
	Method Method
	Winner Color
}

// IsOver reports whether the status is terminal.
func (s Status) IsOver() bool {
	return s.Method != InProgress
}

// Outcome maps the status to a PGN result.
func (s Status) Outcome() Outcome {
	switch {
	case !s.IsOver():
		return NoOutcome
	case s.Winner == White:
		return WhiteWon
	case s.Winner == Black:
		return BlackWon
	}
	return Draw
}

func (s Status) String() string {
	if s.Winner == NoColor {
		return s.Method.String()
	}
	return s.Method.String() + "(" + s.Winner.Name() + ")"
}

const (
	halfMoveClockForFiftyMoveRule  = 100
	numOfRepetitionsForRepetition = 3
)

// evaluate classifies the position at n. The checks run in a fixed
// order: no legal moves, fifty moves, insufficient material, repetition.
func (g *Game) evaluate(n *Node) Status {
	b := n.board
	if !b.hasLegalMoves() {
		if InCheck(b) {
			return Status{Method: Checkmate, Winner: b.turn.Other()}
		}
		return Status{Method: Stalemate}
	}
	if !g.ignoreFiftyMoveRuleDraw && b.halfMoveClock >= halfMoveClockForFiftyMoveRule {
		return Status{Method: DrawByFiftyMove}
	}
	if !g.ignoreInsufficientMaterialDraw && InsufficientMaterial(b) {
		return Status{Method: DrawByInsufficientMaterial}
	}
	if !g.ignoreRepetitionDraw && numOfRepetitions(n) >= numOfRepetitionsForRepetition {
		return Status{Method: DrawByRepetition}
	}
	return Status{}
}

// numOfRepetitions counts how often n's position occurs on the path from
// the root to n, n included.
func numOfRepetitions(n *Node) int {
	key := n.board.key()
	count := 0
	for cur := n; cur != nil; cur = cur.parent {
		if cur.board.key() == key {
			count++
		}
	}
	return count
}

// InsufficientMaterial reports whether neither side has mating material:
// bare kings, a single minor piece, or only bishops that all stand on
// squares of one color.
func InsufficientMaterial(b Board) bool {
	minors := 0
	knights := 0
	var bishopOnLight, bishopOnDark bool
	for sq := A1; sq <= H8; sq++ {
		switch b.squares[sq].Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minors++
			knights++
		case Bishop:
			minors++
			if sq.isLight() {
				bishopOnLight = true
			} else {
				bishopOnDark = true
			}
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && !(bishopOnLight && bishopOnDark)
}
