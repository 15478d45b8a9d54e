package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFEN is matched by every *FENError.
	ErrInvalidFEN = errors.New("chess: invalid FEN")
	// ErrIllegalMove is matched by every *MoveError.
	ErrIllegalMove = errors.New("chess: illegal move")
	// ErrInvalidPosition is matched by every *InvalidPositionError.
	ErrInvalidPosition = errors.New("chess: invalid position")
	// ErrNoSuchMove is matched by a *PGNError when no legal move fits the token.
	ErrNoSuchMove = errors.New("chess: no such move")
	// ErrAmbiguousMove is matched by a *PGNError when several legal moves fit the token.
	ErrAmbiguousMove = errors.New("chess: ambiguous move")
	// ErrMalformedMove is matched by a *PGNError when the token is not valid notation.
	ErrMalformedMove = errors.New("chess: malformed move")

	// ErrGameOver is returned when a move is played on a finished line.
	ErrGameOver = errors.New("chess: game is over")
	// ErrNoParent is returned when undoing at the root.
	ErrNoParent = errors.New("chess: current node has no parent")
	// ErrNoChild is returned when redoing to a child that does not exist.
	ErrNoChild = errors.New("chess: current node has no such child")
	// ErrNotInTree is returned when a node does not belong to the game.
	ErrNotInTree = errors.New("chess: node is not part of this game")
)

// FENError describes why a FEN string was rejected.
type FENError struct {
	FEN    string
	Field  string
	Reason string
}

func (e *FENError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("chess: invalid FEN %q: %s", e.FEN, e.Reason)
	}
	return fmt.Sprintf("chess: invalid FEN %q: %s: %s", e.FEN, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidFEN) hold.
func (e *FENError) Is(target error) bool {
	return target == ErrInvalidFEN
}

// PGNErrorKind classifies a rejected move token.
type PGNErrorKind uint8

const (
	// NoSuchMove means no legal move matches the token.
	NoSuchMove PGNErrorKind = iota + 1
	// Ambiguous means more than one legal move matches the token.
	Ambiguous
	// Malformed means the token is not readable notation.
	Malformed
)

func (k PGNErrorKind) String() string {
	switch k {
	case NoSuchMove:
		return "no such move"
	case Ambiguous:
		return "ambiguous move"
	case Malformed:
		return "malformed move"
	}
	return "unknown"
}

// PGNError is returned when a move token cannot be resolved
// to exactly one legal move.
type PGNError struct {
	Token string
	Kind  PGNErrorKind
	// Candidates lists the matching moves for Ambiguous errors.
	Candidates []Move
	// Detail is an optional explanation for Malformed tokens.
	Detail string
}

func (e *PGNError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("chess: %s %q", e.Kind, e.Token))
	if e.Detail != "" {
		sb.WriteString(": " + e.Detail)
	}
	if len(e.Candidates) > 0 {
		sb.WriteString(" (candidates:")
		for _, m := range e.Candidates {
			sb.WriteString(" " + m.String())
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// Is maps the error kind to the matching sentinel.
func (e *PGNError) Is(target error) bool {
	switch e.Kind {
	case NoSuchMove:
		return target == ErrNoSuchMove
	case Ambiguous:
		return target == ErrAmbiguousMove
	case Malformed:
		return target == ErrMalformedMove
	}
	return false
}

// MoveError is returned when a move is not legal in a position.
type MoveError struct {
	Move Move
	// FEN is the position the move was tried in.
	FEN    string
	Reason string
}

func (e *MoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("chess: move %s is not legal in %s", e.Move, e.FEN)
	}
	return fmt.Sprintf("chess: move %s is not legal in %s: %s", e.Move, e.FEN, e.Reason)
}

// Is makes errors.Is(err, ErrIllegalMove) hold.
func (e *MoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// InvalidPositionError reports a board that breaks a structural invariant.
// It points at whatever built the board, not at user input.
type InvalidPositionError struct {
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return "chess: invalid position: " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidPosition) hold.
func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}
