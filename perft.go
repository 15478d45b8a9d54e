package chess

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree of b at the given
// depth. Depth 0 counts b itself.
func Perft(b Board, depth int) (uint64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("chess: negative perft depth %d", depth)
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return perft(b, depth), nil
}

func perft(b Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.legalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += perft(b.play(m), depth-1)
	}
	return nodes
}

// Divide runs perft below each legal move of b, keyed by the move in
// coordinate notation. Root moves are counted concurrently; cancelling
// ctx stops the moves not yet started.
func Divide(ctx context.Context, b Board, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, fmt.Errorf("chess: divide needs depth 1 or more, got %d", depth)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = make(map[string]uint64)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, m := range b.legalMoves() {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nodes := perft(b.play(m), depth-1)
			mu.Lock()
			result[m.String()] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
