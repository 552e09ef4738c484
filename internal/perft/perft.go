// Package perft counts move-tree nodes in parallel, splitting the work by
// root move, with an optional persistent result store.
package perft

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/jmchess/internal/board"
	"github.com/hailam/jmchess/internal/storage"
)

// ErrInvalidDepth is returned for depths below one.
var ErrInvalidDepth = errors.New("depth must be at least 1")

// Result is the outcome of one perft run.
type Result struct {
	FEN     string
	Depth   int
	Nodes   uint64
	Divide  []board.DivideEntry
	Elapsed time.Duration
	Cached  bool // loaded from the store rather than computed
}

// NodesPerSecond returns the search speed, or zero for cached results.
func (r *Result) NodesPerSecond() float64 {
	if r.Cached || r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

// Runner runs perft with a fixed number of workers.
type Runner struct {
	threads int
	store   *storage.Storage
	memo    *memo
}

// Option configures a Runner.
type Option func(*Runner)

// WithThreads sets the worker count. Values below one use GOMAXPROCS.
func WithThreads(n int) Option {
	return func(r *Runner) {
		r.threads = n
	}
}

// WithStore makes the runner load and save results in s.
func WithStore(s *storage.Storage) Option {
	return func(r *Runner) {
		r.store = s
	}
}

// WithHash enables a transposition memo shared by all workers.
func WithHash() Option {
	return func(r *Runner) {
		r.memo = newMemo()
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.threads < 1 {
		r.threads = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run counts the leaf nodes below pos to the given depth. The position is
// not modified.
func (r *Runner) Run(ctx context.Context, pos *board.Position, depth int) (*Result, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	fen := pos.FEN()

	if r.store != nil {
		res, err := r.load(pos, fen, depth)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	start := time.Now()
	moves := pos.GenerateMoves()
	entries := make([]board.DivideEntry, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range moves {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- i:
			}
		}
		return nil
	})

	for i := 0; i < r.threads; i++ {
		g.Go(func() error {
			for idx := range jobs {
				child := pos.Copy()
				child.MakeMove(moves[idx])
				nodes, err := r.count(ctx, child, depth-1)
				if err != nil {
					return err
				}
				entries[idx] = board.DivideEntry{Move: moves[idx], Nodes: nodes}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		FEN:     fen,
		Depth:   depth,
		Divide:  entries,
		Elapsed: time.Since(start),
	}
	for _, e := range entries {
		res.Nodes += e.Nodes
	}

	if r.store != nil {
		if err := r.save(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// count is board.Perft with cancellation and the optional memo.
func (r *Runner) count(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth <= 1 {
		return board.Perft(pos, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var key uint64
	if r.memo != nil {
		key = pos.Hash()
		if nodes, ok := r.memo.get(key, depth); ok {
			return nodes, nil
		}
	}

	var nodes uint64
	for _, m := range pos.GenerateMoves() {
		child := pos.Copy()
		child.MakeMove(m)
		n, err := r.count(ctx, child, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if r.memo != nil {
		r.memo.put(key, depth, nodes)
	}
	return nodes, nil
}

func (r *Runner) load(pos *board.Position, fen string, depth int) (*Result, error) {
	stored, err := r.store.LoadPerft(fen, depth)
	if err != nil {
		return nil, err
	}

	res := &Result{
		FEN:     fen,
		Depth:   depth,
		Nodes:   stored.Nodes,
		Elapsed: stored.Elapsed,
		Cached:  true,
	}
	for _, d := range stored.Divide {
		m, err := pos.ParseMove(d.Move)
		if err != nil {
			return nil, fmt.Errorf("stored perft for %s: %w", fen, err)
		}
		res.Divide = append(res.Divide, board.DivideEntry{Move: m, Nodes: d.Nodes})
	}
	return res, nil
}

func (r *Runner) save(res *Result) error {
	stored := &storage.PerftResult{
		FEN:     res.FEN,
		Depth:   res.Depth,
		Nodes:   res.Nodes,
		Elapsed: res.Elapsed,
	}
	for _, e := range res.Divide {
		stored.Divide = append(stored.Divide, storage.DivideRecord{Move: e.Move.String(), Nodes: e.Nodes})
	}
	return r.store.SavePerft(stored)
}

type memoKey struct {
	hash  uint64
	depth int
}

// memo is a transposition table keyed by position hash and remaining depth.
type memo struct {
	mu      sync.RWMutex
	entries map[memoKey]uint64
}

func newMemo() *memo {
	return &memo{entries: make(map[memoKey]uint64)}
}

func (m *memo) get(hash uint64, depth int) (uint64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	nodes, ok := m.entries[memoKey{hash, depth}]
	return nodes, ok
}

func (m *memo) put(hash uint64, depth int, nodes uint64) {
	m.mu.Lock()
	m.entries[memoKey{hash, depth}] = nodes
	m.mu.Unlock()
}

// MemoLen returns the number of memoised positions.
func (r *Runner) MemoLen() int {
	if r.memo == nil {
		return 0
	}
	r.memo.mu.RLock()
	defer r.memo.mu.RUnlock()
	return len(r.memo.entries)
}
