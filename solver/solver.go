// Package solver decides whether a patience deal can be won, by trying
// every sequence of moves depth-first until one wins or all are exhausted.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/zobrist"
)

// DefaultTTableMemFraction is the share of system memory the transposition
// table gets when it is enabled.
const DefaultTTableMemFraction = 0.05

var errSolved = errors.New("solved")

type Solver struct {
	board   *board.Board
	zobrist *zobrist.Zobrist

	// drawSkipOptim: after a draw that exposes an unplayable waste card,
	// only try drawing again.
	drawSkipOptim           bool
	transpositionTableOptim bool
	ttMemFraction           float64
	ttable                  *TranspositionTable

	threads int
	tracker ScoreTracker
	nodes   atomic.Uint64

	solutionMu sync.Mutex
	solution   Line
	solved     bool

	logStream io.Writer
}

// Init initializes the solver for the position b.
func (s *Solver) Init(b *board.Board) error {
	if b == nil {
		return errors.New("no board to solve")
	}
	s.board = b
	s.drawSkipOptim = true
	s.transpositionTableOptim = false
	s.ttMemFraction = DefaultTTableMemFraction
	s.threads = 1
	s.ttable = GlobalTranspositionTable
	s.tracker.Reset()
	s.nodes.Store(0)
	s.solution.Clear()
	s.solved = false
	return nil
}

func (s *Solver) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	s.threads = threads
}

func (s *Solver) SetDrawSkipOptim(skip bool) {
	s.drawSkipOptim = skip
}

func (s *Solver) SetTranspositionOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetTranspositionTable(tt *TranspositionTable) {
	s.ttable = tt
}

func (s *Solver) SetTTableMemFraction(f float64) {
	s.ttMemFraction = f
}

// SetLogStream makes the solver write every node it visits to w. It is
// ignored when solving with more than one thread.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) Board() *board.Board {
	return s.board
}

// BestScore is the most cards seen on the foundations in any position the
// last search visited.
func (s *Solver) BestScore() int {
	return s.tracker.Best()
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solution is the winning line found by the last search, if any.
func (s *Solver) Solution() []board.Move {
	s.solutionMu.Lock()
	defer s.solutionMu.Unlock()
	return s.solution.Moves
}

func (s *Solver) setSolution(first board.Move, rest Line) {
	s.solutionMu.Lock()
	defer s.solutionMu.Unlock()
	if s.solved {
		return
	}
	s.solved = true
	s.solution.Update(first, rest)
}

// solve searches b depth-first, tracing the tree to w if it is not nil.
func (s *Solver) solve(ctx context.Context, w io.Writer, b *board.Board, depth int, drawn bool, line *Line) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	s.nodes.Add(1)
	if b.Win() {
		s.tracker.Record(board.NumCards)
		return true, nil
	}
	s.tracker.Record(b.Scored())

	var key uint64
	if s.transpositionTableOptim {
		key = s.zobrist.Hash(b, drawn)
		if s.ttable.failed(key) {
			return false, nil
		}
	}

	children := GenMoves(b, drawn && s.drawSkipOptim)
	var indent string
	if w != nil {
		indent = strings.Repeat(" ", 2*depth)
		fmt.Fprintf(w, "%s- scored: %d\n%s  moves:\n", indent, b.Scored(), indent)
	}
	for _, m := range children {
		if w != nil {
			fmt.Fprintf(w, "%s  - move: %v\n", indent, m)
		}
		child, err := b.Apply(m)
		if err != nil {
			return false, err
		}
		childLine := Line{}
		ok, err := s.solve(ctx, w, child, depth+1, m.IsDraw(), &childLine)
		if err != nil {
			return false, err
		}
		if ok {
			line.Update(m, childLine)
			return true, nil
		}
	}

	if s.transpositionTableOptim {
		s.ttable.storeFailed(key)
	}
	return false, nil
}

// solveParallel splits the search at the root. The first child found to win
// cancels the rest.
func (s *Solver) solveParallel(ctx context.Context) (bool, error) {
	root := s.board
	s.nodes.Add(1)
	if root.Win() {
		s.tracker.Record(board.NumCards)
		return true, nil
	}
	s.tracker.Record(root.Scored())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.threads)
	for _, m := range GenMoves(root, false) {
		g.Go(func() error {
			child, err := root.Apply(m)
			if err != nil {
				return err
			}
			childLine := Line{}
			ok, err := s.solve(gctx, nil, child, 1, m.IsDraw(), &childLine)
			if err != nil {
				return err
			}
			if ok {
				s.setSolution(m, childLine)
				return errSolved
			}
			return nil
		})
	}
	err := g.Wait()
	switch {
	case errors.Is(err, errSolved):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

// Solve searches for a win from the board given to Init. It returns an
// error only if ctx ends the search early, in which case BestScore and
// Nodes still describe the part that was searched.
func (s *Solver) Solve(ctx context.Context) (bool, error) {
	if s.board == nil {
		return false, errors.New("solver is not initialized")
	}
	tstart := time.Now()
	s.tracker.Reset()
	s.nodes.Store(0)
	s.solution.Clear()
	s.solved = false

	if s.transpositionTableOptim {
		if s.threads > 1 {
			s.ttable.SetMultiThreadedMode()
		} else {
			s.ttable.SetSingleThreadedMode()
		}
		s.ttable.Reset(s.ttMemFraction, s.board.Rules().MaxRedeals)
		s.zobrist = s.ttable.Zobrist()
	}
	if s.threads > 1 && s.logStream != nil {
		log.Warn().Int("threads", s.threads).Msg("log-stream-ignored-with-threads")
	}
	log.Debug().
		Str("deal", s.board.ID()).
		Int("threads", s.threads).
		Bool("draw-skip", s.drawSkipOptim).
		Bool("ttable", s.transpositionTableOptim).
		Msg("solve-config")

	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).
					Int("best-score", s.tracker.Best()).
					Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	var solved bool
	g.Go(func() error {
		defer close(done)
		var err error
		if s.threads > 1 {
			solved, err = s.solveParallel(ctx)
			return err
		}
		line := Line{}
		solved, err = s.solve(ctx, s.logStream, s.board, 0, false, &line)
		if solved {
			s.solution = line
			s.solved = true
		}
		return err
	})

	err := g.Wait()

	evt := log.Info()
	if s.transpositionTableOptim {
		created, lookups, hits, collisions := s.ttable.Stats()
		evt = evt.Uint64("ttable-created", created).
			Uint64("ttable-lookups", lookups).
			Uint64("ttable-hits", hits).
			Uint64("ttable-collisions", collisions)
	}
	evt.Str("deal", s.board.ID()).
		Bool("solvable", solved).
		Int("best-score", s.tracker.Best()).
		Uint64("nodes", s.nodes.Load()).
		Int("solution-length", len(s.solution.Moves)).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		AnErr("err", err).
		Msg("solve-returning")

	return solved, err
}
