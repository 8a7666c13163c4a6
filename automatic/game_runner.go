// Package automatic deals and solves games without a human at the
// keyboard, one at a time or in large batches, and summarizes how they went.
package automatic

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/config"
	"github.com/domino14/patience/results"
	"github.com/domino14/patience/solver"
	"github.com/domino14/patience/stock"
)

// GameRunner solves deals one after another with the same settings. It is
// not safe for concurrent use; batch workers each get their own.
type GameRunner struct {
	config *config.Config
	ttable *solver.TranspositionTable
	solver solver.Solver
	// memFraction is this runner's share of memory for its table.
	memFraction float64
}

// NewGameRunner makes a runner with its own transposition table, sized to
// memFraction of system memory.
func NewGameRunner(cfg *config.Config, memFraction float64) *GameRunner {
	return &GameRunner{
		config:      cfg,
		ttable:      &solver.TranspositionTable{},
		memFraction: memFraction,
	}
}

// NewStock shuffles a deck under cfg's rank set. A zero seed picks a random
// shuffle.
func NewStock(cfg *config.Config, seed uint64) *stock.Stock {
	if seed == 0 {
		return stock.New(cfg.Ranks())
	}
	return stock.NewSeeded(cfg.Ranks(), seed)
}

// Solve deals st and searches it. A timeout from the solve-timeout setting
// is reported in the result, not as an error; only cancellation of ctx
// itself is an error.
func (r *GameRunner) Solve(ctx context.Context, st *stock.Stock, seed uint64) (*results.Result, error) {
	b := board.Deal(st, r.config.Rules())
	if err := r.solver.Init(b); err != nil {
		return nil, err
	}
	r.solver.SetThreads(r.config.GetInt(config.ConfigThreads))
	r.solver.SetDrawSkipOptim(r.config.GetBool(config.ConfigSkipDrawOptim))
	r.solver.SetTranspositionOptim(r.config.GetBool(config.ConfigTranspositionOptim))
	r.solver.SetTranspositionTable(r.ttable)
	r.solver.SetTTableMemFraction(r.memFraction)

	solveCtx := ctx
	if timeout := r.config.GetDuration(config.ConfigSolveTimeout); timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tstart := time.Now()
	solvable, err := r.solver.Solve(solveCtx)
	elapsed := time.Since(tstart)
	res := &results.Result{
		DealID:   b.ID(),
		DealHash: st.Hash(),
		Seed:     seed,
		Solvable: solvable,
		Score:    r.solver.BestScore(),
		Elapsed:  elapsed,
		Nodes:    r.solver.Nodes(),
		Finished: time.Now(),
	}
	if err != nil {
		if ctx.Err() != nil || !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		res.TimedOut = true
		log.Info().Str("deal", b.ID()).Dur("elapsed", elapsed).Msg("solve-timed-out")
	}
	if solvable {
		res.SetSolution(r.solver.Solution())
	}
	return res, nil
}

// SolveDeal solves a single deal with the settings in cfg.
func SolveDeal(ctx context.Context, cfg *config.Config, st *stock.Stock, seed uint64) (*results.Result, error) {
	r := NewGameRunner(cfg, cfg.GetFloat64(config.ConfigTTableMemFraction))
	r.ttable = solver.GlobalTranspositionTable
	return r.Solve(ctx, st, seed)
}
