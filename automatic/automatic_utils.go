package automatic

// Batch solving. Deals are spread across workers, and every result goes to
// a sink and into a running summary.

import (
	"context"
	"errors"
	"expvar"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/config"
	"github.com/domino14/patience/results"
	"github.com/domino14/patience/stock"
)

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	GamesCounter = expvar.NewInt("patienceGames")
	IsPlaying = expvar.NewInt("patienceSolving")
}

type job struct {
	seed  uint64
	stock *stock.Stock
}

// Runner solves batches of deals.
type Runner struct {
	config     *config.Config
	sink       results.Sink
	numWorkers int
}

func NewRunner(cfg *config.Config, sink results.Sink) *Runner {
	workers := cfg.GetInt(config.ConfigWorkers)
	if workers < 1 {
		workers = 1
	}
	return &Runner{config: cfg, sink: sink, numWorkers: workers}
}

// Run solves one deal per seed and returns a summary of the batch. Results
// the sink rejects are logged and still counted. If ctx ends early the
// summary covers the deals finished so far.
func (r *Runner) Run(ctx context.Context, seeds []uint64) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being solved, please wait till complete")
	}
	log.Info().Int("games", len(seeds)).Int("workers", r.numWorkers).Msg("starting-batch")
	GamesCounter.Set(0)

	// each worker gets its share of the table memory.
	memFraction := r.config.GetFloat64(config.ConfigTTableMemFraction) / float64(r.numWorkers)

	jobChans := make([]chan job, r.numWorkers)
	resultsChan := make(chan *results.Result, r.numWorkers)
	errChan := make(chan error, r.numWorkers)
	var workersWg sync.WaitGroup
	for i := 0; i < r.numWorkers; i++ {
		jobChans[i] = make(chan job, 16)
		workersWg.Add(1)
		go func(jobChan <-chan job) {
			defer workersWg.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			gr := NewGameRunner(r.config, memFraction)
			for j := range jobChan {
				res, err := gr.Solve(ctx, j.stock, j.seed)
				if err != nil {
					errChan <- err
					// drain so the feeder never blocks on us.
					for range jobChan {
					}
					return
				}
				GamesCounter.Add(1)
				resultsChan <- res
			}
		}(jobChans[i])
	}

	go func() {
		defer func() {
			for _, c := range jobChans {
				close(c)
			}
		}()
		for i, seed := range seeds {
			st := NewStock(r.config, seed)
			// the same deal always goes to the same worker.
			workerIndex := xxhash.Sum64String(st.ID()) % uint64(r.numWorkers)
			select {
			case jobChans[workerIndex] <- job{seed: seed, stock: st}:
			case <-ctx.Done():
				log.Info().Int("queued", i).Msg("got-stop-signal")
				return
			}
		}
	}()

	go func() {
		workersWg.Wait()
		close(resultsChan)
		close(errChan)
	}()

	summary := &Summary{}
	for res := range resultsChan {
		summary.Add(res)
		if err := r.sink.Record(ctx, res); err != nil {
			log.Err(err).Str("deal", res.DealID).Msg("could-not-record-result")
		}
		if summary.Games%100 == 0 {
			log.Info().Int("games", summary.Games).Int("solved", summary.Solved).Msg("batch-progress")
		}
	}
	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	log.Info().Int("games", summary.Games).Int("solved", summary.Solved).Msg("batch-finished")
	if len(errs) > 0 {
		return summary, errors.Join(errs...)
	}
	return summary, ctx.Err()
}
