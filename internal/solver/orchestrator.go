package solver

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tlb-scheduler/internal/costs"
)

const warmupRoundsDivisor = 20

// SearchConfig shapes a best-of-K parallel search.
type SearchConfig struct {
	Cpus          int
	TotalAttempts uint64
	NumRounds     uint64

	// StartSeed pins the first attempt's seed for reproduction runs.
	// When unset, attempts start at seed 1 and a short warm-up
	// attempt (seed 0, NumRounds/20) runs first so an early result
	// lands quickly.
	StartSeed    int64
	HasStartSeed bool
}

// Emit receives each new best result while the best-slot mutex is
// held, so emission (and the output directories it creates) is never
// raced by two workers.
type Emit func(output *Output) error

// Search runs the configured attempts across a fixed-size worker pool
// and returns the best output, or nil if every attempt ended infinite.
// Workers share only the read-only problem; each owns its solution,
// scratch buffer and generator, and they synchronize solely on the
// best-result slot.
func Search(problem *Problem, initial *Solution, config SearchConfig, emit Emit, log *zap.SugaredLogger) (*Output, error) {
	var mu sync.Mutex
	var best *Output

	finish := func(output *Output) error {
		mu.Lock()
		defer mu.Unlock()

		if !output.BetterThan(best) {
			log.Infof("Did not get improvement from seed %+v (cost %s)",
				output.Seed, costs.FormatTotal(output.FinalCost, output.Finite))
			return nil
		}

		if err := emit(output); err != nil {
			return err
		}
		best = output
		return nil
	}

	var group errgroup.Group
	cpus := config.Cpus
	if cpus < 1 {
		cpus = 1
	}
	group.SetLimit(cpus)

	runAttempt := func(seed Seed) {
		group.Go(func() error {
			return finish(SolveOnce(problem, initial, seed))
		})
	}

	log.Info("Starting solving...")

	if !config.HasStartSeed {
		runAttempt(Seed{NumRounds: config.NumRounds / warmupRoundsDivisor, RngSeed: 0})
	}

	startSeed := int64(1)
	if config.HasStartSeed {
		startSeed = config.StartSeed
	}
	for i := uint64(0); i < config.TotalAttempts; i++ {
		runAttempt(Seed{NumRounds: config.NumRounds, RngSeed: startSeed + int64(i)})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return best, nil
}
