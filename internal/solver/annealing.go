package solver

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"tlb-scheduler/internal/costs"
)

// Seed identifies one independent solver attempt.
type Seed struct {
	NumRounds uint64
	RngSeed   int64
}

// Output is the result of one attempt: the final cost (Finite false
// means infinite), the per-attempt text log, and the final solution.
type Output struct {
	Seed      Seed
	FinalCost costs.Value
	Finite    bool
	Log       string
	Solution  *Solution
}

// BetterThan orders outputs lexicographically: any finite cost beats
// infinity (and beats no result at all), smaller finite costs are
// better, and infinite never improves on anything.
func (o *Output) BetterThan(other *Output) bool {
	if !o.Finite {
		return false
	}
	if other == nil || !other.Finite {
		return true
	}
	return o.FinalCost < other.FinalCost
}

const (
	reportingInterval = 25_000

	// Cooling schedule: T = maxTemperature·p⁶ + minTemperature with
	// p the remaining fraction of rounds. The sixth power keeps the
	// search hot for a long opening phase then freezes sharply.
	maxTemperature  = 5000.0
	minTemperature  = 0.1
	coolingExponent = 6
)

func temperature(round, numRounds uint64) float64 {
	progress := 1.0 - float64(round)/float64(numRounds)
	return maxTemperature*math.Pow(progress, coolingExponent) + minTemperature
}

// SolveOnce runs one full simulated-annealing attempt from the initial
// solution. Deterministic for a fixed (problem, initial, seed).
func SolveOnce(problem *Problem, initial *Solution, seed Seed) *Output {
	rng := rand.New(rand.NewSource(seed.RngSeed))
	solution := initial.Clone()

	var log strings.Builder
	logf := func(format string, args ...any) {
		fmt.Fprintf(&log, format+"\n", args...)
	}

	initialCount, buffer := solution.Evaluate(problem, nil)
	currentCost, currentFinite := initialCount.Total(problem.CostConfig)

	startTime := time.Now()
	logf("Beginning solve with seed %+v", seed)
	logf("Initial cost: %s", costs.FormatTotal(currentCost, currentFinite))
	if !currentFinite {
		logf("Warning: initial cost is inf, you'll probably get a bad result!")
	}
	logf("Breakdown of initial cost:")
	logf("%s", indentLines(initialCount.String(), 4))

	for round := uint64(0); round < seed.NumRounds; round++ {
		if round%reportingInterval == 0 {
			logf("After %9d rounds current cost is %s", round, costs.FormatTotal(currentCost, currentFinite))
		}

		mutation := RandomMutation(problem, solution, rng)
		if mutation == nil {
			continue
		}

		mutation.Apply(solution)

		var count costs.Count
		count, buffer = solution.Evaluate(problem, buffer)
		newCost, newFinite := count.Total(problem.CostConfig)
		if !newFinite {
			mutation.Reverse(solution)
			continue
		}

		accept := true
		if currentFinite {
			if newCost > currentCost {
				diff := float64(newCost - currentCost)
				accept = rng.Float64() < math.Exp(-diff/temperature(round, seed.NumRounds))
			}
		}

		if accept {
			currentCost, currentFinite = newCost, true
		} else {
			mutation.Reverse(solution)
		}
	}

	finalCount, _ := solution.Evaluate(problem, buffer)
	logf("\nFinal cost: %s:\n%s", costs.FormatTotal(currentCost, currentFinite), indentLines(finalCount.String(), 4))
	logf("\nSolving took %.3f seconds", time.Since(startTime).Seconds())

	return &Output{
		Seed:      seed,
		FinalCost: currentCost,
		Finite:    currentFinite,
		Log:       log.String(),
		Solution:  solution,
	}
}

func indentLines(text string, spaces int) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	return indent + strings.Join(lines, "\n"+indent)
}
