package solver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tlb-scheduler/internal/domain"
)

func searchFixture() (*Problem, *Solution) {
	sessions := []domain.Session{
		testSession(0, domain.Mon, 9, 3, domain.TutLab),
		testSession(1, domain.Mon, 10, 2, domain.LabAssist),
		testSession(2, domain.Tue, 13, 3, domain.TutLab),
	}
	instructors := []domain.Instructor{
		testInstructor(0, domain.ClassTypeRequirement{MinTutes: 1, MaxTutes: 1, MaxLabAssists: 1, MinTotal: 1, MaxTotal: 2}),
		testInstructor(1, domain.ClassTypeRequirement{MaxTutes: 1, MaxLabAssists: 1, MaxTotal: 1}),
	}
	problem := testProblem(sessions, instructors, testWeights())
	return problem, EmptySolution(len(sessions), false)
}

func TestSearchKeepsTheBestEmission(t *testing.T) {
	problem, initial := searchFixture()

	var mu sync.Mutex
	var emitted []*Output

	best, err := Search(problem, initial, SearchConfig{
		Cpus:          2,
		TotalAttempts: 4,
		NumRounds:     2000,
		StartSeed:     1,
		HasStartSeed:  true,
	}, func(output *Output) error {
		mu.Lock()
		defer mu.Unlock()
		emitted = append(emitted, output)
		return nil
	}, zap.NewNop().Sugar())

	require.NoError(t, err)
	require.NotNil(t, best)
	require.NotEmpty(t, emitted)

	// every emission is a strict improvement over the one before
	for i := 1; i < len(emitted); i++ {
		assert.True(t, emitted[i].BetterThan(emitted[i-1]))
	}
	// and the last emission is the best
	assert.Same(t, emitted[len(emitted)-1], best)
	for _, output := range emitted {
		assert.False(t, output.BetterThan(best))
	}
}

func TestSearchRunsWarmupWithoutStartSeed(t *testing.T) {
	problem, initial := searchFixture()

	var mu sync.Mutex
	seeds := map[int64]uint64{}

	_, err := Search(problem, initial, SearchConfig{
		Cpus:          1,
		TotalAttempts: 2,
		NumRounds:     2000,
	}, func(output *Output) error {
		mu.Lock()
		defer mu.Unlock()
		seeds[output.Seed.RngSeed] = output.Seed.NumRounds
		return nil
	}, zap.NewNop().Sugar())
	require.NoError(t, err)

	// with one worker the warm-up attempt finishes first and is
	// always emitted; it runs a twentieth of the budget on seed 0
	rounds, ok := seeds[0]
	require.True(t, ok, "warm-up attempt should have been emitted")
	assert.Equal(t, uint64(100), rounds)
}

func TestSearchIsDeterministicPerSeed(t *testing.T) {
	problem, initial := searchFixture()

	run := func() *Output {
		best, err := Search(problem, initial, SearchConfig{
			Cpus:          3,
			TotalAttempts: 3,
			NumRounds:     2000,
			StartSeed:     7,
			HasStartSeed:  true,
		}, func(*Output) error { return nil }, zap.NewNop().Sugar())
		require.NoError(t, err)
		require.NotNil(t, best)
		return best
	}

	first := run()
	second := run()

	// worker interleaving may vary, but each seed's result doesn't,
	// so the best cost is stable across runs
	assert.Equal(t, first.FinalCost, second.FinalCost)
}
