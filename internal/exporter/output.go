package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/solver"
)

const outputRoot = "output"

// Emitter writes each new best result into a fresh run directory and
// refreshes the "latest" alias. A single mutex serializes directory
// probing and writing, so concurrent workers can't race on names.
type Emitter struct {
	mu  sync.Mutex
	log *zap.SugaredLogger
}

func NewEmitter(log *zap.SugaredLogger) *Emitter {
	return &Emitter{log: log}
}

func freshRunDir() string {
	host, err := os.Hostname()
	if err != nil {
		host = "out"
	}

	for disambiguator := 0; ; disambiguator++ {
		dir := filepath.Join(outputRoot, fmt.Sprintf("%s-%06d", host, disambiguator))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return dir
		}
	}
}

func writeReports(dir string, problem *solver.Problem, output *solver.Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	files := map[string]string{
		"solver_log.txt":       output.Log,
		"problem.txt":          ProblemDetails(problem),
		"solution.tsv":         SolutionTsv(problem, output.Solution),
		"instructor_stats.txt": InstructorStats(problem, output.Solution),
	}
	if problem.Initial.Nontrivial {
		files["diff.txt"] = SolutionDiff(problem, output.Solution)
	}

	for name, contents := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("failed to write to %s: %w", path, err)
		}
	}
	return nil
}

// Emit writes the result into the next free run directory and into
// output/latest.
func (e *Emitter) Emit(problem *solver.Problem, output *solver.Output) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	runDir := freshRunDir()
	for _, dir := range []string{runDir, filepath.Join(outputRoot, "latest")} {
		if err := writeReports(dir, problem, output); err != nil {
			return err
		}
	}

	e.log.Infof("New output in %s (cost %s, from seed %+v)",
		runDir, costs.FormatTotal(output.FinalCost, output.Finite), output.Seed)
	return nil
}
