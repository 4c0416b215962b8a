package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tlb-scheduler/internal/availability"
	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/exporter"
	"tlb-scheduler/internal/loader"
	"tlb-scheduler/internal/overlap"
	"tlb-scheduler/internal/solver"
	"tlb-scheduler/internal/talloc"
)

type options struct {
	ignoreNoTalloc bool
	cpus           int
	initialCosts   bool
	startSeed      int64
	totalAttempts  uint64
	numRounds      uint64
}

func main() {
	var opts options

	root := &cobra.Command{
		Use:   "scheduler <config-dir>",
		Short: "Assign instructors to tut+lab sessions with simulated annealing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(args[0], &opts, cmd.Flags().Changed("start-seed"))
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.ignoreNoTalloc, "ignore-no-talloc", false, "tolerate instructors without a talloc application")
	flags.IntVar(&opts.cpus, "cpus", 1, "number of parallel solver workers")
	flags.BoolVar(&opts.initialCosts, "initial-costs", false, "dump the cost breakdown of the initial solution")
	flags.Int64Var(&opts.startSeed, "start-seed", 0, "first rng seed (disables the warm-up attempt)")
	flags.Uint64Var(&opts.totalAttempts, "total-attempts", 20, "independent solver attempts")
	flags.Uint64Var(&opts.numRounds, "num-rounds", 75_000_000, "annealing rounds per attempt")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run(configDir string, opts *options, hasStartSeed bool) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	configPath := func(filename string) string {
		return filepath.Join(configDir, filename)
	}

	// 1. LOAD THE SHEETS
	fmt.Println("⏳ [STEP 1] Loading instructors and classes...")
	instructors, err := loader.LoadInstructors(configPath("instructors.tsv"))
	if err != nil {
		return err
	}
	log.Infof("Loaded %d instructors", len(instructors))

	classes, err := loader.LoadClasses(configPath("classes.tsv"))
	if err != nil {
		return err
	}
	f2f := 0
	for _, class := range classes {
		if class.Mode == domain.F2F {
			f2f++
		}
	}
	log.Infof("Loaded %d classes (%d face to face, %d online)", len(classes), f2f, len(classes)-f2f)

	sessions := domain.ClassesToSessions(classes)

	// 2. PRECOMPUTE THE CONFLICT MATRICES
	fmt.Println("\n🔗 [STEP 2] Precomputing session overlaps...")
	overlapSharp := overlap.Build(sessions, overlap.Sharp)
	overlapPadded := overlap.Build(sessions, overlap.WithPadding)
	overlapSameDay := overlap.Build(sessions, overlap.SameDay)

	// 3. AVAILABILITIES
	fmt.Println("\n📥 [STEP 3] Building the availability matrix...")
	applications, err := talloc.Fetch(configPath("talloc_cache.json"), opts.ignoreNoTalloc, log)
	if err != nil {
		return err
	}

	for _, instructor := range instructors {
		if application, ok := applications.Application(instructor.Zid); ok && application.IsDefault() {
			log.Infof("Using 'all impossible' default application for %s (%s)",
				instructor.Zid, instructor.Name)
		}
	}

	availabilities, err := availability.Build(instructors, sessions, applications)
	if err != nil {
		return err
	}
	// the raw applications are big; let them go before solving
	applications = nil

	overridesPath := configPath("overrides.tsv")
	if _, err := os.Stat(overridesPath); err == nil {
		overrides, err := loader.LoadOverrides(overridesPath)
		if err != nil {
			return fmt.Errorf("failed to process overrides: %w", err)
		}
		if err := availability.Apply(overrides, availabilities, instructors, sessions, log); err != nil {
			return fmt.Errorf("failed to process overrides: %w", err)
		}
	} else {
		log.Info("No overrides applied")
	}

	// 4. COSTS AND INITIAL SOLUTION
	fmt.Println("\n💰 [STEP 4] Reading cost config and initial solution...")
	costConfig, err := costs.ReadConfig(configPath("costs.toml"))
	if err != nil {
		return err
	}

	initial, err := loader.LoadInitialSolution(configPath("initial.tsv"), sessions, instructors, log)
	if err != nil {
		return fmt.Errorf("failed to process initial solution: %w", err)
	}

	problem := &solver.Problem{
		Sessions:       sessions,
		Instructors:    instructors,
		Availability:   availabilities,
		OverlapSharp:   overlapSharp,
		OverlapPadded:  overlapPadded,
		OverlapSameDay: overlapSameDay,
		CostConfig:     costConfig,
		Initial:        initial,
	}
	loader.CheckProblem(problem, log)

	if opts.initialCosts {
		breakdown, _ := initial.Evaluate(problem, nil)
		fmt.Printf("\nBreakdown of initial solution:\n%s", breakdown.String())
		fmt.Print(exporter.InstructorStats(problem, initial))
	}

	// 5. SOLVE
	fmt.Println("\n🔥 [STEP 5] Solving...")
	emitter := exporter.NewEmitter(log)

	best, err := solver.Search(problem, initial, solver.SearchConfig{
		Cpus:          opts.cpus,
		TotalAttempts: opts.totalAttempts,
		NumRounds:     opts.numRounds,
		StartSeed:     opts.startSeed,
		HasStartSeed:  hasStartSeed,
	}, func(output *solver.Output) error {
		return emitter.Emit(problem, output)
	}, log)
	if err != nil {
		return err
	}

	if best == nil {
		fmt.Println("\n⚠️  No attempt reached a finite cost; nothing written")
		return nil
	}

	fmt.Printf("\n✅ Best result: cost %s from seed %+v\n",
		costs.FormatTotal(best.FinalCost, best.Finite), best.Seed)
	return nil
}
