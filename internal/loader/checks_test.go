package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tlb-scheduler/internal/availability"
	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/overlap"
	"tlb-scheduler/internal/solver"
)

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core).Sugar(), logs
}

func checkFixture(instructors []domain.Instructor, sessions []domain.Session, config *costs.Config) *solver.Problem {
	return &solver.Problem{
		Sessions:       sessions,
		Instructors:    instructors,
		Availability:   availability.New(len(sessions), len(instructors)),
		OverlapSharp:   overlap.Build(sessions, overlap.Sharp),
		OverlapPadded:  overlap.Build(sessions, overlap.WithPadding),
		OverlapSameDay: overlap.Build(sessions, overlap.SameDay),
		CostConfig:     config,
		Initial:        solver.EmptySolution(len(sessions), false),
	}
}

func TestCheckProblemWarnsOnBadBounds(t *testing.T) {
	instructors := []domain.Instructor{{
		ID: 0, Name: "Ada", Zid: "z1111111",
		// minT > maxT, and the joint bounds are incoherent
		Requirement: domain.ClassTypeRequirement{MinTutes: 3, MaxTutes: 1, MaxTotal: 1},
	}}

	log, logs := observedLogger()
	CheckProblem(checkFixture(instructors, nil, costs.NewConfig()), log)

	messages := logs.All()
	assert.NotEmpty(t, messages)
}

func TestCheckProblemWarnsOnInfeasibleAggregates(t *testing.T) {
	sessions := []domain.Session{
		{ID: 0, Type: domain.TutLab, ClassName: "H09A"},
		{ID: 1, Type: domain.LabAssist, ClassName: "H09A"},
	}
	// the only instructor's minimums already exceed what exists
	instructors := []domain.Instructor{{
		ID: 0, Name: "Ada", Zid: "z1111111",
		Requirement: domain.ClassTypeRequirement{
			MinTutes: 3, MaxTutes: 3,
			MinLabAssists: 3, MaxLabAssists: 3,
			MinTotal: 6, MaxTotal: 6,
		},
	}}

	log, logs := observedLogger()
	CheckProblem(checkFixture(instructors, sessions, costs.NewConfig()), log)

	warned := false
	for _, entry := range logs.All() {
		if entry.Level == zap.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestCheckProblemWarnsOnUnusedMismatchCost(t *testing.T) {
	config := costs.NewConfig()
	config.Set(costs.MismatchedInitialSolution, 7)

	log, logs := observedLogger()
	CheckProblem(checkFixture(nil, nil, config), log)

	found := false
	for _, entry := range logs.All() {
		if entry.Message == "mismatched_initial_solution used without an explicit initial solution" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckProblemQuietWhenConsistent(t *testing.T) {
	sessions := []domain.Session{
		{ID: 0, Type: domain.TutLab, ClassName: "H09A"},
		{ID: 1, Type: domain.LabAssist, ClassName: "H09A"},
	}
	instructors := []domain.Instructor{{
		ID: 0, Name: "Ada", Zid: "z1111111",
		Requirement: domain.ClassTypeRequirement{
			MinTutes: 0, MaxTutes: 1,
			MinLabAssists: 0, MaxLabAssists: 1,
			MinTotal: 0, MaxTotal: 2,
		},
	}}

	log, logs := observedLogger()
	CheckProblem(checkFixture(instructors, sessions, costs.NewConfig()), log)

	assert.Empty(t, logs.All())
}
