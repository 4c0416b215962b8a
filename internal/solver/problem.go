// Package solver holds the combinatorial core: the read-only problem
// bundle, assignment vectors, the cost evaluator, the local mutation
// algebra and the simulated-annealing search.
package solver

import (
	"slices"

	"tlb-scheduler/internal/availability"
	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/overlap"
)

// Problem bundles everything the evaluator and sampler consult. It is
// strictly read-only once constructed and is shared across workers.
type Problem struct {
	Sessions    []domain.Session
	Instructors []domain.Instructor

	Availability *availability.Matrix

	OverlapSharp   *overlap.Matrix
	OverlapPadded  *overlap.Matrix
	OverlapSameDay *overlap.Matrix

	CostConfig *costs.Config

	Initial *Solution
}

// Solution is an assignment vector: one cell per session, each either
// NoInstructor or an instructor id. Nontrivial distinguishes an
// explicit initial solution from the empty default.
type Solution struct {
	Nontrivial bool
	Assignment []domain.InstructorID
}

// EmptySolution leaves every session unassigned.
func EmptySolution(numSessions int, nontrivial bool) *Solution {
	assignment := make([]domain.InstructorID, numSessions)
	for i := range assignment {
		assignment[i] = domain.NoInstructor
	}
	return &Solution{Nontrivial: nontrivial, Assignment: assignment}
}

// NewSolution wraps an explicit assignment as a nontrivial solution.
func NewSolution(assignment []domain.InstructorID) *Solution {
	return &Solution{Nontrivial: true, Assignment: assignment}
}

func (s *Solution) Clone() *Solution {
	return &Solution{
		Nontrivial: s.Nontrivial,
		Assignment: slices.Clone(s.Assignment),
	}
}

func (s *Solution) Equal(other *Solution) bool {
	return s.Nontrivial == other.Nontrivial && slices.Equal(s.Assignment, other.Assignment)
}
