package solver

import (
	"math/rand"

	"tlb-scheduler/internal/domain"
)

// Mutation is a local change to an assignment with an exact inverse.
// Apply then Reverse always restores the original solution; both are
// O(depth) where only Seq adds depth.
type Mutation interface {
	Apply(s *Solution)
	Reverse(s *Solution)
}

// Remove clears the assignment at Session, which held Old.
type Remove struct {
	Session domain.SessionID
	Old     domain.InstructorID
}

// Add fills a previously empty Session with New.
type Add struct {
	Session domain.SessionID
	New     domain.InstructorID
}

// Swap replaces Old with New at Session.
type Swap struct {
	Session domain.SessionID
	Old     domain.InstructorID
	New     domain.InstructorID
}

// Seq composes two mutations in order. Reversal undoes Second first.
type Seq struct {
	First  Mutation
	Second Mutation
}

func (m Remove) Apply(s *Solution) {
	s.Assignment[m.Session] = domain.NoInstructor
}

func (m Remove) Reverse(s *Solution) {
	s.Assignment[m.Session] = m.Old
}

func (m Add) Apply(s *Solution) {
	s.Assignment[m.Session] = m.New
}

func (m Add) Reverse(s *Solution) {
	s.Assignment[m.Session] = domain.NoInstructor
}

func (m Swap) Apply(s *Solution) {
	s.Assignment[m.Session] = m.New
}

func (m Swap) Reverse(s *Solution) {
	s.Assignment[m.Session] = m.Old
}

func (m Seq) Apply(s *Solution) {
	m.First.Apply(s)
	m.Second.Apply(s)
}

func (m Seq) Reverse(s *Solution) {
	m.Second.Reverse(s)
	m.First.Reverse(s)
}

const instructorSampleTries = 16

// RandomMutation samples a mutation admissible for the current
// solution, or returns nil for "no mutation" when sampling runs out of
// tries; callers treat nil as a skipped iteration.
func RandomMutation(problem *Problem, solution *Solution, rng *rand.Rand) Mutation {
	if len(problem.Sessions) == 0 {
		return nil
	}

	// Occasionally compose two independent mutations so the search
	// can cross cost barriers a single move can't.
	if rng.Intn(8) == 0 {
		first := RandomMutation(problem, solution, rng)
		if first == nil {
			return nil
		}
		second := RandomMutation(problem, solution, rng)
		if second == nil {
			return nil
		}
		return Seq{First: first, Second: second}
	}

	sessionIndex := rng.Intn(len(problem.Sessions))
	sessionID := domain.SessionID(sessionIndex)

	randInstructorForSession := func() (domain.InstructorID, bool) {
		if len(problem.Instructors) == 0 {
			return 0, false
		}
		for try := 0; try < instructorSampleTries; try++ {
			id := domain.InstructorID(rng.Intn(len(problem.Instructors)))
			if problem.Availability.Get(sessionID, id) != domain.Impossible {
				return id, true
			}
		}
		return 0, false
	}

	old := solution.Assignment[sessionIndex]
	if old == domain.NoInstructor {
		id, ok := randInstructorForSession()
		if !ok {
			return nil
		}
		return Add{Session: sessionID, New: id}
	}

	switch rng.Intn(8) {
	case 1:
		return Remove{Session: sessionID, Old: old}
	case 2:
		// Two-way rotation: exchange instructors with another
		// assigned session, expressed as a Seq of two Swaps.
		otherIndex := rng.Intn(len(problem.Sessions))
		if otherIndex == sessionIndex {
			return nil
		}
		other := solution.Assignment[otherIndex]
		if other == domain.NoInstructor {
			return nil
		}
		return Seq{
			First:  Swap{Session: sessionID, Old: old, New: other},
			Second: Swap{Session: domain.SessionID(otherIndex), Old: other, New: old},
		}
	default:
		replacement, ok := randInstructorForSession()
		if !ok {
			return nil
		}
		return Swap{Session: sessionID, Old: old, New: replacement}
	}
}
