package solver

import (
	"tlb-scheduler/internal/availability"
	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/overlap"
)

// Shared fixtures for the solver package tests.

func testSession(id int, day domain.Day, start, duration int, typ domain.SessionType) domain.Session {
	return domain.Session{
		ID:        domain.SessionID(id),
		Day:       day,
		Start:     domain.TimeOfDay(start),
		Duration:  domain.Duration(duration),
		Type:      typ,
		Mode:      domain.F2F,
		ClassName: "H09A",
	}
}

func testInstructor(id int, req domain.ClassTypeRequirement) domain.Instructor {
	return domain.Instructor{
		ID:          domain.InstructorID(id),
		Name:        "Ada",
		Zid:         "z1111111",
		Requirement: req,
	}
}

// testWeights is a workable finite baseline; tests override what they
// exercise.
func testWeights() *costs.Config {
	config := costs.NewConfig()
	config.Set(costs.AssignedPossible, 1)
	config.Set(costs.AssignedDislike, 10)
	config.Set(costs.AssignedImpossible, 1000)
	config.Set(costs.UnassignedSession, 50)
	config.Set(costs.BelowMinTut, 20)
	config.Set(costs.BelowMinLab, 20)
	config.Set(costs.BelowMinClass, 20)
	config.Set(costs.AboveMaxTut, 20)
	config.Set(costs.AboveMaxLab, 20)
	config.Set(costs.AboveMaxClass, 20)
	config.Set(costs.DirectOverlap, 100)
	config.Set(costs.PaddedOverlap, 10)
	config.Set(costs.SameDayOverlap, 1)
	return config
}

// testProblem wires a problem whose availability starts all-Possible;
// tests adjust individual cells through problem.Availability.Set.
func testProblem(sessions []domain.Session, instructors []domain.Instructor, config *costs.Config) *Problem {
	matrix := availability.New(len(sessions), len(instructors))
	for _, session := range sessions {
		for _, instructor := range instructors {
			matrix.Set(session.ID, instructor.ID, domain.Possible)
		}
	}

	return &Problem{
		Sessions:       sessions,
		Instructors:    instructors,
		Availability:   matrix,
		OverlapSharp:   overlap.Build(sessions, overlap.Sharp),
		OverlapPadded:  overlap.Build(sessions, overlap.WithPadding),
		OverlapSameDay: overlap.Build(sessions, overlap.SameDay),
		CostConfig:     config,
		Initial:        EmptySolution(len(sessions), false),
	}
}
