package loader

import (
	"go.uber.org/zap"

	"github.com/samber/lo"

	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/solver"
)

func checkInstructorRequirement(instructor *domain.Instructor, log *zap.SugaredLogger) {
	req := instructor.Requirement
	warn := func(condition string) {
		log.Warnf("Bad constraints for %s (%s): condition `%s` violated",
			instructor.Zid, instructor.Name, condition)
	}

	minT, maxT := int(req.MinTutes), int(req.MaxTutes)
	minA, maxA := int(req.MinLabAssists), int(req.MaxLabAssists)
	minC, maxC := int(req.MinTotal), int(req.MaxTotal)

	if minT > maxT {
		warn("minT <= maxT")
	}
	if minA > maxA {
		warn("minA <= maxA")
	}
	if minC > maxC {
		warn("minC <= maxC")
	}
	if minT+minA > maxC {
		warn("minT + minA <= maxC")
	}
	if minC > maxT+maxA {
		warn("minC <= maxT + maxA")
	}
	if minT+minA > minC {
		warn("minT + minA <= minC")
	}
	if maxC > maxT+maxA {
		warn("maxC <= maxT + maxA")
	}
}

func checkAggregate(log *zap.SugaredLogger, sumMin, actual, sumMax int, kind, minResolution, maxResolution string) {
	if sumMin > actual {
		log.Warnf("The instructors' minimum %s requirements sum to %d but only %d sessions exist: you probably want to %s",
			kind, sumMin, actual, minResolution)
	}
	if actual > sumMax {
		log.Warnf("%d %s sessions exist but the instructors' maximums only sum to %d: you probably want to %s",
			actual, kind, sumMax, maxResolution)
	}
}

// CheckProblem emits the pre-flight warnings: inconsistent
// per-instructor bounds, globally infeasible workload aggregates, and
// a mismatch cost that can never fire. Warnings never abort a run.
func CheckProblem(problem *solver.Problem, log *zap.SugaredLogger) {
	for i := range problem.Instructors {
		checkInstructorRequirement(&problem.Instructors[i], log)
	}

	totalTuts := lo.CountBy(problem.Sessions, func(s domain.Session) bool {
		return s.Type == domain.TutLab
	})
	totalLabs := len(problem.Sessions) - totalTuts
	totalClasses := len(problem.Sessions)

	sum := func(f func(domain.ClassTypeRequirement) uint8) int {
		return lo.SumBy(problem.Instructors, func(i domain.Instructor) int {
			return int(f(i.Requirement))
		})
	}

	checkAggregate(log,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MinTutes }),
		totalTuts,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MaxTutes }),
		"tut+lab",
		"decrease some of the instructors' minT values",
		"increase some of the instructors' maxT values or add more instructors")

	checkAggregate(log,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MinLabAssists }),
		totalLabs,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MaxLabAssists }),
		"lab assist",
		"decrease some of the instructors' minA values",
		"increase some of the instructors' maxA values or add more instructors")

	checkAggregate(log,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MinTotal }),
		totalClasses,
		sum(func(r domain.ClassTypeRequirement) uint8 { return r.MaxTotal }),
		"total",
		"decrease some of the instructors' minC values",
		"increase some of the instructors' maxC values or add more instructors")

	if problem.CostConfig.ShouldCount(costs.MismatchedInitialSolution) && !problem.Initial.Nontrivial {
		log.Warn("mismatched_initial_solution used without an explicit initial solution")
	}
}
