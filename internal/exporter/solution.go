package exporter

import (
	"fmt"
	"strings"

	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/solver"
)

func instructorCell(instructors []domain.Instructor, id domain.InstructorID) (zid, name string) {
	if id == domain.NoInstructor {
		return "-", "-"
	}
	return instructors[id].Zid, instructors[id].Name
}

// SolutionTsv renders solution.tsv. The column shape matches
// initial.tsv so a run's output can seed the next run.
func SolutionTsv(problem *solver.Problem, solution *solver.Solution) string {
	var out strings.Builder
	out.WriteString("class\ttype\tzid\tname\n")

	for i := range problem.Sessions {
		session := &problem.Sessions[i]
		zid, name := instructorCell(problem.Instructors, solution.Assignment[i])
		fmt.Fprintf(&out, "%s\t%s\t%s\t%s\n", session.ClassName, session.Type, zid, name)
	}

	return out.String()
}

// SolutionDiff renders diff.txt: every session whose final assignment
// departs from the initial solution.
func SolutionDiff(problem *solver.Problem, solution *solver.Solution) string {
	var out strings.Builder
	changes := 0

	for i := range problem.Sessions {
		before := problem.Initial.Assignment[i]
		after := solution.Assignment[i]
		if before == after {
			continue
		}
		changes++

		session := &problem.Sessions[i]
		beforeZid, beforeName := instructorCell(problem.Instructors, before)
		afterZid, afterName := instructorCell(problem.Instructors, after)
		fmt.Fprintf(&out, "%s: %s (%s) -> %s (%s)\n",
			session.ShortDescription(), beforeZid, beforeName, afterZid, afterName)
	}

	if changes == 0 {
		return "No changes from the initial solution\n"
	}
	return fmt.Sprintf("%d changes from the initial solution:\n%s", changes, out.String())
}
