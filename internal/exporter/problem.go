// Package exporter renders and writes the per-run report files:
// solver log, problem description, solution sheet, instructor stats
// and the diff against the initial solution.
package exporter

import (
	"fmt"
	"strings"

	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/solver"
)

func indentLines(text string, spaces int) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	return indent + strings.Join(lines, "\n"+indent) + "\n"
}

// ProblemDetails renders problem.txt: every input the solver saw, so a
// run can be audited without the original sheets.
func ProblemDetails(problem *solver.Problem) string {
	var out strings.Builder

	out.WriteString("Sessions:\n")
	for i := range problem.Sessions {
		session := &problem.Sessions[i]
		fmt.Fprintf(&out, "    %3d: %s, %s %s-%s, %s\n",
			session.ID, session.ShortDescription(),
			session.Day, session.Start, session.Start.Add(session.Duration), session.Mode)
	}

	out.WriteString("\nInstructors:\n")
	for i := range problem.Instructors {
		instructor := &problem.Instructors[i]
		req := instructor.Requirement
		fmt.Fprintf(&out, "    %3d: %s (%s) tutes %d-%d, lab assists %d-%d, total %d-%d%s\n",
			instructor.ID, instructor.Name, instructor.Zid,
			req.MinTutes, req.MaxTutes,
			req.MinLabAssists, req.MaxLabAssists,
			req.MinTotal, req.MaxTotal,
			seniorityNote(instructor.Seniority))
	}

	out.WriteString("\nAvailabilities:\n")
	out.WriteString(indentLines(problem.Availability.Report(problem.Sessions, problem.Instructors), 4))

	out.WriteString("\nDirect overlaps:\n")
	out.WriteString(indentLines(problem.OverlapSharp.Summarise(problem.Sessions), 4))

	out.WriteString("\nCosts:\n")
	out.WriteString(indentLines(problem.CostConfig.String(), 4))

	return out.String()
}

func seniorityNote(seniority *domain.TutorSeniority) string {
	switch {
	case seniority == nil:
		return ""
	case seniority.IsSeniorTutor && seniority.IsNewTutor:
		return " [senior, new]"
	case seniority.IsSeniorTutor:
		return " [senior]"
	case seniority.IsNewTutor:
		return " [new]"
	}
	return ""
}
