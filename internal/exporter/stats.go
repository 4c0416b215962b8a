package exporter

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/solver"
)

// InstructorStats renders instructor_stats.txt: each instructor's
// realized load against their bounds, with the sessions they carry.
func InstructorStats(problem *solver.Problem, solution *solver.Solution) string {
	perInstructor := make([][]domain.SessionID, len(problem.Instructors))
	for i, assigned := range solution.Assignment {
		if assigned != domain.NoInstructor {
			perInstructor[assigned] = append(perInstructor[assigned], domain.SessionID(i))
		}
	}

	var out strings.Builder
	table := tabwriter.NewWriter(&out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "instructor\tzid\ttutes\tlab assists\ttotal\tsessions")

	for i := range problem.Instructors {
		instructor := &problem.Instructors[i]
		bucket := perInstructor[i]

		tutes := lo.CountBy(bucket, func(id domain.SessionID) bool {
			return problem.Sessions[id].Type == domain.TutLab
		})
		labs := len(bucket) - tutes

		descriptions := lo.Map(bucket, func(id domain.SessionID, _ int) string {
			return problem.Sessions[id].ShortDescription()
		})
		sort.Strings(descriptions)

		req := instructor.Requirement
		fmt.Fprintf(table, "%s\t%s\t%d (%d-%d)\t%d (%d-%d)\t%d (%d-%d)\t%s\n",
			instructor.Name, instructor.Zid,
			tutes, req.MinTutes, req.MaxTutes,
			labs, req.MinLabAssists, req.MaxLabAssists,
			len(bucket), req.MinTotal, req.MaxTotal,
			strings.Join(descriptions, ", "))
	}

	unassigned := lo.CountBy(solution.Assignment, func(id domain.InstructorID) bool {
		return id == domain.NoInstructor
	})

	table.Flush()
	fmt.Fprintf(&out, "\n%d of %d sessions unassigned\n", unassigned, len(problem.Sessions))
	return out.String()
}
