// Package availability turns raw hour-grid applications into a dense
// sessions × instructors matrix the solver can index directly.
package availability

import (
	"fmt"
	"strings"

	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/talloc"
)

// Matrix maps (SessionID, InstructorID) to an availability level,
// stored row-major with sessions as rows.
type Matrix struct {
	numInstructors int
	cells          []domain.Availability
}

// New allocates an all-Impossible matrix. Overrides and tests fill it
// through Set.
func New(numSessions, numInstructors int) *Matrix {
	return &Matrix{
		numInstructors: numInstructors,
		cells:          make([]domain.Availability, numSessions*numInstructors),
	}
}

func sessionAvailability(application talloc.Application, session *domain.Session) (domain.Availability, bool) {
	aggregate := domain.Preferred
	for offset := uint8(0); offset < session.Duration.Hours(); offset++ {
		hour, ok := application.Get(session.Day, session.Start.AddHr(offset), session.Mode)
		if !ok {
			return 0, false
		}
		aggregate = domain.MinAvailability(aggregate, hour)
	}
	return aggregate, true
}

// Build probes every hour a session spans under the session's mode and
// takes the minimum. A missing application fails the build unless the
// apps bundle tolerates them.
func Build(instructors []domain.Instructor, sessions []domain.Session, apps *talloc.Apps) (*Matrix, error) {
	matrix := New(len(sessions), len(instructors))

	for _, session := range sessions {
		for _, instructor := range instructors {
			application, ok := apps.Application(instructor.Zid)
			if !ok {
				return nil, fmt.Errorf("%s does not have a talloc application", instructor.Zid)
			}

			value, ok := sessionAvailability(application, &session)
			if !ok {
				return nil, fmt.Errorf("failed to look up %s's availability for %s",
					instructor.Zid, session.ClassName)
			}
			matrix.Set(session.ID, instructor.ID, value)
		}
	}

	return matrix, nil
}

func (m *Matrix) Get(session domain.SessionID, instructor domain.InstructorID) domain.Availability {
	return m.cells[int(session)*m.numInstructors+int(instructor)]
}

func (m *Matrix) Set(session domain.SessionID, instructor domain.InstructorID, value domain.Availability) {
	m.cells[int(session)*m.numInstructors+int(instructor)] = value
}

// Report renders each instructor's sessions grouped by level, for
// problem.txt.
func (m *Matrix) Report(sessions []domain.Session, instructors []domain.Instructor) string {
	var report strings.Builder

	for _, instructor := range instructors {
		fmt.Fprintf(&report, "%s (%s) availabilities:\n", instructor.Name, instructor.Zid)

		for _, level := range domain.AllAvailabilities {
			var matching []string
			for _, session := range sessions {
				if m.Get(session.ID, instructor.ID) == level {
					matching = append(matching, session.ShortDescription())
				}
			}

			suffix := ""
			if len(matching) == 0 {
				suffix = "none!"
			}
			fmt.Fprintf(&report, "    %s (%d total): %s%s\n",
				level, len(matching), strings.Join(matching, ", "), suffix)
		}
	}

	return report.String()
}
