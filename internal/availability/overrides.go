package availability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tlb-scheduler/internal/domain"
)

// Override is one row of overrides.tsv: a manual availability edit
// applied after the matrix is built, before solving. Each spec field
// is "*", an exact value, or a comma list of exact values.
type Override struct {
	Name  string
	Zid   string
	Class string
	Type  string
	Value domain.Availability
}

func matchesSpec(needle, spec string) bool {
	spec = strings.TrimSpace(spec)
	if spec == "*" {
		return true
	}
	for _, possibility := range strings.Split(spec, ",") {
		if strings.EqualFold(strings.TrimSpace(possibility), needle) {
			return true
		}
	}
	return false
}

func sessionTypeName(t domain.SessionType) string {
	if t == domain.LabAssist {
		return "lab"
	}
	return "tut"
}

// Apply writes each override into the matrix. An override matching no
// (session, instructor) pair at all is a fatal error, since it is
// almost certainly a typo in the sheet.
func Apply(overrides []Override, matrix *Matrix, instructors []domain.Instructor, sessions []domain.Session, log *zap.SugaredLogger) error {
	for _, override := range overrides {
		totalApplied := 0

		for _, instructor := range instructors {
			if !matchesSpec(instructor.Zid, override.Zid) {
				continue
			}

			for _, session := range sessions {
				if !matchesSpec(session.ClassName, override.Class) {
					continue
				}
				if !matchesSpec(sessionTypeName(session.Type), override.Type) {
					continue
				}

				matrix.Set(session.ID, instructor.ID, override.Value)
				totalApplied++
			}
		}

		if totalApplied == 0 {
			return fmt.Errorf("override %s didn't apply to any sessions/instructors", override.Name)
		}
		log.Infof("Override %s: %d applied", override.Name, totalApplied)
	}

	return nil
}
