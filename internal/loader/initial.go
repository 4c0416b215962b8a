package loader

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"tlb-scheduler/internal/domain"
	"tlb-scheduler/internal/solver"
)

func findInstructor(instructors []domain.Instructor, zid string) (*domain.Instructor, error) {
	var found *domain.Instructor
	for i := range instructors {
		if instructors[i].Zid != zid {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("instructor %s appears more than once", zid)
		}
		found = &instructors[i]
	}
	if found == nil {
		return nil, fmt.Errorf("cannot find instructor %s", zid)
	}
	return found, nil
}

func findSession(sessions []domain.Session, className string, classType domain.SessionType) (*domain.Session, error) {
	var found *domain.Session
	for i := range sessions {
		if sessions[i].ClassName != className || sessions[i].Type != classType {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("class %s %s appears more than once", className, classType)
		}
		found = &sessions[i]
	}
	if found == nil {
		return nil, fmt.Errorf("cannot find class %s %s", className, classType)
	}
	return found, nil
}

// LoadInitialSolution reads initial.tsv into a nontrivial solution; a
// missing file yields the empty default. A session assigned twice to
// different instructors is fatal, but a row whose display name
// disagrees with the instructor record only warns.
func LoadInitialSolution(path string, sessions []domain.Session, instructors []domain.Instructor, log *zap.SugaredLogger) (*solver.Solution, error) {
	if _, err := os.Stat(path); err != nil {
		log.Info("Using empty initial solution")
		return solver.EmptySolution(len(sessions), false), nil
	}

	tsv, err := ReadTsv(path)
	if err != nil {
		return nil, err
	}

	assignment := make([]domain.InstructorID, len(sessions))
	for i := range assignment {
		assignment[i] = domain.NoInstructor
	}

	for _, row := range tsv.Rows() {
		className, err := row.Get("class")
		if err != nil {
			return nil, err
		}

		rawType, err := row.Get("type")
		if err != nil {
			return nil, err
		}
		var classType domain.SessionType
		switch rawType {
		case "tut+lab":
			classType = domain.TutLab
		case "lab":
			classType = domain.LabAssist
		default:
			return nil, fmt.Errorf("bad session type %q for %s", rawType, className)
		}

		zid, err := row.Get("zid")
		if err != nil {
			return nil, err
		}
		if zid == "-" {
			continue
		}

		instructor, err := findInstructor(instructors, zid)
		if err != nil {
			return nil, fmt.Errorf("initial solution for class %s: %w", className, err)
		}

		if name, err := row.Get("name"); err == nil && name != instructor.Name {
			log.Warnf("Initial solution names %s as %q but the instructor sheet has %q",
				zid, name, instructor.Name)
		}

		session, err := findSession(sessions, className, classType)
		if err != nil {
			return nil, fmt.Errorf("initial solution: %w", err)
		}

		if current := assignment[session.ID]; current != domain.NoInstructor && current != instructor.ID {
			return nil, fmt.Errorf("class %s %s already has an instructor assigned", className, classType)
		}
		assignment[session.ID] = instructor.ID
	}

	return solver.NewSolution(assignment), nil
}
