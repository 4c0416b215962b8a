package domain

import "fmt"

// A class meets as a one hour tutorial followed immediately by a two
// hour lab.
const (
	TutDurationHours uint8 = 1
	LabDurationHours uint8 = 2
)

// SessionType distinguishes the two roles a class generates: the
// combined tut+lab block taken by the tutor, and the lab-assist block.
type SessionType int

const (
	TutLab SessionType = iota
	LabAssist
)

func (t SessionType) String() string {
	if t == LabAssist {
		return "lab"
	}
	return "tut+lab"
}

// Class is one row of classes.tsv after time parsing: a named section
// meeting on one day at one start time in one mode. The ignore flags
// suppress generating the corresponding session.
type Class struct {
	Name  string
	Day   Day
	Start TimeOfDay
	Mode  Mode

	IgnoreTut bool
	IgnoreLab bool
}

// SessionID is a dense index into the session vector, assigned in
// construction order. It doubles as the row index of the availability
// and overlap matrices.
type SessionID int

// InstructorID is a dense index into the instructor vector.
type InstructorID int

// NoInstructor marks an unassigned session in an assignment vector.
const NoInstructor InstructorID = -1

// Session is an atomic teaching slot. Immutable once the problem is
// constructed.
type Session struct {
	ID        SessionID
	Day       Day
	Start     TimeOfDay
	Duration  Duration
	Type      SessionType
	Mode      Mode
	ClassName string
}

// ShortDescription renders the "COMP1511-M09A tut+lab" form used in
// reports and overlap summaries.
func (s *Session) ShortDescription() string {
	return fmt.Sprintf("%s %s", s.ClassName, s.Type)
}

func classSessions(class Class) []Session {
	var sessions []Session

	if !class.IgnoreTut {
		sessions = append(sessions, Session{
			Day:       class.Day,
			Start:     class.Start,
			Duration:  Duration(TutDurationHours + LabDurationHours),
			Type:      TutLab,
			Mode:      class.Mode,
			ClassName: class.Name,
		})
	}

	if !class.IgnoreLab {
		sessions = append(sessions, Session{
			Day:       class.Day,
			Start:     class.Start.AddHr(TutDurationHours),
			Duration:  Duration(LabDurationHours),
			Type:      LabAssist,
			Mode:      class.Mode,
			ClassName: class.Name,
		})
	}

	return sessions
}

// ClassesToSessions expands every class into its sessions and hands
// out dense contiguous ids in construction order.
func ClassesToSessions(classes []Class) []Session {
	var sessions []Session
	for _, class := range classes {
		sessions = append(sessions, classSessions(class)...)
	}
	for i := range sessions {
		sessions[i].ID = SessionID(i)
	}
	return sessions
}
