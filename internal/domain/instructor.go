package domain

// ClassTypeRequirement bounds how many sessions of each kind an
// instructor should carry. The totals are constrained separately from
// the per-type bounds, so "2-4 tutes, 0-2 lab assists, 3-4 overall" is
// expressible.
type ClassTypeRequirement struct {
	MinTutes      uint8
	MaxTutes      uint8
	MinLabAssists uint8
	MaxLabAssists uint8
	MinTotal      uint8
	MaxTotal      uint8
}

// TutorSeniority carries the optional experience flags from
// instructors.tsv. They do not feed the cost model; they surface in
// reports so a human can sanity-check pairings.
type TutorSeniority struct {
	IsSeniorTutor bool
	IsNewTutor    bool
}

// Instructor is one row of instructors.tsv with a dense id.
type Instructor struct {
	ID          InstructorID
	Name        string
	Zid         string
	Requirement ClassTypeRequirement

	Seniority *TutorSeniority
}
