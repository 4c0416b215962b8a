package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tlb-scheduler/internal/domain"
)

func initialFixture() ([]domain.Session, []domain.Instructor) {
	sessions := []domain.Session{
		{ID: 0, ClassName: "H09A", Type: domain.TutLab},
		{ID: 1, ClassName: "H09A", Type: domain.LabAssist},
		{ID: 2, ClassName: "T14B", Type: domain.TutLab},
	}
	instructors := []domain.Instructor{
		{ID: 0, Name: "Ada", Zid: "z1111111"},
		{ID: 1, Name: "Bob", Zid: "z2222222"},
	}
	return sessions, instructors
}

func TestLoadInitialSolutionMissingFile(t *testing.T) {
	sessions, instructors := initialFixture()

	solution, err := LoadInitialSolution(filepath.Join(t.TempDir(), "initial.tsv"),
		sessions, instructors, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.False(t, solution.Nontrivial)
	for _, assigned := range solution.Assignment {
		assert.Equal(t, domain.NoInstructor, assigned)
	}
}

func TestLoadInitialSolution(t *testing.T) {
	sessions, instructors := initialFixture()

	path := writeTempTsv(t,
		"class\ttype\tzid\tname\n"+
			"H09A\ttut+lab\tz1111111\tAda\n"+
			"H09A\tlab\tz2222222\tBob\n"+
			"T14B\ttut+lab\t-\t\n")

	solution, err := LoadInitialSolution(path, sessions, instructors, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.True(t, solution.Nontrivial)
	assert.Equal(t, domain.InstructorID(0), solution.Assignment[0])
	assert.Equal(t, domain.InstructorID(1), solution.Assignment[1])
	assert.Equal(t, domain.NoInstructor, solution.Assignment[2], `"-" leaves the session unassigned`)
}

func TestLoadInitialSolutionNameMismatchProceeds(t *testing.T) {
	sessions, instructors := initialFixture()

	path := writeTempTsv(t,
		"class\ttype\tzid\tname\n"+
			"H09A\ttut+lab\tz1111111\tSomeone Else\n")

	// the sheet's display name disagrees with the instructor record:
	// warn but keep the assignment
	solution, err := LoadInitialSolution(path, sessions, instructors, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, domain.InstructorID(0), solution.Assignment[0])
}

func TestLoadInitialSolutionConflictFails(t *testing.T) {
	sessions, instructors := initialFixture()

	path := writeTempTsv(t,
		"class\ttype\tzid\tname\n"+
			"H09A\ttut+lab\tz1111111\tAda\n"+
			"H09A\ttut+lab\tz2222222\tBob\n")

	_, err := LoadInitialSolution(path, sessions, instructors, zap.NewNop().Sugar())
	assert.ErrorContains(t, err, "already has an instructor assigned")
}

func TestLoadInitialSolutionBadRows(t *testing.T) {
	sessions, instructors := initialFixture()

	tests := []struct {
		name    string
		row     string
		wantErr string
	}{
		{name: "unknown zid", row: "H09A\ttut+lab\tz9999999\tNobody", wantErr: "cannot find instructor"},
		{name: "unknown class", row: "X00X\ttut+lab\tz1111111\tAda", wantErr: "cannot find class"},
		{name: "bad type", row: "H09A\tlecture\tz1111111\tAda", wantErr: "bad session type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempTsv(t, "class\ttype\tzid\tname\n"+tt.row+"\n")
			_, err := LoadInitialSolution(path, sessions, instructors, zap.NewNop().Sugar())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
