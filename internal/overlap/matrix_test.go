package overlap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlb-scheduler/internal/domain"
)

func session(id int, day domain.Day, start, duration int, mode domain.Mode) domain.Session {
	return domain.Session{
		ID:       domain.SessionID(id),
		Day:      day,
		Start:    domain.TimeOfDay(start),
		Duration: domain.Duration(duration),
		Mode:     mode,
	}
}

func TestPairOverlaps(t *testing.T) {
	tests := []struct {
		name        string
		a, b        domain.Session
		wantSharp   bool
		wantPadded  bool
		wantSameDay bool
	}{
		{
			name:        "strictly overlapping",
			a:           session(0, domain.Mon, 10, 2, domain.F2F),
			b:           session(1, domain.Mon, 11, 2, domain.F2F),
			wantSharp:   true,
			wantPadded:  true,
			wantSameDay: true,
		},
		{
			name:        "touching end to start",
			a:           session(0, domain.Mon, 10, 2, domain.F2F),
			b:           session(1, domain.Mon, 12, 2, domain.F2F),
			wantSharp:   false,
			wantPadded:  true,
			wantSameDay: true,
		},
		{
			name:        "an hour apart",
			a:           session(0, domain.Mon, 9, 2, domain.F2F),
			b:           session(1, domain.Mon, 12, 2, domain.F2F),
			wantSharp:   false,
			wantPadded:  false,
			wantSameDay: true,
		},
		{
			name:        "different days",
			a:           session(0, domain.Mon, 10, 2, domain.F2F),
			b:           session(1, domain.Tue, 10, 2, domain.F2F),
			wantSharp:   false,
			wantPadded:  false,
			wantSameDay: false,
		},
		{
			name: "mode change forces padding semantics",
			// touch-only, so not a sharp overlap, but the commute
			// buffer between modes upgrades the sharp matrix too
			a:           session(0, domain.Mon, 10, 2, domain.F2F),
			b:           session(1, domain.Mon, 12, 2, domain.Online),
			wantSharp:   true,
			wantPadded:  true,
			wantSameDay: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := []domain.Session{tt.a, tt.b}
			assert.Equal(t, tt.wantSharp, Build(sessions, Sharp).IsOverlap(0, 1), "sharp")
			assert.Equal(t, tt.wantPadded, Build(sessions, WithPadding).IsOverlap(0, 1), "padded")
			assert.Equal(t, tt.wantSameDay, Build(sessions, SameDay).IsOverlap(0, 1), "same day")
		})
	}
}

func randomSessions(rng *rand.Rand, count int) []domain.Session {
	sessions := make([]domain.Session, count)
	for i := range sessions {
		mode := domain.F2F
		if rng.Intn(2) == 1 {
			mode = domain.Online
		}
		sessions[i] = session(i, domain.Day(rng.Intn(domain.DaysPerWeek)), 8+rng.Intn(10), 1+rng.Intn(3), mode)
	}
	return sessions
}

func TestOverlapInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		sessions := randomSessions(rng, 12)

		sharp := Build(sessions, Sharp)
		padded := Build(sessions, WithPadding)
		sameDay := Build(sessions, SameDay)

		for _, a := range sessions {
			// no session overlaps itself, at any level
			assert.False(t, sharp.IsOverlap(a.ID, a.ID))
			assert.False(t, padded.IsOverlap(a.ID, a.ID))
			assert.False(t, sameDay.IsOverlap(a.ID, a.ID))

			for _, b := range sessions {
				// symmetry
				assert.Equal(t, sharp.IsOverlap(a.ID, b.ID), sharp.IsOverlap(b.ID, a.ID))
				assert.Equal(t, padded.IsOverlap(a.ID, b.ID), padded.IsOverlap(b.ID, a.ID))
				assert.Equal(t, sameDay.IsOverlap(a.ID, b.ID), sameDay.IsOverlap(b.ID, a.ID))

				// Sharp ⊆ WithPadding ⊆ SameDay
				if sharp.IsOverlap(a.ID, b.ID) {
					assert.True(t, padded.IsOverlap(a.ID, b.ID))
				}
				if padded.IsOverlap(a.ID, b.ID) {
					assert.True(t, sameDay.IsOverlap(a.ID, b.ID))
				}
			}
		}
	}
}

func TestSummarise(t *testing.T) {
	sessions := []domain.Session{
		session(0, domain.Mon, 10, 3, domain.F2F),
		session(1, domain.Mon, 11, 2, domain.F2F),
		session(2, domain.Fri, 9, 2, domain.F2F),
	}
	sessions[0].ClassName = "H10A"
	sessions[0].Type = domain.TutLab
	sessions[1].ClassName = "H10A"
	sessions[1].Type = domain.LabAssist
	sessions[2].ClassName = "F09A"
	sessions[2].Type = domain.TutLab

	summary := Build(sessions, Sharp).Summarise(sessions)
	require.Equal(t, "H10A tut+lab and H10A lab overlap\n", summary)
}
