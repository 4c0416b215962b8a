// Package overlap precomputes which pairs of sessions conflict, so the
// evaluator's inner loop pays a single bit read per pair instead of
// interval arithmetic.
package overlap

import (
	"fmt"
	"strings"

	"tlb-scheduler/internal/domain"
)

// Level selects how loose the conflict relation is.
type Level int

const (
	// Sharp: the time intervals strictly overlap. Touching
	// end-to-start does not count.
	Sharp Level = iota
	// WithPadding: touching end-to-start counts as overlap. Also
	// applied whenever the two sessions differ in mode, as a
	// commute buffer.
	WithPadding
	// SameDay: any two distinct sessions on the same day.
	SameDay
)

// Matrix is a symmetric session-pair relation packed as an N² bitset.
type Matrix struct {
	numSessions int
	bits        []uint64
}

func sessionsOverlap(a, b *domain.Session, level Level) bool {
	if a.Day != b.Day {
		return false
	}

	if level == SameDay {
		return true
	}

	if a.Mode != b.Mode {
		// commute buffer between online and in-person blocks
		level = WithPadding
	}

	aStart, aEnd := int(a.Start), int(a.Start)+int(a.Duration)
	bStart, bEnd := int(b.Start), int(b.Start)+int(b.Duration)

	if level == Sharp {
		return aStart < bEnd && bStart < aEnd
	}
	return aStart <= bEnd && bStart <= aEnd
}

func (m *Matrix) index(a, b domain.SessionID) int {
	return int(a)*m.numSessions + int(b)
}

func (m *Matrix) set(a, b domain.SessionID) {
	idx := m.index(a, b)
	m.bits[idx/64] |= 1 << (idx % 64)
}

// Build precomputes the relation for every ordered pair in O(N²).
// Self-pairs are always excluded.
func Build(sessions []domain.Session, level Level) *Matrix {
	n := len(sessions)
	matrix := &Matrix{
		numSessions: n,
		bits:        make([]uint64, (n*n+63)/64),
	}

	for i := range sessions {
		for j := range sessions {
			if i == j {
				continue
			}
			if sessionsOverlap(&sessions[i], &sessions[j], level) {
				matrix.set(sessions[i].ID, sessions[j].ID)
			}
		}
	}

	return matrix
}

// IsOverlap is a single bit read.
func (m *Matrix) IsOverlap(a, b domain.SessionID) bool {
	idx := m.index(a, b)
	return m.bits[idx/64]&(1<<(idx%64)) != 0
}

// Summarise renders each overlapping pair once, for problem.txt.
func (m *Matrix) Summarise(sessions []domain.Session) string {
	var report strings.Builder
	for i := range sessions {
		for j := i + 1; j < len(sessions); j++ {
			if m.IsOverlap(sessions[i].ID, sessions[j].ID) {
				fmt.Fprintf(&report, "%s and %s overlap\n",
					sessions[i].ShortDescription(), sessions[j].ShortDescription())
			}
		}
	}
	return report.String()
}
