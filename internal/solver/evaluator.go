package solver

import (
	"tlb-scheduler/internal/costs"
	"tlb-scheduler/internal/domain"
)

// EvalBuffer is the only allocation the inner loop needs: one
// session-id bucket per instructor. Buckets are cleared, not freed, so
// recycling the buffer across rounds keeps the evaluator
// allocation-free at steady state.
type EvalBuffer struct {
	perInstructor [][]domain.SessionID
}

func (b *EvalBuffer) reset(numInstructors int) {
	if b.perInstructor == nil {
		b.perInstructor = make([][]domain.SessionID, numInstructors)
	}
	for i := range b.perInstructor {
		b.perInstructor[i] = b.perInstructor[i][:0]
	}
}

// Evaluate maps the assignment to a cost breakdown. Pass nil to let it
// allocate a fresh buffer; pass the returned buffer back in to recycle
// it. Evaluation is a pure function of (assignment, problem).
func (s *Solution) Evaluate(problem *Problem, buffer *EvalBuffer) (costs.Count, *EvalBuffer) {
	var tally costs.Count

	if buffer == nil {
		buffer = &EvalBuffer{}
	}
	buffer.reset(len(problem.Instructors))
	buckets := buffer.perInstructor

	countMismatches := problem.CostConfig.ShouldCount(costs.MismatchedInitialSolution)

	for i, assigned := range s.Assignment {
		session := &problem.Sessions[i]

		if assigned == domain.NoInstructor {
			tally.Add1(costs.UnassignedSession)
		} else {
			switch problem.Availability.Get(session.ID, assigned) {
			case domain.Impossible:
				tally.Add1(costs.AssignedImpossible)
			case domain.Dislike:
				tally.Add1(costs.AssignedDislike)
			case domain.Possible:
				tally.Add1(costs.AssignedPossible)
			case domain.Preferred:
				tally.Add1(costs.AssignedPreferred)
			}
			buckets[assigned] = append(buckets[assigned], session.ID)
		}

		if countMismatches {
			if initial := problem.Initial.Assignment[i]; initial != domain.NoInstructor && initial != assigned {
				tally.Add1(costs.MismatchedInitialSolution)
			}
		}
	}

	countPadded := problem.CostConfig.ShouldCount(costs.PaddedOverlap)
	countSameDay := problem.CostConfig.ShouldCount(costs.SameDayOverlap)

	for i, instructor := range problem.Instructors {
		bucket := buckets[i]

		numClasses := uint8(len(bucket))
		var numTuts uint8
		for _, sessionID := range bucket {
			if problem.Sessions[sessionID].Type == domain.TutLab {
				numTuts++
			}
		}
		numLabs := numClasses - numTuts

		req := instructor.Requirement
		addShortfall(&tally, numTuts, req.MinTutes, req.MaxTutes, costs.BelowMinTut, costs.AboveMaxTut)
		addShortfall(&tally, numLabs, req.MinLabAssists, req.MaxLabAssists, costs.BelowMinLab, costs.AboveMaxLab)
		addShortfall(&tally, numClasses, req.MinTotal, req.MaxTotal, costs.BelowMinClass, costs.AboveMaxClass)

		// Ascending two-combination walk; the bucket is already in
		// ascending session order, which fixes tie-breaks. The three
		// overlap tiers are exclusive: a pair counts only for the
		// tightest relation it violates.
		for a := 0; a < len(bucket); a++ {
			for b := a + 1; b < len(bucket); b++ {
				first, second := bucket[a], bucket[b]
				if problem.OverlapSharp.IsOverlap(first, second) {
					tally.Add1(costs.DirectOverlap)
				} else if countPadded && problem.OverlapPadded.IsOverlap(first, second) {
					tally.Add1(costs.PaddedOverlap)
				} else if countSameDay && problem.OverlapSameDay.IsOverlap(first, second) {
					tally.Add1(costs.SameDayOverlap)
				}
			}
		}
	}

	return tally, buffer
}

func addShortfall(tally *costs.Count, actual, min, max uint8, below, above costs.Constraint) {
	if actual < min {
		tally.Add(below, uint32(min-actual))
	}
	if actual > max {
		tally.Add(above, uint32(actual-max))
	}
}
