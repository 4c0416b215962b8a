// Package costs defines the constraint taxonomy and the weighted-sum
// objective, including its "infinity" tier: a constraint may be
// weighted inf, and any violation of it makes the whole solution
// costless to compare — there is no total.
package costs

import (
	"fmt"
	"math"
	"strings"
)

// Constraint is the closed enumeration of countable violations.
type Constraint int

const (
	AssignedPreferred Constraint = iota
	AssignedPossible
	AssignedDislike
	AssignedImpossible
	UnassignedSession
	BelowMinTut
	BelowMinLab
	BelowMinClass
	AboveMaxTut
	AboveMaxLab
	AboveMaxClass
	DirectOverlap
	PaddedOverlap
	SameDayOverlap
	MismatchedInitialSolution

	NumConstraints int = iota
)

var constraintNames = [NumConstraints]string{
	"assigned_preferred",
	"assigned_possible",
	"assigned_dislike",
	"assigned_impossible",
	"unassigned_session",
	"below_min_tut",
	"below_min_lab",
	"below_min_class",
	"above_max_tut",
	"above_max_lab",
	"above_max_class",
	"direct_overlap",
	"padded_overlap",
	"same_day_overlap",
	"mismatched_initial_solution",
}

// AllConstraints lists every kind in declaration order, which is also
// the order counts and breakdowns are rendered in.
func AllConstraints() []Constraint {
	all := make([]Constraint, NumConstraints)
	for i := range all {
		all[i] = Constraint(i)
	}
	return all
}

func (c Constraint) String() string {
	if int(c) >= NumConstraints {
		return "INVALID_CONSTRAINT"
	}
	return constraintNames[c]
}

// Value is a finite cost weight or total.
type Value = uint64

// Count tallies how often each constraint kind is violated by one
// assignment.
type Count struct {
	counts [NumConstraints]uint32
}

func (c *Count) Add(kind Constraint, n uint32) {
	c.counts[kind] += n
}

func (c *Count) Add1(kind Constraint) {
	c.counts[kind]++
}

func (c *Count) Get(kind Constraint) uint32 {
	return c.counts[kind]
}

// String renders the "name: count" breakdown used in solver logs.
func (c *Count) String() string {
	var out strings.Builder
	for kind, count := range c.counts {
		fmt.Fprintf(&out, "%s: %d\n", Constraint(kind), count)
	}
	return out.String()
}

// Total reduces the counts against a config. The second result is
// false when the total is infinite: some inf-weighted constraint has a
// positive count, or the finite sum overflowed.
func (c *Count) Total(config *Config) (Value, bool) {
	var total Value

	for kind, count := range c.counts {
		weight, finite := config.Weight(Constraint(kind))
		if !finite {
			if count > 0 {
				return 0, false
			}
			continue
		}

		if weight != 0 && Value(count) > math.MaxUint64/weight {
			return 0, false
		}
		product := Value(count) * weight
		if total > math.MaxUint64-product {
			return 0, false
		}
		total += product
	}

	return total, true
}

// Config maps each constraint kind to a finite weight or infinity.
type Config struct {
	weights  [NumConstraints]Value
	infinite [NumConstraints]bool
}

// NewConfig returns an all-zero finite config; tests and the TOML
// parser fill it in.
func NewConfig() *Config {
	return &Config{}
}

func (cfg *Config) Set(kind Constraint, weight Value) {
	cfg.weights[kind] = weight
	cfg.infinite[kind] = false
}

func (cfg *Config) SetInfinite(kind Constraint) {
	cfg.infinite[kind] = true
}

// Weight returns (weight, true) for a finite kind and (_, false) for
// an infinite one.
func (cfg *Config) Weight(kind Constraint) (Value, bool) {
	if cfg.infinite[kind] {
		return 0, false
	}
	return cfg.weights[kind], true
}

// ShouldCount reports whether violations of the kind can affect the
// total at all. The evaluator skips bookkeeping for kinds that can't.
func (cfg *Config) ShouldCount(kind Constraint) bool {
	return cfg.infinite[kind] || cfg.weights[kind] != 0
}

// String renders the weight table for problem.txt.
func (cfg *Config) String() string {
	var out strings.Builder
	for _, kind := range AllConstraints() {
		if weight, finite := cfg.Weight(kind); finite {
			fmt.Fprintf(&out, "%s: %d\n", kind, weight)
		} else {
			fmt.Fprintf(&out, "%s: inf\n", kind)
		}
	}
	return out.String()
}

// FormatTotal renders a possibly-infinite total for logs and reports.
func FormatTotal(total Value, finite bool) string {
	if !finite {
		return "inf"
	}
	return fmt.Sprintf("%d", total)
}
