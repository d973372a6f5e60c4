/*
Package tabular provides the generic aggregation machinery for the
insights engine.

PURPOSE:
  This package contains domain-agnostic grouping and summarization
  primitives over keyed decimal observations. Whether summing revenue by
  category, counting distinct orders, or averaging review scores per
  delivery bucket, the same handful of operations apply.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry:  A (key, decimal value) pair in an ordered result sequence
  - Share:  A (value, percentage) pair in a frequency distribution
  - Ratio:  A growth rate that remembers whether a baseline existed
  - Maybe:  A first-class "undefined" distinct from a numeric zero

DESIGN PRINCIPLES:
  1. Immutability: every operation returns a fresh result; inputs are
     never modified
  2. Precision: decimal.Decimal for all monetary sums and means
  3. Determinism: identical inputs yield identical output ordering
     (map iteration is always funneled through sorted keys)

SEE ALSO:
  - aggregate.go: The grouping/summarization operations
*/
package tabular

import (
	"cmp"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTRY - One row of an ordered aggregation result
// =============================================================================

// Entry is a single keyed value in an ordered result sequence.
type Entry[K comparable] struct {
	Key   K
	Value decimal.Decimal
}

// Share is one value of a frequency distribution, as a percentage of the
// whole (0-100).
type Share[K comparable] struct {
	Value   K
	Percent decimal.Decimal
}

// Pair is a keyed decimal observation fed into MeanBy.
type Pair[K comparable] struct {
	Key   K
	Value decimal.Decimal
}

// =============================================================================
// RATIO - Growth rate with explicit baseline flag
// =============================================================================

// Ratio is a relative change (current-previous)/previous.
//
// When the previous period has no data there is nothing to divide by; the
// engine's policy is to report 0 rather than an error or infinity, and
// Baseline=false records that the 0 is a policy value, not a measured
// flat rate.
type Ratio struct {
	Value    decimal.Decimal
	Baseline bool
}

// GrowthRate computes (current-previous)/previous.
// previous == 0 yields Ratio{Value: 0, Baseline: false}.
func GrowthRate(current, previous decimal.Decimal) Ratio {
	if previous.IsZero() {
		return Ratio{Value: decimal.Zero, Baseline: false}
	}
	return Ratio{Value: current.Sub(previous).Div(previous), Baseline: true}
}

// =============================================================================
// MAYBE - First-class undefined
// =============================================================================

// Maybe holds a value that may be undefined. An undefined mean (empty
// group) or an undefined first-month growth must stay distinguishable
// from a genuine zero, so callers check Defined before formatting.
type Maybe[T any] struct {
	Value   T
	Defined bool
}

// Some wraps a defined value.
func Some[T any](v T) Maybe[T] { return Maybe[T]{Value: v, Defined: true} }

// None is the undefined value.
func None[T any]() Maybe[T] { return Maybe[T]{} }

// Or returns the value, or fallback when undefined.
func (m Maybe[T]) Or(fallback T) T {
	if m.Defined {
		return m.Value
	}
	return fallback
}

// compareKeys is the deterministic ordering used for map iteration.
func compareKeys[K cmp.Ordered](a, b K) int { return cmp.Compare(a, b) }
