/*
Package generic provides the domain-agnostic building blocks of the attendance engine.

PURPOSE:
  Everything in this package is pure arithmetic over minutes, day counts and
  workflow states. Nothing here knows what a paid holiday or an overtime
  request is; the attendance package layers those meanings on top.

KEY CONCEPTS IN THIS FILE (types.go):
  - PersonID / WorkflowID: Type-safe identifiers
  - RoundingMode: How calculated figures are rounded for callers

DESIGN PRINCIPLES:
  1. Immutability: Intervals are values, operations return new ones
  2. Precision: Day counts use decimal.Decimal, never float32 sums
  3. Totality: Algebra functions accept empty input and never panic
  4. No I/O: Lookups are injected as read-only interfaces

USAGE:
  day := generic.NewInterval(540, 1080)
  rounded := generic.Round(decimal.NewFromFloat(2.345), 2, generic.RoundHalfUp)

SEE ALSO:
  - interval.go: Interval value and single-interval operations
  - intervals.go: Collection algebra (combine, merge, gap, reach)
  - workflow.go: Workflow status classifier
  - entitlement.go: Day/hour carry-over arithmetic
*/
package generic

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type PersonID string

// WorkflowID identifies one approval workflow. Every request record carries
// exactly one; zero means "no workflow attached".
type WorkflowID int64

// =============================================================================
// ROUNDING
// =============================================================================

type RoundingMode string

const (
	RoundNone    RoundingMode = "none"
	RoundFloor   RoundingMode = "floor"
	RoundCeiling RoundingMode = "ceiling"
	RoundHalfUp  RoundingMode = "half_up"
)

// ParseRoundingMode accepts the mode names case-insensitively. An empty
// string selects RoundHalfUp.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoundHalfUp, "halfup", "half-up":
		return RoundHalfUp, nil
	case RoundNone:
		return RoundNone, nil
	case RoundFloor, "down":
		return RoundFloor, nil
	case RoundCeiling, "ceil", "up":
		return RoundCeiling, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoundingMode, s)
}

// Round rounds value to scale decimal places.
//
// RoundHalfUp rounds 0.5 away from zero (2.345 -> 2.35, -2.345 -> -2.35).
// RoundFloor and RoundCeiling round toward negative and positive infinity.
// RoundNone returns value untouched.
func Round(value decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundFloor:
		return value.RoundFloor(scale)
	case RoundCeiling:
		return value.RoundCeil(scale)
	case RoundHalfUp:
		return value.Round(scale)
	default:
		return value
	}
}

// RoundHalfUp2 rounds to two decimal places, half away from zero.
func RoundHalfUp2(value decimal.Decimal) decimal.Decimal {
	return Round(value, 2, RoundHalfUp)
}
