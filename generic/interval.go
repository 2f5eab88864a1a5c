package generic

import "fmt"

// =============================================================================
// INTERVAL - Half-open minute range [start, end)
// =============================================================================

// Interval is a half-open range of minutes counted from 00:00 of a target
// day. Minutes past 1440 belong to the following day.
//
// The zero value is the invalid interval. A valid interval always satisfies
// 0 <= start < end; NewInterval returns the invalid interval otherwise, so
// [0,0) can never be mistaken for a real range.
type Interval struct {
	start int
	end   int
	valid bool
}

// NewInterval returns [start, end) or the invalid interval.
func NewInterval(start, end int) Interval {
	if start < 0 || start >= end {
		return Interval{}
	}
	return Interval{start: start, end: end, valid: true}
}

// InvalidInterval returns the "no interval" value.
func InvalidInterval() Interval { return Interval{} }

func (d Interval) IsValid() bool { return d.valid }

// Bounds returns start and end. ok is false for the invalid interval.
func (d Interval) Bounds() (start, end int, ok bool) {
	return d.start, d.end, d.valid
}

// Start returns the start minute, or 0 when invalid. Check IsValid first.
func (d Interval) Start() int { return d.start }

// End returns the end minute, or 0 when invalid. Check IsValid first.
func (d Interval) End() int { return d.end }

// Minutes is the length of the interval; 0 when invalid.
func (d Interval) Minutes() int {
	if !d.valid {
		return 0
	}
	return d.end - d.start
}

// Contains reports whether minute t lies in [start, end).
func (d Interval) Contains(t int) bool {
	return d.valid && d.start <= t && t < d.end
}

// Equal compares two intervals. All invalid intervals are equal.
func (d Interval) Equal(other Interval) bool {
	if !d.valid || !other.valid {
		return d.valid == other.valid
	}
	return d.start == other.start && d.end == other.end
}

// Overlap returns the common part of d and other, or the invalid interval.
func (d Interval) Overlap(other Interval) Interval {
	if !d.valid || !other.valid {
		return Interval{}
	}
	return NewInterval(max(d.start, other.start), min(d.end, other.end))
}

// NotOverlap returns the parts of d outside other, ordered by start.
func (d Interval) NotOverlap(other Interval) Intervals {
	if !d.valid {
		return nil
	}
	if !d.Overlap(other).IsValid() {
		return Intervals{d}
	}
	var parts Intervals
	if before := NewInterval(d.start, other.start); before.IsValid() {
		parts = append(parts, before)
	}
	if after := NewInterval(other.end, d.end); after.IsValid() {
		parts = append(parts, after)
	}
	return parts
}

// OverlapWith returns the parts of d covered by any member of c.
func (d Interval) OverlapWith(c Intervals) Intervals {
	var parts Intervals
	for _, member := range Combine(c) {
		if o := d.Overlap(member); o.IsValid() {
			parts = append(parts, o)
		}
	}
	return parts
}

// NotOverlapWith returns the parts of d not covered by any member of c.
func (d Interval) NotOverlapWith(c Intervals) Intervals {
	if !d.valid {
		return nil
	}
	remaining := Intervals{d}
	for _, member := range Combine(c) {
		var next Intervals
		for _, r := range remaining {
			next = append(next, r.NotOverlap(member)...)
		}
		remaining = next
	}
	return remaining
}

// Before returns the part of d that lies before minute t.
func (d Interval) Before(t int) Interval {
	if !d.valid {
		return Interval{}
	}
	return NewInterval(d.start, min(d.end, t))
}

// After returns the part of d that lies at or after minute t.
func (d Interval) After(t int) Interval {
	if !d.valid {
		return Interval{}
	}
	return NewInterval(max(d.start, t), d.end)
}

func (d Interval) String() string {
	if !d.valid {
		return "[invalid)"
	}
	return fmt.Sprintf("[%d,%d)", d.start, d.end)
}
