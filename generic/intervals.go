/*
intervals.go - Interval collection algebra

PURPOSE:
  Pure functions over ordered collections of Intervals. These back every
  time-range computation in the engine: hourly holiday windows, rest-time
  exclusion, deep-night premium splitting.

INVARIANTS:
  - Combine(c) is sorted by start, holds no invalid members, and no two of its
    members touch or overlap. Combine(Combine(c)) == Combine(c).
  - Merge(a, b) == Merge(b, a), and it covers at least as many minutes as
    either side.
  - Every function accepts nil/empty input and returns nil, an empty
    collection, or the invalid interval. None of them panics.

EXAMPLE:
  work := generic.Intervals{generic.NewInterval(540, 720), generic.NewInterval(780, 1080)}
  rests := generic.Intervals{generic.NewInterval(720, 780)}

  generic.Gap(work)                    // [720,780)
  generic.ReachTime(540, 60, rests)    // 600
  generic.IsOverlapping(append(work, rests...)) // false (touching only)
*/
package generic

import "sort"

// Intervals is a collection of intervals ordered by start minute.
type Intervals []Interval

// Minutes sums the members as given, counting overlapping minutes twice.
// Use TotalMinutes for covered minutes.
func (c Intervals) Minutes() int {
	total := 0
	for _, d := range c {
		total += d.Minutes()
	}
	return total
}

// Equal reports whether both collections hold the same intervals in order.
func (c Intervals) Equal(other Intervals) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// =============================================================================
// SORT / COMBINE / MERGE
// =============================================================================

// Sort returns the valid members of c ordered by start, then end.
func Sort(c Intervals) Intervals {
	sorted := make(Intervals, 0, len(c))
	for _, d := range c {
		if d.IsValid() {
			sorted = append(sorted, d)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})
	return sorted
}

// Combine merges touching and overlapping members into maximal disjoint
// intervals.
func Combine(c Intervals) Intervals {
	var combined Intervals
	for _, d := range Sort(c) {
		if len(combined) == 0 {
			combined = append(combined, d)
			continue
		}
		last := combined[len(combined)-1]
		if d.start <= last.end {
			combined[len(combined)-1] = NewInterval(last.start, max(last.end, d.end))
			continue
		}
		combined = append(combined, d)
	}
	return combined
}

// Merge unions two collections.
func Merge(a, b Intervals) Intervals {
	combinedA := Combine(a)
	combinedB := Combine(b)
	if len(combinedA) == 0 || len(combinedB) == 0 {
		return Combine(append(combinedA, combinedB...))
	}
	merged := append(Intervals{}, combinedA...)
	for _, d := range combinedB {
		merged = append(merged, d.NotOverlapWith(combinedA)...)
	}
	return Combine(merged)
}

// MergeInterval unions one interval into a collection.
func MergeInterval(c Intervals, d Interval) Intervals {
	return Merge(c, Intervals{d})
}

// =============================================================================
// OVERLAP
// =============================================================================

// Overlap returns the parts of d inside any member of c.
func Overlap(d Interval, c Intervals) Intervals {
	return d.OverlapWith(c)
}

// NotOverlap returns the parts of d outside every member of c.
func NotOverlap(d Interval, c Intervals) Intervals {
	return d.NotOverlapWith(c)
}

// OverlapAll returns the minutes of c that are also covered by targets.
func OverlapAll(c, targets Intervals) Intervals {
	var parts Intervals
	for _, d := range Combine(c) {
		parts = append(parts, d.OverlapWith(targets)...)
	}
	return Combine(parts)
}

// NotOverlapAll returns the minutes of c not covered by targets.
func NotOverlapAll(c, targets Intervals) Intervals {
	var parts Intervals
	for _, d := range Combine(c) {
		parts = append(parts, d.NotOverlapWith(targets)...)
	}
	return Combine(parts)
}

// IsOverlapping reports whether any two members of c share a minute.
// Touching members do not count.
func IsOverlapping(c Intervals) bool {
	return Sort(c).Minutes() > TotalMinutes(c)
}

// =============================================================================
// SPAN / GAP / TOTALS
// =============================================================================

// Span returns [min start, max end) of c, or the invalid interval for an
// empty collection.
func Span(c Intervals) Interval {
	combined := Combine(c)
	if len(combined) == 0 {
		return InvalidInterval()
	}
	return NewInterval(combined[0].start, combined[len(combined)-1].end)
}

// Gap returns the uncovered parts of c's span.
func Gap(c Intervals) Intervals {
	span := Span(c)
	if !span.IsValid() {
		return nil
	}
	return span.NotOverlapWith(c)
}

// TotalMinutes returns the minutes covered by c.
func TotalMinutes(c Intervals) int {
	return Combine(c).Minutes()
}

// =============================================================================
// CONSUMPTION
// =============================================================================

// RemoveTime drops the first n covered minutes of c.
func RemoveTime(c Intervals, n int) Intervals {
	remain := max(n, 0)
	var removed Intervals
	for _, d := range Combine(c) {
		if remain == 0 {
			removed = append(removed, d)
			continue
		}
		if d.Minutes() <= remain {
			remain -= d.Minutes()
			continue
		}
		removed = append(removed, NewInterval(d.start+remain, d.end))
		remain = 0
	}
	return Combine(removed)
}

// ReachTimes returns the first n covered minutes of c.
func ReachTimes(c Intervals, n int) Intervals {
	return NotOverlapAll(c, RemoveTime(c, n))
}

// ReachTime walks forward from start and returns the minute at which n
// minutes outside excludes have elapsed. Excluded minutes are skipped.
func ReachTime(start, n int, excludes Intervals) int {
	if n <= 0 {
		return start
	}
	current := start
	progress := 0
	for _, d := range Combine(excludes) {
		if d.Contains(current) {
			current = d.end
			continue
		}
		if current < d.start {
			progress += d.start - current
			current = d.end
		}
		if progress < n {
			continue
		}
		return d.start - (progress - n)
	}
	return current + (n - progress)
}

// =============================================================================
// CLIPPING
// =============================================================================

// BeforeTimes clips c to the minutes before t.
func BeforeTimes(c Intervals, t int) Intervals {
	var clipped Intervals
	for _, d := range Combine(c) {
		clipped = append(clipped, d.Before(t))
	}
	return Combine(clipped)
}

// AfterTimes clips c to the minutes at or after t.
func AfterTimes(c Intervals, t int) Intervals {
	var clipped Intervals
	for _, d := range Combine(c) {
		clipped = append(clipped, d.After(t))
	}
	return Combine(clipped)
}

// ContainTime returns the combined member of c holding minute t, or the
// invalid interval.
func ContainTime(c Intervals, t int) Interval {
	for _, d := range Combine(c) {
		if d.Contains(t) {
			return d
		}
	}
	return InvalidInterval()
}
