package attendance

import (
	"sort"

	"github.com/warp/attendance-engine/generic"
)

// HourlyHolidayTimes is the combined time covered by hourly leave, each
// request measured from 00:00 of its own request dates.
func (e *RequestEntity) HourlyHolidayTimes(completedOnly bool) generic.Intervals {
	var times generic.Intervals
	for _, h := range e.HolidayRequests(completedOnly) {
		if d := h.HourlyInterval(); d.IsValid() {
			times = generic.MergeInterval(times, d)
		}
	}
	return generic.Combine(times)
}

// HourlyHolidayMinutes is the total hourly leave on the day.
func (e *RequestEntity) HourlyHolidayMinutes(completedOnly bool) int {
	return generic.TotalMinutes(e.HourlyHolidayTimes(completedOnly))
}

// hourlyOnDay lists hourly leave measured from 00:00 of the entity's date,
// ordered by start.
func (e *RequestEntity) hourlyOnDay() generic.Intervals {
	var list generic.Intervals
	for _, h := range e.HolidayRequests(false) {
		if h.Range != RangeHourly {
			continue
		}
		d := generic.NewInterval(
			generic.MinutesFrom(h.StartTime, e.date),
			generic.MinutesFrom(h.EndTime, e.date),
		)
		if d.IsValid() {
			list = append(list, d)
		}
	}
	return generic.Sort(list)
}

// HourlyHolidayFirstSequence is the chain of back-to-back hourly leave
// starting with the earliest one. Invalid when there is none.
func (e *RequestEntity) HourlyHolidayFirstSequence() generic.Interval {
	list := e.hourlyOnDay()
	if len(list) == 0 {
		return generic.InvalidInterval()
	}
	start, end := list[0].Start(), list[0].End()
	for _, d := range list[1:] {
		if d.Start() != end {
			break
		}
		end = d.End()
	}
	return generic.NewInterval(start, end)
}

// HourlyHolidayLastSequence is the chain of back-to-back hourly leave
// ending with the latest one. Invalid when there is none.
func (e *RequestEntity) HourlyHolidayLastSequence() generic.Interval {
	list := e.hourlyOnDay()
	if len(list) == 0 {
		return generic.InvalidInterval()
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Start() > list[j].Start() })
	start, end := list[0].Start(), list[0].End()
	for _, d := range list[1:] {
		if d.End() != start {
			break
		}
		start = d.Start()
	}
	return generic.NewInterval(start, end)
}
