/*
entity.go - Per-person, per-day request aggregate

PURPOSE:
  A RequestEntity holds everything filed for one person on one date and
  answers "what kind of day is this?" Every query filters the raw records
  through the workflow classifier first, so a request only shapes the day
  while its approval workflow is in effect.

KEY CONCEPTS:
  completedOnly:
    false - anything applied and not withdrawn/cancelled is in effect
    true  - only fully approved requests are in effect

  Work type resolution (first match wins):
    1. attendance record, when considered
    2. all-day holiday    -> substitute type of the transfer holiday, or ""
    3. work type change   -> its work type
    4. work on holiday    -> substituted work type
    5. scheduled work type

  Half days:
    A half transfer holiday and a half work-on-holiday substitute on the
    opposite half cancel out into "the substitute of a substitute": the AM
    half is a holiday when working the PM half is substituted, unless a PM
    transfer holiday already covers that.

SEE ALSO:
  - hourly.go:  Hourly holiday windows
  - totals.go:  Numeric day and hour aggregates
  - summary.go: One-shot DaySummary of all of the above
*/
package attendance

import (
	"fmt"

	"github.com/warp/attendance-engine/generic"
)

// RequestEntity is immutable after construction.
type RequestEntity struct {
	personID generic.PersonID
	date     generic.Date

	scheduledWorkType   string
	substitutedWorkType string

	holidays    []HolidayRequest
	subHolidays []SubHolidayRequest
	substitutes []SubstituteHoliday
	overtimes   []OvertimeRequest

	workOnHoliday  *WorkOnHolidayRequest
	difference     *DifferenceRequest
	workTypeChange *WorkTypeChangeRequest
	attendance     *AttendanceRecord

	workflows generic.Classifier
}

// NewRequestEntity sorts the day's records into their kinds. Single-instance
// kinds may have at most one applied record; a record whose workflow is not
// applied gives way to one that is, so withdrawing and refiling is fine.
func NewRequestEntity(records DayRecords, workflows generic.WorkflowLookup) (*RequestEntity, error) {
	e := &RequestEntity{
		personID:            records.PersonID,
		date:                records.Date,
		scheduledWorkType:   records.ScheduledWorkType,
		substitutedWorkType: records.SubstitutedWorkType,
		workflows:           generic.NewClassifier(workflows),
	}

	for _, r := range records.Requests {
		var err error
		switch v := r.(type) {
		case HolidayRequest:
			e.holidays = append(e.holidays, v)
		case SubHolidayRequest:
			e.subHolidays = append(e.subHolidays, v)
		case SubstituteHoliday:
			e.substitutes = append(e.substitutes, v)
		case OvertimeRequest:
			e.overtimes = append(e.overtimes, v)
		case WorkOnHolidayRequest:
			e.workOnHoliday, err = single(e.workflows, e.workOnHoliday, v)
		case DifferenceRequest:
			e.difference, err = single(e.workflows, e.difference, v)
		case WorkTypeChangeRequest:
			e.workTypeChange, err = single(e.workflows, e.workTypeChange, v)
		case AttendanceRecord:
			e.attendance, err = single(e.workflows, e.attendance, v)
		default:
			err = fmt.Errorf("%w: %T", generic.ErrUnknownRequestKind, r)
		}
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func single[T Request](c generic.Classifier, existing *T, v T) (*T, error) {
	if existing == nil {
		return &v, nil
	}
	kept, incoming := c.IsApplied((*existing).WorkflowID()), c.IsApplied(v.WorkflowID())
	switch {
	case kept && incoming:
		return nil, &generic.RecordError{
			Kind:     string(v.Kind()),
			RecordID: v.Header().ID,
			Err:      generic.ErrDuplicateDayRecord,
		}
	case kept:
		return existing, nil
	}
	return &v, nil
}

func (e *RequestEntity) PersonID() generic.PersonID { return e.personID }
func (e *RequestEntity) Date() generic.Date          { return e.date }
func (e *RequestEntity) ScheduledWorkType() string   { return e.scheduledWorkType }

// =============================================================================
// FILTERS - Records whose workflow is in effect
// =============================================================================

func inEffect[T Request](c generic.Classifier, list []T, completedOnly bool) []T {
	var out []T
	for _, r := range list {
		if c.InEffect(r.WorkflowID(), completedOnly) {
			out = append(out, r)
		}
	}
	return out
}

func singleInEffect[T Request](c generic.Classifier, r *T, completedOnly bool) *T {
	if r == nil || !c.InEffect((*r).WorkflowID(), completedOnly) {
		return nil
	}
	return r
}

func anyCounts[T Request](c generic.Classifier, list []T, includeCompleted bool) bool {
	for _, r := range list {
		if c.Counts(r.WorkflowID(), includeCompleted) {
			return true
		}
	}
	return false
}

func singleCounts[T Request](c generic.Classifier, r *T, includeCompleted bool) bool {
	return r != nil && c.Counts((*r).WorkflowID(), includeCompleted)
}

func hasRange[T ranged](list []T, rng HolidayRange) bool {
	for _, r := range list {
		if r.HolidayRange() == rng {
			return true
		}
	}
	return false
}

func (e *RequestEntity) HolidayRequests(completedOnly bool) []HolidayRequest {
	return inEffect(e.workflows, e.holidays, completedOnly)
}

func (e *RequestEntity) SubHolidayRequests(completedOnly bool) []SubHolidayRequest {
	return inEffect(e.workflows, e.subHolidays, completedOnly)
}

func (e *RequestEntity) SubstituteHolidays(completedOnly bool) []SubstituteHoliday {
	return inEffect(e.workflows, e.substitutes, completedOnly)
}

func (e *RequestEntity) OvertimeRequests(completedOnly bool) []OvertimeRequest {
	return inEffect(e.workflows, e.overtimes, completedOnly)
}

// WorkOnHolidayRequest returns nil when none is in effect.
func (e *RequestEntity) WorkOnHolidayRequest(completedOnly bool) *WorkOnHolidayRequest {
	return singleInEffect(e.workflows, e.workOnHoliday, completedOnly)
}

func (e *RequestEntity) DifferenceRequest(completedOnly bool) *DifferenceRequest {
	return singleInEffect(e.workflows, e.difference, completedOnly)
}

func (e *RequestEntity) WorkTypeChangeRequest(completedOnly bool) *WorkTypeChangeRequest {
	return singleInEffect(e.workflows, e.workTypeChange, completedOnly)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// HasAttendance reports whether an attendance record was filed at all.
func (e *RequestEntity) HasAttendance() bool { return e.attendance != nil }

func (e *RequestEntity) IsAttendanceApplied() bool {
	return e.attendance != nil && e.workflows.IsApplied(e.attendance.WorkflowID())
}

func (e *RequestEntity) IsAttendanceDirectStart() bool {
	return e.attendance != nil && e.attendance.DirectStart
}

func (e *RequestEntity) IsAttendanceDirectEnd() bool {
	return e.attendance != nil && e.attendance.DirectEnd
}

// =============================================================================
// WORK ON HOLIDAY
// =============================================================================

func (e *RequestEntity) hasWorkOnHolidayMode(mode SubstituteMode, completedOnly bool) bool {
	w := e.WorkOnHolidayRequest(completedOnly)
	return w != nil && w.Substitute == mode
}

// IsWorkOnHolidayNotSubstitute is true for plain holiday work with no
// transfer day.
func (e *RequestEntity) IsWorkOnHolidayNotSubstitute(completedOnly bool) bool {
	return e.hasWorkOnHolidayMode(SubstituteNone, completedOnly)
}

// IsWorkOnHolidaySubstitute is true when the holiday work earns a transfer
// day, whole or half.
func (e *RequestEntity) IsWorkOnHolidaySubstitute(completedOnly bool) bool {
	w := e.WorkOnHolidayRequest(completedOnly)
	return w != nil && w.Substitute != SubstituteNone
}

func (e *RequestEntity) IsWorkOnLegal(completedOnly bool) bool {
	w := e.WorkOnHolidayRequest(completedOnly)
	return w != nil && w.Substitute == SubstituteNone && w.WorkOnHolidayType == WorkTypeLegalHoliday
}

func (e *RequestEntity) IsWorkOnPrescribed(completedOnly bool) bool {
	w := e.WorkOnHolidayRequest(completedOnly)
	return w != nil && w.Substitute == SubstituteNone && w.WorkOnHolidayType == WorkTypePrescribedHoliday
}

// WorkOnHolidayWorkType is the substituted work type while a work-on-holiday
// request is in effect, "" otherwise.
func (e *RequestEntity) WorkOnHolidayWorkType(completedOnly bool) string {
	if e.WorkOnHolidayRequest(completedOnly) == nil {
		return ""
	}
	return e.substitutedWorkType
}

// WorkOnHolidayTime is the requested working time of a not-substituted
// holiday work, in minutes from 00:00 of the day. Invalid otherwise.
func (e *RequestEntity) WorkOnHolidayTime(completedOnly bool) generic.Interval {
	w := e.WorkOnHolidayRequest(completedOnly)
	if w == nil || w.Substitute != SubstituteNone {
		return generic.InvalidInterval()
	}
	return generic.NewInterval(
		generic.MinutesFrom(w.StartTime, w.Date),
		generic.MinutesFrom(w.EndTime, w.Date),
	)
}

// =============================================================================
// HOLIDAY CLASSIFICATION
// =============================================================================

func (e *RequestEntity) hasAllHoliday(completedOnly bool) bool {
	if hasRange(e.HolidayRequests(completedOnly), RangeAll) && !e.IsWorkOnHolidayNotSubstitute(completedOnly) {
		return true
	}
	if hasRange(e.SubHolidayRequests(completedOnly), RangeAll) {
		return true
	}
	return hasRange(e.SubstituteHolidays(completedOnly), RangeAll) && e.WorkOnHolidayRequest(completedOnly) == nil
}

func (e *RequestEntity) hasHalfHoliday(half, other HolidayRange, completedOnly bool) bool {
	if hasRange(e.HolidayRequests(completedOnly), half) || hasRange(e.SubHolidayRequests(completedOnly), half) {
		return true
	}
	substitutes := e.SubstituteHolidays(completedOnly)
	if hasRange(substitutes, half) && !e.hasWorkOnHolidayMode(modeOf(half), completedOnly) {
		return true
	}
	return e.hasWorkOnHolidayMode(modeOf(other), completedOnly) && !hasRange(substitutes, other)
}

func modeOf(half HolidayRange) SubstituteMode {
	if half == RangeAM {
		return SubstituteAM
	}
	return SubstitutePM
}

// IsAllHoliday is true for a full-day holiday or when both halves are off.
func (e *RequestEntity) IsAllHoliday(completedOnly bool) bool {
	return e.hasAllHoliday(completedOnly) ||
		(e.hasHalfHoliday(RangeAM, RangePM, completedOnly) && e.hasHalfHoliday(RangePM, RangeAM, completedOnly))
}

// IsAmHoliday is true when only the morning is off.
func (e *RequestEntity) IsAmHoliday(completedOnly bool) bool {
	return !e.hasAllHoliday(completedOnly) &&
		!e.hasHalfHoliday(RangePM, RangeAM, completedOnly) &&
		e.hasHalfHoliday(RangeAM, RangePM, completedOnly)
}

// IsPmHoliday is true when only the afternoon is off.
func (e *RequestEntity) IsPmHoliday(completedOnly bool) bool {
	return !e.hasAllHoliday(completedOnly) &&
		!e.hasHalfHoliday(RangeAM, RangePM, completedOnly) &&
		e.hasHalfHoliday(RangePM, RangeAM, completedOnly)
}

// IsHourlyHoliday is true when any hourly leave is in effect.
func (e *RequestEntity) IsHourlyHoliday(completedOnly bool) bool {
	return hasRange(e.HolidayRequests(completedOnly), RangeHourly)
}

// IsAmPmHalfSubstitute is true when the two halves are each covered by a
// transfer holiday of their own.
func (e *RequestEntity) IsAmPmHalfSubstitute(completedOnly bool) bool {
	substitutes := e.SubstituteHolidays(completedOnly)
	return hasRange(substitutes, RangeAM) && hasRange(substitutes, RangePM)
}

// IsHalfPostpone is true when half the holiday is worked and a half
// transfer holiday falls on the same day, whichever halves they are.
func (e *RequestEntity) IsHalfPostpone(completedOnly bool) bool {
	substitutes := e.SubstituteHolidays(completedOnly)
	halfWork := e.hasWorkOnHolidayMode(SubstituteAM, completedOnly) || e.hasWorkOnHolidayMode(SubstitutePM, completedOnly)
	return halfWork && (hasRange(substitutes, RangeAM) || hasRange(substitutes, RangePM))
}

// SubstituteType is the holiday type a transfer holiday stands in for: that
// of an all-day transfer, prescribed for an AM+PM pair, "" otherwise.
func (e *RequestEntity) SubstituteType(completedOnly bool) string {
	substitutes := e.SubstituteHolidays(completedOnly)
	for _, s := range substitutes {
		if s.Range == RangeAll {
			return s.SubstituteType
		}
	}
	if hasRange(substitutes, RangeAM) && hasRange(substitutes, RangePM) {
		return WorkTypePrescribedHoliday
	}
	return ""
}

// =============================================================================
// WORK TYPE / WORK DAY
// =============================================================================

// WorkType resolves the day's work type.
func (e *RequestEntity) WorkType(attendanceConsidered, completedOnly bool) string {
	if attendanceConsidered && e.attendance != nil {
		return e.attendance.WorkTypeCode
	}
	if e.IsAllHoliday(completedOnly) {
		return e.SubstituteType(completedOnly)
	}
	if c := e.WorkTypeChangeRequest(completedOnly); c != nil {
		return c.WorkTypeCode
	}
	if e.WorkOnHolidayRequest(completedOnly) != nil {
		return e.substitutedWorkType
	}
	return e.scheduledWorkType
}

// IsWorkDay reports whether the person is expected to work.
func (e *RequestEntity) IsWorkDay() bool {
	if e.IsAllHoliday(false) {
		return false
	}
	if e.WorkOnHolidayRequest(true) != nil {
		return true
	}
	return !IsHolidayWorkType(e.scheduledWorkType)
}

// IsAttendanceAppliable is true on a work day with nothing filed yet.
func (e *RequestEntity) IsAttendanceAppliable() bool {
	if !e.IsWorkDay() || e.IsAttendanceApplied() {
		return false
	}
	return !e.OvertimeApplied(false) &&
		!e.HolidayApplied(false) &&
		!e.SubHolidayApplied(false) &&
		!e.WorkOnHolidayApplied(false) &&
		!e.SubstituteApplied(false) &&
		!e.DifferenceApplied(false) &&
		!e.WorkTypeChangeApplied(false)
}

// =============================================================================
// APPLIED - Per-kind "still relevant" reads
// =============================================================================

func (e *RequestEntity) OvertimeApplied(includeCompleted bool) bool {
	return anyCounts(e.workflows, e.overtimes, includeCompleted)
}

func (e *RequestEntity) HolidayApplied(includeCompleted bool) bool {
	return anyCounts(e.workflows, e.holidays, includeCompleted)
}

func (e *RequestEntity) SubHolidayApplied(includeCompleted bool) bool {
	return anyCounts(e.workflows, e.subHolidays, includeCompleted)
}

func (e *RequestEntity) SubstituteApplied(includeCompleted bool) bool {
	return anyCounts(e.workflows, e.substitutes, includeCompleted)
}

func (e *RequestEntity) WorkOnHolidayApplied(includeCompleted bool) bool {
	return singleCounts(e.workflows, e.workOnHoliday, includeCompleted)
}

func (e *RequestEntity) DifferenceApplied(includeCompleted bool) bool {
	return singleCounts(e.workflows, e.difference, includeCompleted)
}

func (e *RequestEntity) WorkTypeChangeApplied(includeCompleted bool) bool {
	return singleCounts(e.workflows, e.workTypeChange, includeCompleted)
}

// =============================================================================
// OVERTIME
// =============================================================================

func (e *RequestEntity) overtimeMinutes(t OvertimeType, completedOnly bool) int {
	for _, o := range e.OvertimeRequests(completedOnly) {
		if o.Type == t {
			return o.RequestMinutes
		}
	}
	return 0
}

// OvertimeMinutesBeforeWork is the first early overtime request's minutes.
func (e *RequestEntity) OvertimeMinutesBeforeWork(completedOnly bool) int {
	return e.overtimeMinutes(OvertimeBeforeWork, completedOnly)
}

// OvertimeMinutesAfterWork is the first late overtime request's minutes.
func (e *RequestEntity) OvertimeMinutesAfterWork(completedOnly bool) int {
	return e.overtimeMinutes(OvertimeAfterWork, completedOnly)
}
