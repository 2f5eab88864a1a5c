package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/attendance-engine/generic"
)

// =============================================================================
// REQUEST - Sealed union of everything that can be filed for a day
// =============================================================================

type RequestKind string

const (
	KindHoliday        RequestKind = "holiday"
	KindSubHoliday     RequestKind = "sub_holiday"
	KindSubstitute     RequestKind = "substitute"
	KindWorkOnHoliday  RequestKind = "work_on_holiday"
	KindOvertime       RequestKind = "overtime"
	KindDifference     RequestKind = "difference"
	KindWorkTypeChange RequestKind = "work_type_change"
	KindAttendance     RequestKind = "attendance"
)

// Request is implemented only by the record types in this file.
type Request interface {
	Kind() RequestKind
	WorkflowID() generic.WorkflowID
	Header() RequestHeader
	isRequest()
}

// RequestHeader is shared by every record.
type RequestHeader struct {
	ID       string             `json:"id,omitempty"`
	PersonID generic.PersonID   `json:"person_id"`
	Date     generic.Date       `json:"date"`
	Workflow generic.WorkflowID `json:"workflow_id"`
}

func (h RequestHeader) WorkflowID() generic.WorkflowID { return h.Workflow }
func (h RequestHeader) Header() RequestHeader          { return h }
func (RequestHeader) isRequest()                       {}

// ranged is a record carrying a holiday range.
type ranged interface {
	Request
	HolidayRange() HolidayRange
}

// HolidayRequest is a leave request (paid, stock, special, other, absence).
type HolidayRequest struct {
	RequestHeader
	Category    HolidayCategory `json:"category"`
	HolidayCode string          `json:"holiday_code,omitempty"`
	Range       HolidayRange    `json:"range"`

	// Clock times of an hourly request, on RequestStartDate / RequestEndDate.
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`

	RequestStartDate generic.Date `json:"request_start_date"`
	RequestEndDate   generic.Date `json:"request_end_date"`

	// UseDays is informational, as filed; day totals are derived from Range.
	UseDays  decimal.Decimal `json:"use_days"`
	UseHours int             `json:"use_hours"`
}

func (HolidayRequest) Kind() RequestKind            { return KindHoliday }
func (r HolidayRequest) HolidayRange() HolidayRange { return r.Range }

// HourlyInterval is the minutes an hourly request covers, counted from
// 00:00 of its own request dates.
func (r HolidayRequest) HourlyInterval() generic.Interval {
	if r.Range != RangeHourly {
		return generic.InvalidInterval()
	}
	return generic.NewInterval(
		generic.MinutesFrom(r.StartTime, r.RequestStartDate),
		generic.MinutesFrom(r.EndTime, r.RequestEndDate),
	)
}

// isType matches the category and, when code is set, the second-level code.
func (r HolidayRequest) isType(category HolidayCategory, code string) bool {
	if r.Category != category {
		return false
	}
	return code == "" || r.HolidayCode == code
}

// SubHolidayRequest takes a compensatory day off.
type SubHolidayRequest struct {
	RequestHeader
	Range HolidayRange   `json:"range"`
	Type  SubHolidayType `json:"type,omitempty"`
}

func (SubHolidayRequest) Kind() RequestKind            { return KindSubHoliday }
func (r SubHolidayRequest) HolidayRange() HolidayRange { return r.Range }

// SubstituteHoliday designates the day (or half) as the transfer day off
// for a worked holiday. SubstituteType is the holiday work type it stands
// in for.
type SubstituteHoliday struct {
	RequestHeader
	Range          HolidayRange `json:"range"`
	SubstituteType string       `json:"substitute_type"`
}

func (SubstituteHoliday) Kind() RequestKind            { return KindSubstitute }
func (r SubstituteHoliday) HolidayRange() HolidayRange { return r.Range }

// WorkOnHolidayRequest asks to work on a scheduled holiday.
type WorkOnHolidayRequest struct {
	RequestHeader
	Substitute        SubstituteMode `json:"substitute"`
	WorkOnHolidayType string         `json:"work_on_holiday_type"`
	StartTime         time.Time      `json:"start_time"`
	EndTime           time.Time      `json:"end_time"`
}

func (WorkOnHolidayRequest) Kind() RequestKind { return KindWorkOnHoliday }

// OvertimeRequest asks for RequestMinutes of overtime.
type OvertimeRequest struct {
	RequestHeader
	Type           OvertimeType `json:"type,omitempty"`
	RequestMinutes int          `json:"request_minutes"`
}

func (OvertimeRequest) Kind() RequestKind { return KindOvertime }

// DifferenceRequest shifts the day's attendance hours.
type DifferenceRequest struct {
	RequestHeader
	WorkTypeCode string `json:"work_type_code"`
}

func (DifferenceRequest) Kind() RequestKind { return KindDifference }

// WorkTypeChangeRequest replaces the day's work type.
type WorkTypeChangeRequest struct {
	RequestHeader
	WorkTypeCode string `json:"work_type_code"`
}

func (WorkTypeChangeRequest) Kind() RequestKind { return KindWorkTypeChange }

// AttendanceRecord is the attendance filed for the day.
type AttendanceRecord struct {
	RequestHeader
	WorkTypeCode string `json:"work_type_code"`
	DirectStart  bool   `json:"direct_start"`
	DirectEnd    bool   `json:"direct_end"`
}

func (AttendanceRecord) Kind() RequestKind { return KindAttendance }

// Compile-time checks that every record is a Request
var (
	_ Request = HolidayRequest{}
	_ Request = SubHolidayRequest{}
	_ Request = SubstituteHoliday{}
	_ Request = WorkOnHolidayRequest{}
	_ Request = OvertimeRequest{}
	_ Request = DifferenceRequest{}
	_ Request = WorkTypeChangeRequest{}
	_ Request = AttendanceRecord{}
)

// =============================================================================
// DAY RECORDS - Everything loaded for one (person, date)
// =============================================================================

// DayRecords is what a RecordStore loads for one person and day.
type DayRecords struct {
	PersonID generic.PersonID
	Date     generic.Date

	// ScheduledWorkType is the calendar assignment, before any request.
	ScheduledWorkType string

	// SubstitutedWorkType is the work type the person works under when a
	// work-on-holiday request applies.
	SubstitutedWorkType string

	Requests []Request
}

// WorkflowIDs lists the workflows referenced by the records, without
// duplicates, in record order.
func (d DayRecords) WorkflowIDs() []generic.WorkflowID {
	seen := make(map[generic.WorkflowID]bool, len(d.Requests))
	var ids []generic.WorkflowID
	for _, r := range d.Requests {
		id := r.WorkflowID()
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// WithID returns r with its header id replaced.
func WithID(r Request, id string) Request {
	h := r.Header()
	h.ID = id
	return WithHeader(r, h)
}

// WithHeader returns r with its header replaced.
func WithHeader(r Request, h RequestHeader) Request {
	switch v := r.(type) {
	case HolidayRequest:
		v.RequestHeader = h
		return v
	case SubHolidayRequest:
		v.RequestHeader = h
		return v
	case SubstituteHoliday:
		v.RequestHeader = h
		return v
	case WorkOnHolidayRequest:
		v.RequestHeader = h
		return v
	case OvertimeRequest:
		v.RequestHeader = h
		return v
	case DifferenceRequest:
		v.RequestHeader = h
		return v
	case WorkTypeChangeRequest:
		v.RequestHeader = h
		return v
	case AttendanceRecord:
		v.RequestHeader = h
		return v
	}
	return r
}
