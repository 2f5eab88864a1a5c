/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Domain types that are
  already plain data (DaySummary, request records) are sent as is; the
  types here cover what needs a wire shape of its own.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Days:
    DaySummaryDTO, ScheduleRequest, SavedRequestDTO

  Workflows / balances:
    WorkflowRequest, BalanceRequest, RemainderDTO

  Calculators:
    IntervalDTO, IntervalOpRequest, IntervalOpDTO,
    RemainsRequest, RoundRequest, RoundDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
)

// =============================================================================
// DAYS
// =============================================================================

// DaySummaryDTO is the day summary plus its hourly leave windows.
type DaySummaryDTO struct {
	attendance.DaySummary
	HourlyHolidays []IntervalDTO `json:"hourly_holidays"`
}

type ScheduleRequest struct {
	ScheduledWorkType   string `json:"scheduled_work_type"`
	SubstitutedWorkType string `json:"substituted_work_type"`
}

type SavedRequestDTO struct {
	ID   string                 `json:"id"`
	Kind attendance.RequestKind `json:"kind"`
}

// =============================================================================
// WORKFLOWS / BALANCES
// =============================================================================

type WorkflowRequest struct {
	Status generic.WorkflowStatus `json:"status"`
	Stage  int                    `json:"stage"`
}

type WorkflowDTO struct {
	ID     generic.WorkflowID     `json:"id"`
	Status generic.WorkflowStatus `json:"status"`
	Stage  int                    `json:"stage"`
}

type BalanceRequest struct {
	GrantedDays   decimal.Decimal `json:"granted_days"`
	GrantedHours  int             `json:"granted_hours"`
	CanceledDays  decimal.Decimal `json:"canceled_days"`
	CanceledHours int             `json:"canceled_hours"`
}

type RemainderDTO struct {
	Days         decimal.Decimal `json:"days"`
	Hours        int             `json:"hours"`
	HasRemaining bool            `json:"has_remaining"`
}

// =============================================================================
// CALCULATORS
// =============================================================================

// IntervalDTO is a [start, end) minute range.
type IntervalDTO struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IntervalOpRequest carries the operands of every interval operation; each
// operation reads the fields it needs.
type IntervalOpRequest struct {
	Intervals []IntervalDTO `json:"intervals"`
	Other     []IntervalDTO `json:"other,omitempty"`
	Interval  *IntervalDTO  `json:"interval,omitempty"`
	Start     int           `json:"start,omitempty"`
	Minutes   int           `json:"minutes,omitempty"`
}

// IntervalOpDTO holds whichever result the operation produces.
type IntervalOpDTO struct {
	Intervals   []IntervalDTO `json:"intervals,omitempty"`
	Interval    *IntervalDTO  `json:"interval,omitempty"`
	Minute      *int          `json:"minute,omitempty"`
	Overlapping *bool         `json:"overlapping,omitempty"`
}

type RemainsRequest struct {
	CurrentDays  decimal.Decimal `json:"current_days"`
	CurrentHours int             `json:"current_hours"`
	UseDays      decimal.Decimal `json:"use_days"`
	UseHours     int             `json:"use_hours"`
	HoursPerDay  *int            `json:"hours_per_day,omitempty"`
}

type RoundRequest struct {
	Value decimal.Decimal `json:"value"`
	Scale int32           `json:"scale"`
	Mode  string          `json:"mode"`
}

type RoundDTO struct {
	Value decimal.Decimal      `json:"value"`
	Mode  generic.RoundingMode `json:"mode"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toIntervalDTOs(c generic.Intervals) []IntervalDTO {
	out := make([]IntervalDTO, 0, len(c))
	for _, d := range c {
		if start, end, ok := d.Bounds(); ok {
			out = append(out, IntervalDTO{Start: start, End: end})
		}
	}
	return out
}

func toIntervalDTO(d generic.Interval) *IntervalDTO {
	start, end, ok := d.Bounds()
	if !ok {
		return nil
	}
	return &IntervalDTO{Start: start, End: end}
}

func parseIntervals(in []IntervalDTO) (generic.Intervals, error) {
	out := make(generic.Intervals, 0, len(in))
	for _, d := range in {
		parsed, err := generic.ParseInterval(d.Start, d.End)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func toRemainderDTO(r generic.Remainder) RemainderDTO {
	return RemainderDTO{Days: r.Days, Hours: r.Hours, HasRemaining: r.HasRemaining()}
}
