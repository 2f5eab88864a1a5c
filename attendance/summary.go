package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-engine/generic"
)

// DaySummary is the full classification of one person's day.
type DaySummary struct {
	PersonID      generic.PersonID `json:"person_id"`
	Date          string           `json:"date"`
	CompletedOnly bool             `json:"completed_only"`

	WorkType             string `json:"work_type"`
	WorkDay              bool   `json:"work_day"`
	AllHoliday           bool   `json:"all_holiday"`
	AmHoliday            bool   `json:"am_holiday"`
	PmHoliday            bool   `json:"pm_holiday"`
	HourlyHoliday        bool   `json:"hourly_holiday"`
	AttendanceAppliable  bool   `json:"attendance_appliable"`
	WorkOnHolidayWorked  bool   `json:"work_on_holiday_not_substituted"`
	SubstituteType       string `json:"substitute_type,omitempty"`
	HourlyHolidayMinutes int    `json:"hourly_holiday_minutes"`

	HourlyHolidays []generic.Interval `json:"-"`

	OvertimeBeforeMinutes int `json:"overtime_before_minutes"`
	OvertimeAfterMinutes  int `json:"overtime_after_minutes"`

	Totals DayTotals `json:"totals"`
}

// DayTotals groups the numeric aggregates.
type DayTotals struct {
	WorkDays               decimal.Decimal `json:"work_days"`
	WorkDaysForPaidHoliday decimal.Decimal `json:"work_days_for_paid_holiday"`

	WorkOnHolidayTimes           int `json:"work_on_holiday_times"`
	WorkOnLegalHolidayTimes      int `json:"work_on_legal_holiday_times"`
	WorkOnPrescribedHolidayTimes int `json:"work_on_prescribed_holiday_times"`

	PaidHolidayDays     decimal.Decimal `json:"paid_holiday_days"`
	PaidHolidayHours    int             `json:"paid_holiday_hours"`
	StockHolidayDays    decimal.Decimal `json:"stock_holiday_days"`
	SpecialHolidayDays  decimal.Decimal `json:"special_holiday_days"`
	SpecialHolidayHours int             `json:"special_holiday_hours"`
	OtherHolidayDays    decimal.Decimal `json:"other_holiday_days"`
	OtherHolidayHours   int             `json:"other_holiday_hours"`
	AbsenceDays         decimal.Decimal `json:"absence_days"`
	AbsenceHours        int             `json:"absence_hours"`

	SubHolidayDays           decimal.Decimal `json:"sub_holiday_days"`
	LegalSubHolidayDays      decimal.Decimal `json:"legal_sub_holiday_days"`
	PrescribedSubHolidayDays decimal.Decimal `json:"prescribed_sub_holiday_days"`
	NightSubHolidayDays      decimal.Decimal `json:"night_sub_holiday_days"`
}

// Summarize evaluates every query of the entity once. The work type is the
// request-based one; the attendance record is not considered.
func (e *RequestEntity) Summarize(completedOnly bool) DaySummary {
	return DaySummary{
		PersonID:      e.personID,
		Date:          e.date.String(),
		CompletedOnly: completedOnly,

		WorkType:             e.WorkType(false, completedOnly),
		WorkDay:              e.IsWorkDay(),
		AllHoliday:           e.IsAllHoliday(completedOnly),
		AmHoliday:            e.IsAmHoliday(completedOnly),
		PmHoliday:            e.IsPmHoliday(completedOnly),
		HourlyHoliday:        e.IsHourlyHoliday(completedOnly),
		AttendanceAppliable:  e.IsAttendanceAppliable(),
		WorkOnHolidayWorked:  e.IsWorkOnHolidayNotSubstitute(completedOnly),
		SubstituteType:       e.SubstituteType(completedOnly),
		HourlyHolidays:       e.HourlyHolidayTimes(completedOnly),
		HourlyHolidayMinutes: e.HourlyHolidayMinutes(completedOnly),

		OvertimeBeforeMinutes: e.OvertimeMinutesBeforeWork(completedOnly),
		OvertimeAfterMinutes:  e.OvertimeMinutesAfterWork(completedOnly),

		Totals: DayTotals{
			WorkDays:               e.CalcWorkDays(completedOnly),
			WorkDaysForPaidHoliday: e.CalcWorkDaysForPaidHoliday(completedOnly),

			WorkOnHolidayTimes:           e.CalcWorkOnHolidayTimes(completedOnly),
			WorkOnLegalHolidayTimes:      e.CalcWorkOnLegalHolidayTimes(completedOnly),
			WorkOnPrescribedHolidayTimes: e.CalcWorkOnPrescribedHolidayTimes(completedOnly),

			PaidHolidayDays:     e.CalcPaidHolidayDays(completedOnly),
			PaidHolidayHours:    e.CalcPaidHolidayHours(completedOnly),
			StockHolidayDays:    e.CalcStockHolidayDays(completedOnly),
			SpecialHolidayDays:  e.CalcSpecialHolidayDays(completedOnly),
			SpecialHolidayHours: e.CalcSpecialHolidayHours(completedOnly),
			OtherHolidayDays:    e.CalcOtherHolidayDays(completedOnly),
			OtherHolidayHours:   e.CalcOtherHolidayHours(completedOnly),
			AbsenceDays:         e.CalcAbsenceDays(completedOnly),
			AbsenceHours:        e.CalcAbsenceHours(completedOnly),

			SubHolidayDays:           e.CalcSubHolidayDays(completedOnly),
			LegalSubHolidayDays:      e.CalcLegalSubHolidayDays(completedOnly),
			PrescribedSubHolidayDays: e.CalcPrescribedSubHolidayDays(completedOnly),
			NightSubHolidayDays:      e.CalcNightSubHolidayDays(completedOnly),
		},
	}
}
