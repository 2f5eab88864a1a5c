/*
totals.go - Numeric day and hour aggregates

PURPOSE:
  Reduces the day to the quantities payroll and balance tracking consume.
  Day counts are decimals (a half day is 0.5); hours are whole hours.

DAY EQUIVALENTS:
  all    -> 1
  am/pm  -> 0.5
  hourly -> 0 (counted in hours instead)

MUTUAL EXCLUSION:
  A day worked as plain holiday work (no transfer day) cannot also be a
  counted leave day. While such a request is in effect every leave
  category below reads zero.
*/
package attendance

import (
	"github.com/shopspring/decimal"
)

var (
	half = decimal.NewFromFloat(0.5)
	one  = decimal.NewFromInt(1)
)

// DayEquivalent is the day count of a range.
func DayEquivalent(r HolidayRange) decimal.Decimal {
	switch r {
	case RangeAll:
		return one
	case RangeAM, RangePM:
		return half
	}
	return decimal.Zero
}

func sumDays[T ranged](list []T, match func(T) bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range list {
		if match(r) {
			total = total.Add(DayEquivalent(r.HolidayRange()))
		}
	}
	return total
}

// =============================================================================
// WORK DAYS / HOLIDAY WORK
// =============================================================================

// CalcWorkDays is 0 on an all-day holiday, 0.5 on a half holiday, else 1.
func (e *RequestEntity) CalcWorkDays(completedOnly bool) decimal.Decimal {
	switch {
	case e.IsAllHoliday(completedOnly):
		return decimal.Zero
	case e.IsAmHoliday(completedOnly), e.IsPmHoliday(completedOnly):
		return half
	}
	return one
}

// CalcWorkDaysForPaidHoliday counts the day toward paid leave eligibility
// unless it was worked as plain holiday work.
func (e *RequestEntity) CalcWorkDaysForPaidHoliday(completedOnly bool) decimal.Decimal {
	if e.IsWorkOnHolidayNotSubstitute(completedOnly) {
		return decimal.Zero
	}
	return one
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CalcWorkOnHolidayTimes is 1 when the day was worked as plain holiday work.
func (e *RequestEntity) CalcWorkOnHolidayTimes(completedOnly bool) int {
	return count(e.IsWorkOnHolidayNotSubstitute(completedOnly))
}

func (e *RequestEntity) CalcWorkOnLegalHolidayTimes(completedOnly bool) int {
	return count(e.IsWorkOnLegal(completedOnly))
}

func (e *RequestEntity) CalcWorkOnPrescribedHolidayTimes(completedOnly bool) int {
	return count(e.IsWorkOnPrescribed(completedOnly))
}

// =============================================================================
// LEAVE DAYS / HOURS
// =============================================================================

func (e *RequestEntity) holidayDays(category HolidayCategory, code string, completedOnly bool) decimal.Decimal {
	if e.IsWorkOnHolidayNotSubstitute(completedOnly) {
		return decimal.Zero
	}
	return sumDays(e.HolidayRequests(completedOnly), func(h HolidayRequest) bool {
		return h.isType(category, code)
	})
}

func (e *RequestEntity) holidayHours(category HolidayCategory, code string, completedOnly bool) int {
	if e.IsWorkOnHolidayNotSubstitute(completedOnly) {
		return 0
	}
	total := 0
	for _, h := range e.HolidayRequests(completedOnly) {
		if h.Range == RangeHourly && h.isType(category, code) {
			total += h.UseHours
		}
	}
	return total
}

func (e *RequestEntity) CalcPaidHolidayDays(completedOnly bool) decimal.Decimal {
	return e.holidayDays(CategoryHoliday, HolidayCodePaid, completedOnly)
}

func (e *RequestEntity) CalcPaidHolidayHours(completedOnly bool) int {
	return e.holidayHours(CategoryHoliday, HolidayCodePaid, completedOnly)
}

func (e *RequestEntity) CalcStockHolidayDays(completedOnly bool) decimal.Decimal {
	return e.holidayDays(CategoryHoliday, HolidayCodeStock, completedOnly)
}

func (e *RequestEntity) CalcSpecialHolidayDays(completedOnly bool) decimal.Decimal {
	return e.holidayDays(CategorySpecial, "", completedOnly)
}

func (e *RequestEntity) CalcSpecialHolidayHours(completedOnly bool) int {
	return e.holidayHours(CategorySpecial, "", completedOnly)
}

func (e *RequestEntity) CalcOtherHolidayDays(completedOnly bool) decimal.Decimal {
	return e.holidayDays(CategoryOther, "", completedOnly)
}

func (e *RequestEntity) CalcOtherHolidayHours(completedOnly bool) int {
	return e.holidayHours(CategoryOther, "", completedOnly)
}

func (e *RequestEntity) CalcAbsenceDays(completedOnly bool) decimal.Decimal {
	return e.holidayDays(CategoryAbsence, "", completedOnly)
}

func (e *RequestEntity) CalcAbsenceHours(completedOnly bool) int {
	return e.holidayHours(CategoryAbsence, "", completedOnly)
}

// =============================================================================
// SUB HOLIDAYS
// =============================================================================

func (e *RequestEntity) subHolidayDays(match func(SubHolidayRequest) bool, completedOnly bool) decimal.Decimal {
	return sumDays(e.SubHolidayRequests(completedOnly), match)
}

func (e *RequestEntity) CalcSubHolidayDays(completedOnly bool) decimal.Decimal {
	return e.subHolidayDays(func(SubHolidayRequest) bool { return true }, completedOnly)
}

func (e *RequestEntity) CalcLegalSubHolidayDays(completedOnly bool) decimal.Decimal {
	return e.subHolidayDays(func(s SubHolidayRequest) bool { return s.Type == SubHolidayLegal }, completedOnly)
}

func (e *RequestEntity) CalcPrescribedSubHolidayDays(completedOnly bool) decimal.Decimal {
	return e.subHolidayDays(func(s SubHolidayRequest) bool { return s.Type == SubHolidayPrescribed }, completedOnly)
}

func (e *RequestEntity) CalcNightSubHolidayDays(completedOnly bool) decimal.Decimal {
	return e.subHolidayDays(func(s SubHolidayRequest) bool { return s.Type == SubHolidayNight }, completedOnly)
}
