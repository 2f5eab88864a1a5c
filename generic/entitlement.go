/*
entitlement.go - Day/hour carry-over arithmetic for leave balances

PURPOSE:
  Leave that can be taken by the hour is tracked as a (days, hours) pair.
  After usage is subtracted the hour part is normalized back into
  [0, hoursPerDay) by carrying whole days up or borrowing them down.

ALGORITHM:
  1. remainDays  = currentDays  - useDays
     remainHours = currentHours - useHours
  2. hoursPerDay == 0 (hours not convertible): return as is
  3. remainHours > 0: carry   remainDays += remainHours / hoursPerDay
                               remainHours %= hoursPerDay
  4. remainHours < 0: borrow  n = ceil(|remainHours| / hoursPerDay)
                               remainDays -= n; remainHours += n*hoursPerDay

EXAMPLE:
  2 days 3 hours left, 5 hours used, 8 hours per day:
    hours -> -2, borrow 1 day -> 1 day 6 hours

  A negative day part means the balance cannot cover the usage.
*/
package generic

import "github.com/shopspring/decimal"

// Remainder is a normalized (days, hours) balance.
type Remainder struct {
	Days  decimal.Decimal
	Hours int
}

// HasRemaining is true when neither part has gone negative.
func (r Remainder) HasRemaining() bool {
	return !r.Days.IsNegative() && r.Hours >= 0
}

// Remains subtracts usage from a balance and normalizes the hour part.
func Remains(currentDays decimal.Decimal, currentHours int, useDays decimal.Decimal, useHours int, hoursPerDay int) Remainder {
	remainDays := currentDays.Sub(useDays)
	remainHours := currentHours - useHours

	if hoursPerDay <= 0 {
		return Remainder{Days: remainDays, Hours: remainHours}
	}

	switch {
	case remainHours > 0:
		remainDays = remainDays.Add(decimal.NewFromInt(int64(remainHours / hoursPerDay)))
		remainHours %= hoursPerDay
	case remainHours < 0:
		borrow := -remainHours / hoursPerDay
		if remainHours%hoursPerDay != 0 {
			borrow++
		}
		remainDays = remainDays.Sub(decimal.NewFromInt(int64(borrow)))
		remainHours += borrow * hoursPerDay
	}
	return Remainder{Days: remainDays, Hours: remainHours}
}

// =============================================================================
// HOLIDAY BALANCE - Grant record for one leave type
// =============================================================================

// HolidayBalance is what was granted for one leave type minus what was
// cancelled (expired or revoked). Days and hours are tracked independently.
type HolidayBalance struct {
	HolidayCode   string
	GrantedDays   decimal.Decimal
	GrantedHours  int
	CanceledDays  decimal.Decimal
	CanceledHours int
}

// CurrentDays is granted minus canceled days. A nil balance has none.
func (b *HolidayBalance) CurrentDays() decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return b.GrantedDays.Sub(b.CanceledDays)
}

// CurrentHours is granted minus canceled hours. A nil balance has none.
func (b *HolidayBalance) CurrentHours() int {
	if b == nil {
		return 0
	}
	return b.GrantedHours - b.CanceledHours
}

// Remains applies usage to the balance.
func (b *HolidayBalance) Remains(useDays decimal.Decimal, useHours, hoursPerDay int) Remainder {
	return Remains(b.CurrentDays(), b.CurrentHours(), useDays, useHours, hoursPerDay)
}

// HasRemaining reports whether the balance covers the usage.
func (b *HolidayBalance) HasRemaining(useDays decimal.Decimal, useHours, hoursPerDay int) bool {
	return b.Remains(useDays, useHours, hoursPerDay).HasRemaining()
}
