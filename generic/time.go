package generic

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Calendar day a (person, date) evaluation is keyed on
// =============================================================================

// Date is a calendar day at 00:00 UTC.
type Date struct {
	Time time.Time
}

const DateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day, keeping the wall-clock date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) AddDays(n int) Date     { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) IsZero() bool           { return d.Time.IsZero() }
func (d Date) String() string         { return d.Time.Format(DateLayout) }

// MarshalText encodes the date as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK MINUTES
// =============================================================================

const (
	MinutesPerHour = 60
	HoursPerDay    = 24

	// MaxAttendanceMinutes is the last minute of the two-day window
	// attendance times are recorded in (47:59).
	MaxAttendanceMinutes = 2879

	nightWorkStartHour = 22
	nightWorkEndHour   = 29
)

// MinutesFrom returns the minutes between 00:00 of day and t. Times on the
// following day yield values past 1440.
func MinutesFrom(t time.Time, day Date) int {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return int(wall.Sub(day.Time) / time.Minute)
}

// ClockMinutes converts hours and minutes into minutes from 00:00.
func ClockMinutes(hours, minutes int) int {
	return hours*MinutesPerHour + minutes
}

// HoursPart is the whole hours of a minute count.
func HoursPart(minutes int) int { return minutes / MinutesPerHour }

// MinutesPart is the minutes left over after HoursPart, always non-negative.
func MinutesPart(minutes int) int {
	if minutes < 0 {
		minutes = -minutes
	}
	return minutes % MinutesPerHour
}

// MinutesToHours converts minutes to hours rounded half-up to two places.
func MinutesToHours(minutes int) decimal.Decimal {
	return RoundHalfUp2(decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(MinutesPerHour)))
}

// ClampAttendanceMinutes keeps a minute value inside [0, MaxAttendanceMinutes].
func ClampAttendanceMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return min(minutes, MaxAttendanceMinutes)
}

// RoundMinute rounds a minute count down (RoundFloor) or up (RoundCeiling)
// to a multiple of unit. Non-positive minutes or units, and other modes,
// return minutes unchanged.
func RoundMinute(minutes int, mode RoundingMode, unit int) int {
	if minutes <= 0 || unit <= 0 {
		return minutes
	}
	remainder := minutes % unit
	if remainder == 0 {
		return minutes
	}
	switch mode {
	case RoundFloor:
		return minutes - remainder
	case RoundCeiling:
		return minutes - remainder + unit
	}
	return minutes
}

// =============================================================================
// DAY BOUNDARIES AND NIGHT WINDOWS
// =============================================================================

// NextDayStart is 24:00 of the target day.
func NextDayStart() int { return HoursPerDay * MinutesPerHour }

// NextDayEnd is 48:00 of the target day.
func NextDayEnd() int { return NextDayStart() * 2 }

// NightStart returns the start of deep-night window idx:
// idx 0 -> 00:00, idx 1 -> 22:00, idx 2 -> 46:00.
func NightStart(idx int) int {
	start := (idx-1)*NextDayStart() + nightWorkStartHour*MinutesPerHour
	return max(start, 0)
}

// NightEnd returns the end of deep-night window idx:
// idx 0 -> 05:00, idx 1 -> 29:00, idx 2 -> 48:00.
func NightEnd(idx int) int {
	end := (idx-1)*NextDayStart() + nightWorkEndHour*MinutesPerHour
	return min(end, NextDayEnd())
}

// NightWindows returns the three deep-night windows touching the two-day
// attendance range.
func NightWindows() Intervals {
	windows := make(Intervals, 0, 3)
	for idx := 0; idx < 3; idx++ {
		windows = append(windows, NewInterval(NightStart(idx), NightEnd(idx)))
	}
	return windows
}

// NightMinutes splits worked intervals against the night windows and
// returns the night part.
func NightMinutes(worked Intervals) Intervals {
	return OverlapAll(worked, NightWindows())
}
