package generic_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/attendance-engine/generic"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRemains_BorrowsDay(t *testing.T) {
	// GIVEN: 2 days 3 hours left, 8 hours per day
	// WHEN: 5 hours are used
	// THEN: hours go to -2, one day is borrowed -> 1 day 6 hours
	r := generic.Remains(dec("2"), 3, decimal.Zero, 5, 8)

	assert.True(t, dec("1").Equal(r.Days), "days = %s", r.Days)
	assert.Equal(t, 6, r.Hours)
	assert.True(t, r.HasRemaining())
}

func TestRemains_Table(t *testing.T) {
	tests := []struct {
		name                 string
		days                 string
		hours                int
		useDays              string
		useHours             int
		hoursPerDay          int
		wantDays             string
		wantHours            int
		wantRemaining        bool
	}{
		{"carry up", "1", 10, "0", 0, 8, "2", 2, true},
		{"exact carry", "0", 16, "0", 0, 8, "2", 0, true},
		{"borrow several days", "5", 0, "0", 17, 8, "2", 7, true},
		{"borrow exact multiple", "5", 0, "0", 16, 8, "3", 0, true},
		{"half days", "2.5", 4, "0.5", 2, 8, "2", 2, true},
		{"shortfall", "0", 3, "1", 0, 8, "-1", 3, false},
		{"hours shortfall borrows into negative days", "0", 1, "0", 3, 8, "-1", 6, false},
		{"non-convertible", "2", 1, "0", 3, 0, "2", -2, false},
		{"non-convertible positive hours untouched", "2", 30, "0", 0, 0, "2", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := generic.Remains(dec(tt.days), tt.hours, dec(tt.useDays), tt.useHours, tt.hoursPerDay)

			assert.True(t, dec(tt.wantDays).Equal(r.Days), "days = %s, want %s", r.Days, tt.wantDays)
			assert.Equal(t, tt.wantHours, r.Hours)
			assert.Equal(t, tt.wantRemaining, r.HasRemaining())
			if tt.hoursPerDay > 0 {
				assert.GreaterOrEqual(t, r.Hours, 0)
				assert.Less(t, r.Hours, tt.hoursPerDay)
			}
		})
	}
}

func TestHolidayBalance_Remains(t *testing.T) {
	b := &generic.HolidayBalance{
		HolidayCode:   "paid",
		GrantedDays:   dec("10"),
		GrantedHours:  4,
		CanceledDays:  dec("2"),
		CanceledHours: 0,
	}

	assert.True(t, dec("8").Equal(b.CurrentDays()))
	assert.Equal(t, 4, b.CurrentHours())

	r := b.Remains(dec("1"), 6, 8)
	assert.True(t, dec("6").Equal(r.Days), "days = %s", r.Days)
	assert.Equal(t, 6, r.Hours)
	assert.True(t, b.HasRemaining(dec("8"), 4, 8))
	assert.False(t, b.HasRemaining(dec("8"), 5, 8))
}

func TestHolidayBalance_NilHasNothing(t *testing.T) {
	var b *generic.HolidayBalance
	assert.True(t, b.CurrentDays().IsZero())
	assert.Equal(t, 0, b.CurrentHours())
	assert.False(t, b.HasRemaining(dec("0.5"), 0, 8))
}
