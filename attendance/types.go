// Package attendance resolves the requests filed for one person on one day
// into a day classification and the leave quantities the day consumes.
// It builds on the interval algebra and workflow classifier in generic.
package attendance

import "fmt"

// =============================================================================
// WORK TYPE CODES
// =============================================================================

// Reserved work type codes. Any other code names a regular working pattern
// configured outside the engine.
const (
	WorkTypeLegalHoliday      = "legal_holiday"
	WorkTypePrescribedHoliday = "prescribed_holiday"
)

// IsHolidayWorkType reports whether code is a legal or prescribed holiday.
func IsHolidayWorkType(code string) bool {
	return code == WorkTypeLegalHoliday || code == WorkTypePrescribedHoliday
}

// =============================================================================
// HOLIDAY RANGE
// =============================================================================

type HolidayRange int

const (
	RangeAll HolidayRange = iota + 1
	RangeAM
	RangePM
	RangeHourly
)

func (r HolidayRange) String() string {
	switch r {
	case RangeAll:
		return "all"
	case RangeAM:
		return "am"
	case RangePM:
		return "pm"
	case RangeHourly:
		return "hourly"
	}
	return "unknown"
}

// ParseHolidayRange is the inverse of String.
func ParseHolidayRange(s string) (HolidayRange, bool) {
	for _, r := range []HolidayRange{RangeAll, RangeAM, RangePM, RangeHourly} {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

func (r HolidayRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *HolidayRange) UnmarshalText(b []byte) error {
	parsed, ok := ParseHolidayRange(string(b))
	if !ok {
		return fmt.Errorf("unknown holiday range %q", b)
	}
	*r = parsed
	return nil
}

// IsHalf covers AM and PM.
func (r HolidayRange) IsHalf() bool { return r == RangeAM || r == RangePM }

// =============================================================================
// HOLIDAY CATEGORIES
// =============================================================================

// HolidayCategory is the first-level leave classification.
type HolidayCategory int

const (
	CategoryHoliday HolidayCategory = iota + 1 // paid or stock leave, told apart by code
	CategorySpecial
	CategoryOther
	CategoryAbsence
)

func (c HolidayCategory) String() string {
	switch c {
	case CategoryHoliday:
		return "holiday"
	case CategorySpecial:
		return "special"
	case CategoryOther:
		return "other"
	case CategoryAbsence:
		return "absence"
	}
	return "unknown"
}

func (c HolidayCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *HolidayCategory) UnmarshalText(b []byte) error {
	for _, v := range []HolidayCategory{CategoryHoliday, CategorySpecial, CategoryOther, CategoryAbsence} {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown holiday category %q", b)
}

// Second-level codes for CategoryHoliday.
const (
	HolidayCodePaid  = "paid"
	HolidayCodeStock = "stock"
)

// SubHolidayType is the kind of holiday work a compensatory day off was
// earned by.
type SubHolidayType int

const (
	SubHolidayLegal SubHolidayType = iota + 1
	SubHolidayPrescribed
	SubHolidayNight
)

func (t SubHolidayType) String() string {
	switch t {
	case SubHolidayLegal:
		return "legal"
	case SubHolidayPrescribed:
		return "prescribed"
	case SubHolidayNight:
		return "night"
	}
	return "unknown"
}

func (t SubHolidayType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *SubHolidayType) UnmarshalText(b []byte) error {
	for _, v := range []SubHolidayType{SubHolidayLegal, SubHolidayPrescribed, SubHolidayNight} {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown sub holiday type %q", b)
}

// =============================================================================
// WORK ON HOLIDAY
// =============================================================================

// SubstituteMode says whether working a holiday is paired with a transfer
// day off, and for which half.
type SubstituteMode int

const (
	SubstituteFull SubstituteMode = iota + 1
	SubstituteNone                // plain holiday work, no compensating day
	SubstituteAM
	SubstitutePM
)

func (m SubstituteMode) String() string {
	switch m {
	case SubstituteFull:
		return "full"
	case SubstituteNone:
		return "none"
	case SubstituteAM:
		return "am"
	case SubstitutePM:
		return "pm"
	}
	return "unknown"
}

func (m SubstituteMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *SubstituteMode) UnmarshalText(b []byte) error {
	for _, v := range []SubstituteMode{SubstituteFull, SubstituteNone, SubstituteAM, SubstitutePM} {
		if v.String() == string(b) {
			*m = v
			return nil
		}
	}
	return fmt.Errorf("unknown substitute mode %q", b)
}

// =============================================================================
// OVERTIME
// =============================================================================

type OvertimeType int

const (
	OvertimeBeforeWork OvertimeType = iota + 1
	OvertimeAfterWork
	OvertimeOther
)

func (t OvertimeType) String() string {
	switch t {
	case OvertimeBeforeWork:
		return "before_work"
	case OvertimeAfterWork:
		return "after_work"
	case OvertimeOther:
		return "other"
	}
	return "unknown"
}

func (t OvertimeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *OvertimeType) UnmarshalText(b []byte) error {
	for _, v := range []OvertimeType{OvertimeBeforeWork, OvertimeAfterWork, OvertimeOther} {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown overtime type %q", b)
}
