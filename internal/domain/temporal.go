package domain

import "time"

// DateLayout is the calendar-date format used for every (unit, date) key.
const DateLayout = "2006-01-02"

// HolidaySet holds non-school dates keyed by DateLayout strings.
type HolidaySet map[string]bool

// TemporalFeatures are the eight calendar-derived feature values for a date.
// Flags are 0/1 integers because the classifier consumes them numerically.
type TemporalFeatures struct {
	Year                     int
	Month                    int
	Day                      int
	DayOfWeek                int // Monday=0 .. Sunday=6
	IsRainySeason            int // month in June..November
	MonthFromSchoolYearStart int // (month-6) mod 12; school year starts June
	IsHoliday                int
	IsSchoolDay              int // weekday and not a holiday
}

// Temporal derives calendar features from a date and a holiday set. Pure:
// no clock access, no external state.
func Temporal(date time.Time, holidays HolidaySet) TemporalFeatures {
	weekday := (int(date.Weekday()) + 6) % 7 // shift Sunday=0 to Monday=0
	month := int(date.Month())
	holiday := holidays[date.Format(DateLayout)]

	syOffset := (month - 6) % 12
	if syOffset < 0 {
		syOffset += 12
	}

	f := TemporalFeatures{
		Year:                     date.Year(),
		Month:                    month,
		Day:                      date.Day(),
		DayOfWeek:                weekday,
		MonthFromSchoolYearStart: syOffset,
	}
	if month >= 6 && month <= 11 {
		f.IsRainySeason = 1
	}
	if holiday {
		f.IsHoliday = 1
	}
	if weekday < 5 && !holiday {
		f.IsSchoolDay = 1
	}
	return f
}
