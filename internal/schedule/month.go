package schedule

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the given instant.
func MonthOf(t time.Time) Month {
	return Month{Year: t.UTC().Year(), Month: t.UTC().Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse(monthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", value, err)
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

// String implements fmt.Stringer.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether the month is unset.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the first day of the following month.
func (m Month) End() time.Time {
	return m.Next().Start()
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.End().Add(-24 * time.Hour).Day()
}

// Contains reports whether the date portion of t falls in the month.
func (m Month) Contains(t time.Time) bool {
	d := DateOnly(t)
	return d.Year() == m.Year && d.Month() == m.Month
}

// WeekdayDates returns the ordered calendar dates within the month that
// fall on the given weekday. Every weekday has 4 or 5 entries.
func (m Month) WeekdayDates(weekday time.Weekday) []time.Time {
	var dates []time.Time
	for d := m.Start(); d.Month() == m.Month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == weekday {
			dates = append(dates, d)
		}
	}
	return dates
}

// DateOnly strips any time-of-day component, normalizing to midnight
// UTC on the same calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOfMonthIndex returns the zero-based ordinal of the weekly
// occurrence a date represents within its month: the first Monday has
// index 0, the second index 1, and so on. The result is in [0,4].
func WeekOfMonthIndex(t time.Time) int {
	return (DateOnly(t).Day() - 1) / 7
}
