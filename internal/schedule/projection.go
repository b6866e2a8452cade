package schedule

import (
	"time"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
)

// Calendar is one month of visits bucketed by calendar day. Days holds
// day-of-month keys; days without visits are absent.
type Calendar struct {
	Month Month
	Days  map[int][]models.Visit
}

// On returns the visits on the given date, nil when the date is empty
// or outside the month.
func (c Calendar) On(t time.Time) []models.Visit {
	if !c.Month.Contains(t) {
		return nil
	}
	return c.Days[DateOnly(t).Day()]
}

// Total counts the visits in the calendar.
func (c Calendar) Total() int {
	total := 0
	for _, day := range c.Days {
		total += len(day)
	}
	return total
}

// Project buckets visits into the month's days using the date portion
// of each visit date only; a visit stored at any time of day lands on
// its calendar date. Visits outside the month are dropped. Input order
// is preserved within each day. Pure function, no I/O.
func Project(input []models.Visit, month Month) Calendar {
	calendar := Calendar{Month: month, Days: map[int][]models.Visit{}}
	for _, visit := range input {
		if !month.Contains(visit.VisitDate) {
			continue
		}
		day := DateOnly(visit.VisitDate).Day()
		calendar.Days[day] = append(calendar.Days[day], visit)
	}
	return calendar
}
