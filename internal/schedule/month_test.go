package schedule

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if month.Year != 2024 || month.Month != time.March {
		t.Fatalf("unexpected month: %+v", month)
	}

	if _, err := ParseMonth("march 2024"); err == nil {
		t.Fatal("expected error for malformed month")
	}
}

func TestMonthNextRollsOverYear(t *testing.T) {
	next := Month{Year: 2024, Month: time.December}.Next()
	if next.Year != 2025 || next.Month != time.January {
		t.Fatalf("unexpected next month: %+v", next)
	}
}

func TestMonthWeekdayDates(t *testing.T) {
	mondays := Month{Year: 2024, Month: time.March}.WeekdayDates(time.Monday)
	want := []int{4, 11, 18, 25}
	if len(mondays) != len(want) {
		t.Fatalf("expected %d mondays, got %d", len(want), len(mondays))
	}
	for i, day := range want {
		if mondays[i].Day() != day {
			t.Fatalf("monday %d: expected day %d, got %d", i, day, mondays[i].Day())
		}
	}

	// April 2024 also has exactly four Mondays, starting on the 1st.
	aprilMondays := Month{Year: 2024, Month: time.April}.WeekdayDates(time.Monday)
	if len(aprilMondays) != 4 || aprilMondays[0].Day() != 1 {
		t.Fatalf("unexpected april mondays: %v", aprilMondays)
	}
}

func TestWeekOfMonthIndex(t *testing.T) {
	cases := []struct {
		day  int
		want int
	}{
		{1, 0},
		{7, 0},
		{8, 1},
		{14, 1},
		{15, 2},
		{29, 4},
		{31, 4},
	}
	for _, tc := range cases {
		date := time.Date(2024, time.March, tc.day, 10, 30, 0, 0, time.UTC)
		if got := WeekOfMonthIndex(date); got != tc.want {
			t.Fatalf("day %d: expected index %d, got %d", tc.day, tc.want, got)
		}
	}
}

func TestMonthContainsUsesDatePortion(t *testing.T) {
	month := Month{Year: 2025, Month: time.January}
	inside := time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)
	outside := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !month.Contains(inside) {
		t.Fatal("expected late january instant to be contained")
	}
	if month.Contains(outside) {
		t.Fatal("expected february instant to be excluded")
	}
}

func TestDateOnlyNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	instant := time.Date(2025, time.January, 15, 1, 30, 0, 0, loc)
	got := DateOnly(instant)
	want := time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
