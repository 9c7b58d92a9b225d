package calendar

import (
	"testing"
	"time"
)

func TestVisibleDaysLengthAndOrderPerGranularity(t *testing.T) {
	anchor := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC) // Wednesday

	cases := []struct {
		granularity Granularity
		length      int
	}{
		{GranularityDay, 1},
		{GranularityThreeDay, 3},
		{GranularityWeek, 7},
		{GranularityMonth, 7},
	}

	for _, tc := range cases {
		days := NewViewState(anchor, tc.granularity).VisibleDays()
		if len(days) != tc.length {
			t.Fatalf("%s: expected %d days, got %d", tc.granularity, tc.length, len(days))
		}
		for i := 1; i < len(days); i++ {
			if !SameDay(days[i], days[i-1].AddDate(0, 0, 1)) {
				t.Fatalf("%s: days not strictly increasing by one at index %d", tc.granularity, i)
			}
		}
	}
}

func TestVisibleDaysWeekStartsOnSunday(t *testing.T) {
	anchor := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)
	days := NewViewState(anchor, GranularityWeek).VisibleDays()

	if days[0].Weekday() != time.Sunday {
		t.Fatalf("expected week to start on Sunday, got %s", days[0].Weekday())
	}
	if !SameDay(days[0], time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected June 22, got %s", days[0].Format("2006-01-02"))
	}
}

func TestMonthWeeksCoverMonthExactlyOnce(t *testing.T) {
	for _, anchor := range []time.Time{
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),  // February, non-leap
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), // February, leap
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	} {
		view := NewViewState(anchor, GranularityMonth)
		weeks := view.MonthWeeks()

		seen := make(map[int]int)
		for _, week := range weeks {
			if len(week) != 7 {
				t.Fatalf("%s: week of length %d", anchor.Month(), len(week))
			}
			if week[0].Weekday() != time.Sunday {
				t.Fatalf("%s: week starts on %s", anchor.Month(), week[0].Weekday())
			}
			for _, day := range week {
				if SameMonth(day, anchor) {
					seen[day.Day()]++
				}
			}
		}

		daysInMonth := StartOfMonth(anchor).AddDate(0, 1, -1).Day()
		if len(seen) != daysInMonth {
			t.Fatalf("%s: expected %d distinct days, got %d", anchor.Month(), daysInMonth, len(seen))
		}
		for day, count := range seen {
			if count != 1 {
				t.Fatalf("%s: day %d appears %d times", anchor.Month(), day, count)
			}
		}
	}
}

func TestNavigateRoundTripsForDayAndWeek(t *testing.T) {
	anchor := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)

	for _, granularity := range []Granularity{GranularityDay, GranularityThreeDay, GranularityWeek} {
		view := NewViewState(anchor, granularity)
		back := view.Next().Prev()
		if !SameDay(back.Anchor, anchor) {
			t.Fatalf("%s: next then prev moved anchor from %s to %s",
				granularity, anchor.Format("2006-01-02"), back.Anchor.Format("2006-01-02"))
		}
	}
}

func TestNavigateMonthDoesNotSkipAcrossShortMonths(t *testing.T) {
	// Jan 31 -> February -> back must land in January, not skip into March
	// or duplicate a month.
	view := NewViewState(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), GranularityMonth)

	next := view.Next()
	if next.Anchor.Month() != time.February {
		t.Fatalf("expected February, got %s", next.Anchor.Month())
	}

	back := next.Prev()
	if back.Anchor.Month() != time.January || back.Anchor.Year() != 2025 {
		t.Fatalf("expected January 2025, got %s %d", back.Anchor.Month(), back.Anchor.Year())
	}

	// Walking a full year forward visits every month exactly once.
	cursor := NewViewState(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), GranularityMonth)
	for month := 2; month <= 12; month++ {
		cursor = cursor.Next()
		if int(cursor.Anchor.Month()) != month {
			t.Fatalf("expected month %d, got %s", month, cursor.Anchor.Month())
		}
	}
}

func TestGoToTodayResetsAnchor(t *testing.T) {
	view := NewViewState(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), GranularityWeek)
	now := time.Date(2025, 6, 25, 16, 20, 0, 0, time.UTC)

	today := view.GoToToday(now)
	if !SameDay(today.Anchor, now) {
		t.Fatalf("expected anchor on %s, got %s", now.Format("2006-01-02"), today.Anchor.Format("2006-01-02"))
	}
	if today.Anchor.Hour() != 0 {
		t.Fatalf("anchor should be normalized to midnight")
	}
}

func TestTitlePerGranularity(t *testing.T) {
	day := NewViewState(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), GranularityDay)
	if got := day.Title(); got != "Tuesday, July 1, 2025" {
		t.Fatalf("day title: %q", got)
	}

	// Week of Sunday June 29 crosses into July.
	week := NewViewState(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), GranularityWeek)
	if got := week.Title(); got != "Jun 29 – Jul 5, 2025" {
		t.Fatalf("cross-month week title: %q", got)
	}

	sameMonth := NewViewState(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), GranularityWeek)
	if got := sameMonth.Title(); got != "Jun 8 – 14, 2025" {
		t.Fatalf("same-month week title: %q", got)
	}

	crossYear := NewViewState(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), GranularityWeek)
	if got := crossYear.Title(); got != "Dec 28, 2025 – Jan 3, 2026" {
		t.Fatalf("cross-year week title: %q", got)
	}

	month := NewViewState(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), GranularityMonth)
	if got := month.Title(); got != "June 2025" {
		t.Fatalf("month title: %q", got)
	}
}

func TestParseGranularity(t *testing.T) {
	if _, err := ParseGranularity("fortnight"); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
	granularity, err := ParseGranularity("week")
	if err != nil {
		t.Fatalf("ParseGranularity: %v", err)
	}
	if granularity != GranularityWeek {
		t.Fatalf("expected week, got %s", granularity)
	}
}
