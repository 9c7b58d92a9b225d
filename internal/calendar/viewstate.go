package calendar

import (
	"errors"
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityDay      Granularity = "day"
	GranularityThreeDay Granularity = "three-day"
	GranularityWeek     Granularity = "week"
	GranularityMonth    Granularity = "month"
)

var ErrInvalidGranularity = errors.New("invalid granularity")

func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(value) {
	case GranularityDay, GranularityThreeDay, GranularityWeek, GranularityMonth:
		return Granularity(value), nil
	default:
		return "", ErrInvalidGranularity
	}
}

// Columns is the number of day columns the grid renders for this zoom level.
func (g Granularity) Columns() int {
	switch g {
	case GranularityDay:
		return 1
	case GranularityThreeDay:
		return 3
	default:
		return 7
	}
}

// ViewState is the transient view window of the calendar screen: an anchor
// date plus a zoom level. It is never persisted. All methods are pure and
// return a new state.
type ViewState struct {
	Anchor      time.Time
	Granularity Granularity
}

func NewViewState(anchor time.Time, granularity Granularity) ViewState {
	return ViewState{Anchor: StartOfDay(anchor), Granularity: granularity}
}

func (v ViewState) SetGranularity(granularity Granularity) ViewState {
	v.Granularity = granularity
	return v
}

// Navigate shifts the anchor by one unit of the current granularity.
// Months use calendar-month arithmetic so lengths never drift; the anchor is
// pinned to the first of the month to keep Jan 31 -> Feb -> Jan stable.
func (v ViewState) Navigate(step int) ViewState {
	switch v.Granularity {
	case GranularityDay:
		v.Anchor = v.Anchor.AddDate(0, 0, step)
	case GranularityThreeDay:
		v.Anchor = v.Anchor.AddDate(0, 0, 3*step)
	case GranularityWeek:
		v.Anchor = v.Anchor.AddDate(0, 0, 7*step)
	case GranularityMonth:
		v.Anchor = StartOfMonth(v.Anchor).AddDate(0, step, 0)
	}
	return v
}

func (v ViewState) Next() ViewState { return v.Navigate(1) }
func (v ViewState) Prev() ViewState { return v.Navigate(-1) }

func (v ViewState) GoToToday(now time.Time) ViewState {
	v.Anchor = StartOfDay(now)
	return v
}

// VisibleDays returns the day columns of the grid, strictly increasing by one
// calendar day. Week (and month, whose grid uses the anchor's week for the
// time-axis view) starts on Sunday.
func (v ViewState) VisibleDays() []time.Time {
	var first time.Time
	switch v.Granularity {
	case GranularityDay:
		return []time.Time{StartOfDay(v.Anchor)}
	case GranularityThreeDay:
		first = StartOfDay(v.Anchor)
	default:
		first = StartOfWeek(v.Anchor)
	}

	days := make([]time.Time, v.Granularity.Columns())
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// MonthWeeks returns Sunday-started rows of exactly 7 days covering the
// anchor's month, padded with trailing days of the previous month and leading
// days of the next.
func (v ViewState) MonthWeeks() [][]time.Time {
	first := StartOfMonth(v.Anchor)
	last := first.AddDate(0, 1, -1)

	var weeks [][]time.Time
	for cursor := StartOfWeek(first); !cursor.After(last); cursor = cursor.AddDate(0, 0, 7) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = cursor.AddDate(0, 0, i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// Title renders the window heading: full date for day view, a compact
// cross-month-aware range for multi-day views, month and year for month view.
func (v ViewState) Title() string {
	switch v.Granularity {
	case GranularityDay:
		return v.Anchor.Format("Monday, January 2, 2006")
	case GranularityMonth:
		return v.Anchor.Format("January 2006")
	default:
		days := v.VisibleDays()
		return rangeTitle(days[0], days[len(days)-1])
	}
}

func rangeTitle(from, to time.Time) string {
	switch {
	case from.Year() != to.Year():
		return fmt.Sprintf("%s – %s", from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"))
	case from.Month() != to.Month():
		return fmt.Sprintf("%s – %s", from.Format("Jan 2"), to.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("%s – %s", from.Format("Jan 2"), to.Format("2, 2006"))
	}
}
