package calendar

import (
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

// MinVisualHeight keeps very short sessions tall enough to stay visible and
// clickable on the grid. One layout unit equals one minute.
const MinVisualHeight = 30

// columnGutterPercent is shaved off each column so adjacent sessions do not
// touch.
const columnGutterPercent = 0.5

// Layout places a session on the day/week grid. Top and Height are in
// pixel-independent minute units; LeftPercent and WidthPercent partition the
// horizontal axis across the visible columns.
type Layout struct {
	Column       int     `json:"column"`
	Top          int     `json:"top"`
	Height       int     `json:"height"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// Place computes the grid position of a session within the view window. The
// second return value is false when the session's date is not visible.
// Overlapping same-day sessions are not collision-resolved; they render
// stacked.
func Place(session models.Session, view ViewState) (Layout, bool) {
	column := -1
	for i, day := range view.VisibleDays() {
		if SameDay(session.Date, day) {
			column = i
			break
		}
	}
	if column < 0 {
		return Layout{}, false
	}

	columns := view.Granularity.Columns()
	columnWidth := 100.0 / float64(columns)

	height := session.DurationMinutes
	if height < MinVisualHeight {
		height = MinVisualHeight
	}

	return Layout{
		Column:       column,
		Top:          ClockMinutesOrDefault(session.StartTime),
		Height:       height,
		LeftPercent:  float64(column) * columnWidth,
		WidthPercent: columnWidth - columnGutterPercent,
	}, true
}

// InMonthGrid reports whether a date lands on the month view at all,
// including the padding days of the neighbouring months.
func InMonthGrid(date time.Time, view ViewState) bool {
	for _, week := range view.MonthWeeks() {
		for _, day := range week {
			if SameDay(date, day) {
				return true
			}
		}
	}
	return false
}
