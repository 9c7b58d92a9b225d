package calendar

import (
	"testing"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

func dragGeometry() Geometry {
	return Geometry{
		GridTop:         0,
		GridLeft:        0,
		ColumnWidth:     100,
		PixelsPerMinute: 1,
	}
}

func mondaySession() models.Session {
	return models.Session{
		ID:              1,
		ClientID:        7,
		Date:            time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), // Monday, column 1
		StartTime:       "10:00",
		DurationMinutes: 45,
		Status:          models.SessionScheduled,
	}
}

func TestResolveMoveToAnotherDayAndTime(t *testing.T) {
	view := weekView()
	// Column 2 is Tuesday; y = 14h * 60min with one pixel per minute.
	pointer := Pointer{X: 250, Y: 840}

	candidate, ok := ResolveMove(view, dragGeometry(), pointer, 15)
	if !ok {
		t.Fatalf("expected resolution")
	}
	if !SameDay(candidate.Date, time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected Tuesday, got %s", candidate.Date.Format("2006-01-02"))
	}
	if candidate.StartTime() != "14:00" {
		t.Fatalf("expected 14:00, got %s", candidate.StartTime())
	}
}

func TestResolveMoveSnapsToGranularity(t *testing.T) {
	view := weekView()

	// 9:07 rounds down to 9:00, 9:08 up to 9:15 with a 15-minute snap.
	down, _ := ResolveMove(view, dragGeometry(), Pointer{X: 50, Y: 547}, 15)
	if down.StartTime() != "09:00" {
		t.Fatalf("expected 09:00, got %s", down.StartTime())
	}
	up, _ := ResolveMove(view, dragGeometry(), Pointer{X: 50, Y: 548}, 15)
	if up.StartTime() != "09:15" {
		t.Fatalf("expected 09:15, got %s", up.StartTime())
	}
}

func TestResolveMoveZeroDeltaIsIdempotent(t *testing.T) {
	view := weekView()
	session := mondaySession()
	geo := dragGeometry()

	// Pointer exactly where the session already renders.
	pointer := Pointer{X: geo.GridLeft + float64(1)*geo.ColumnWidth, Y: geo.GridTop + 600}

	candidate, ok := ResolveMove(view, geo, pointer, 15)
	if !ok {
		t.Fatalf("expected resolution")
	}
	if !SameDay(candidate.Date, session.Date) || candidate.StartTime() != session.StartTime {
		t.Fatalf("zero-delta drag changed position: %s %s",
			candidate.Date.Format("2006-01-02"), candidate.StartTime())
	}
}

func TestResolveMoveCancelsOutsideGrid(t *testing.T) {
	view := weekView()
	geo := dragGeometry()

	cases := []Pointer{
		{X: -10, Y: 600},  // left of the grid
		{X: 750, Y: 600},  // beyond the last column
		{X: 50, Y: -40},   // above 00:00
		{X: 50, Y: 1500},  // below 23:59
		{X: 50, Y: 1435},  // snaps to 24:00, off the axis
	}

	for _, pointer := range cases {
		if _, ok := ResolveMove(view, geo, pointer, 15); ok {
			t.Fatalf("expected cancellation for pointer %+v", pointer)
		}
	}
}

func TestGestureStateTransitions(t *testing.T) {
	gesture := NewGesture(mondaySession(), 15, 15)
	if gesture.State != GestureDragging {
		t.Fatalf("expected dragging state, got %s", gesture.State)
	}

	if _, ok := gesture.EndMove(weekView(), dragGeometry(), Pointer{X: -10, Y: 600}); ok {
		t.Fatalf("expected out-of-grid drop to fail")
	}
	if gesture.State != GestureCancelled {
		t.Fatalf("expected cancelled state, got %s", gesture.State)
	}

	gesture = NewGesture(mondaySession(), 15, 15)
	candidate, ok := gesture.EndMove(weekView(), dragGeometry(), Pointer{X: 250, Y: 840})
	if !ok {
		t.Fatalf("expected commit")
	}
	if gesture.State != GestureCommitted {
		t.Fatalf("expected committed state, got %s", gesture.State)
	}
	if candidate.StartTime() != "14:00" {
		t.Fatalf("expected 14:00, got %s", candidate.StartTime())
	}
}

func TestEndResizeShrinksAndClampsToFloor(t *testing.T) {
	geo := dragGeometry()

	// 45 minutes shrunk by 25 pixels lands on 20 minutes (floor is 15).
	gesture := NewGesture(mondaySession(), 5, 15)
	if got := gesture.EndResize(geo, -25); got != 20 {
		t.Fatalf("expected 20 minutes, got %d", got)
	}

	// Shrinking past the floor clamps to exactly the floor, never 45-delta.
	gesture = NewGesture(mondaySession(), 5, 15)
	if got := gesture.EndResize(geo, -40); got != 15 {
		t.Fatalf("expected clamp to 15, got %d", got)
	}

	gesture = NewGesture(mondaySession(), 15, 15)
	if got := gesture.EndResize(geo, 30); got != 75 {
		t.Fatalf("expected 75 minutes, got %d", got)
	}
}

func TestResolveMonthCellHitTestsCells(t *testing.T) {
	view := NewViewState(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), GranularityMonth)
	geo := Geometry{CellWidth: 100, CellHeight: 80}

	// June 2025 starts on a Sunday; row 1, column 2 is Tuesday June 10.
	date, ok := ResolveMonthCell(view, geo, Pointer{X: 250, Y: 120})
	if !ok {
		t.Fatalf("expected hit")
	}
	if !SameDay(date, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected June 10, got %s", date.Format("2006-01-02"))
	}

	if _, ok := ResolveMonthCell(view, geo, Pointer{X: 250, Y: 10000}); ok {
		t.Fatalf("expected miss below the grid")
	}
	if _, ok := ResolveMonthCell(view, geo, Pointer{X: -5, Y: 120}); ok {
		t.Fatalf("expected miss left of the grid")
	}
}

func TestEndMonthMovePreservesStartTime(t *testing.T) {
	view := NewViewState(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), GranularityMonth)
	geo := Geometry{CellWidth: 100, CellHeight: 80}

	gesture := NewGesture(mondaySession(), 15, 15)
	candidate, ok := gesture.EndMonthMove(view, geo, Pointer{X: 250, Y: 120})
	if !ok {
		t.Fatalf("expected commit")
	}
	if candidate.StartTime() != "10:00" {
		t.Fatalf("month drop must keep start time, got %s", candidate.StartTime())
	}
}
