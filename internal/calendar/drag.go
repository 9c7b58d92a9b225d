package calendar

import (
	"math"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

type GestureState string

const (
	GestureIdle      GestureState = "idle"
	GestureDragging  GestureState = "dragging"
	GestureCommitted GestureState = "committed"
	GestureCancelled GestureState = "cancelled"
)

// Geometry describes the grid's bounding box as the interaction layer
// rendered it. PixelsPerMinute converts vertical distance to minutes; the
// cell dimensions are only used for month-view hit testing.
type Geometry struct {
	GridTop         float64 `json:"grid_top"`
	GridLeft        float64 `json:"grid_left"`
	ColumnWidth     float64 `json:"column_width"`
	PixelsPerMinute float64 `json:"pixels_per_minute"`
	CellWidth       float64 `json:"cell_width"`
	CellHeight      float64 `json:"cell_height"`
}

func (g Geometry) pixelsPerMinute() float64 {
	if g.PixelsPerMinute <= 0 {
		return 1
	}
	return g.PixelsPerMinute
}

// Pointer is a raw pointer position relative to the grid's bounding box
// origin, in the same pixel units as Geometry.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Candidate is the resolved target of a completed drag: a concrete day plus
// a snapped start expressed in minutes since midnight. Duration is never part
// of a move candidate; moves preserve it.
type Candidate struct {
	Date         time.Time
	StartMinutes int
}

func (c Candidate) StartTime() string {
	return FormatClock(c.StartMinutes)
}

// Gesture tracks one drag or resize from start to commit or cancellation.
// The original session is captured on start so a cancelled gesture can snap
// back without any mutation.
type Gesture struct {
	State       GestureState
	Session     models.Session
	snapMinutes int
	minDuration int
}

func NewGesture(session models.Session, snapMinutes, minDuration int) *Gesture {
	if snapMinutes <= 0 {
		snapMinutes = 1
	}
	return &Gesture{
		State:       GestureDragging,
		Session:     session,
		snapMinutes: snapMinutes,
		minDuration: minDuration,
	}
}

// EndMove resolves the drop position. ok=false means the pointer landed
// outside the grid or outside the 24-hour axis: the gesture is cancelled and
// the session keeps its original date and time.
func (g *Gesture) EndMove(view ViewState, geo Geometry, p Pointer) (Candidate, bool) {
	candidate, ok := ResolveMove(view, geo, p, g.snapMinutes)
	if !ok {
		g.State = GestureCancelled
		return Candidate{}, false
	}
	g.State = GestureCommitted
	return candidate, true
}

// EndMonthMove resolves a month-view drop by hit-testing the pointer against
// the rendered month cells; the session keeps its original start time.
func (g *Gesture) EndMonthMove(view ViewState, geo Geometry, p Pointer) (Candidate, bool) {
	date, ok := ResolveMonthCell(view, geo, p)
	if !ok {
		g.State = GestureCancelled
		return Candidate{}, false
	}
	g.State = GestureCommitted
	return Candidate{
		Date:         date,
		StartMinutes: ClockMinutesOrDefault(g.Session.StartTime),
	}, true
}

// EndResize converts a vertical pointer delta into a new duration, snapped
// and clamped to the minimum. Resizes only ever change the duration.
func (g *Gesture) EndResize(geo Geometry, deltaY float64) int {
	g.State = GestureCommitted
	return ResolveResize(g.Session.DurationMinutes, deltaY, geo, g.snapMinutes, g.minDuration)
}

func (g *Gesture) Cancel() {
	g.State = GestureCancelled
}

// ResolveMove maps a pointer position to a (day, start) pair: the column
// index picks the date out of the visible days, the vertical offset becomes
// minutes since midnight rounded to the snap granularity.
func ResolveMove(view ViewState, geo Geometry, p Pointer, snapMinutes int) (Candidate, bool) {
	days := view.VisibleDays()

	if geo.ColumnWidth <= 0 || p.X < geo.GridLeft {
		return Candidate{}, false
	}
	dayIndex := int(math.Floor((p.X - geo.GridLeft) / geo.ColumnWidth))
	if dayIndex < 0 || dayIndex >= len(days) {
		return Candidate{}, false
	}

	minutes := snapToGrid(minutesFromTop(geo, p.Y), snapMinutes)
	if minutes < 0 || minutes >= MinutesPerDay {
		return Candidate{}, false
	}

	return Candidate{Date: days[dayIndex], StartMinutes: minutes}, true
}

// ResolveMonthCell hit-tests a pointer against the month grid's week rows and
// day cells.
func ResolveMonthCell(view ViewState, geo Geometry, p Pointer) (time.Time, bool) {
	if geo.CellWidth <= 0 || geo.CellHeight <= 0 {
		return time.Time{}, false
	}
	if p.X < geo.GridLeft || p.Y < geo.GridTop {
		return time.Time{}, false
	}

	weeks := view.MonthWeeks()
	row := int(math.Floor((p.Y - geo.GridTop) / geo.CellHeight))
	col := int(math.Floor((p.X - geo.GridLeft) / geo.CellWidth))
	if row < 0 || row >= len(weeks) || col < 0 || col >= 7 {
		return time.Time{}, false
	}
	return weeks[row][col], true
}

// ResolveResize applies a vertical delta to the original duration. The result
// snaps to the scheduling granularity and never goes below the floor.
func ResolveResize(durationMinutes int, deltaY float64, geo Geometry, snapMinutes, minDuration int) int {
	delta := int(math.Round(deltaY / geo.pixelsPerMinute()))
	resized := snapToGrid(durationMinutes+delta, snapMinutes)
	if resized < minDuration {
		return minDuration
	}
	return resized
}

func minutesFromTop(geo Geometry, y float64) int {
	return int(math.Round((y - geo.GridTop) / geo.pixelsPerMinute()))
}

func snapToGrid(minutes, snapMinutes int) int {
	if snapMinutes <= 1 {
		return minutes
	}
	return int(math.Round(float64(minutes)/float64(snapMinutes))) * snapMinutes
}
