package services

import (
	"context"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/calendar"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

type sessionWindowLister interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Session, error)
}

type sessionMover interface {
	GetSession(ctx context.Context, sessionID int64) (*models.Session, error)
	Reschedule(ctx context.Context, sessionID int64, date time.Time, startTime string) (*models.Session, error)
	Resize(ctx context.Context, sessionID int64, durationMinutes int) (*models.Session, error)
}

// CalendarService turns the stored sessions into a renderable grid and
// resolves drag gestures into session mutations. All geometry math lives in
// the calendar package; this service only decides whether a resolved gesture
// warrants a write.
type CalendarService struct {
	windows sessionWindowLister
	mover   sessionMover

	snapMinutes       int
	minSessionMinutes int
}

func NewCalendarService(windows sessionWindowLister, mover sessionMover, snapMinutes, minSessionMinutes int) *CalendarService {
	return &CalendarService{
		windows:           windows,
		mover:             mover,
		snapMinutes:       snapMinutes,
		minSessionMinutes: minSessionMinutes,
	}
}

// GridEntry pairs a session with its placement. Placed is false for month
// view entries, which render in day cells instead of on a time axis.
type GridEntry struct {
	Session models.Session  `json:"session"`
	Layout  calendar.Layout `json:"layout"`
	Placed  bool            `json:"placed"`
}

type GridView struct {
	Title       string               `json:"title"`
	Granularity calendar.Granularity `json:"granularity"`
	Days        []time.Time          `json:"days"`
	MonthWeeks  [][]time.Time        `json:"month_weeks,omitempty"`
	Entries     []GridEntry          `json:"entries"`
}

// Grid loads every session visible from the given anchor and zoom level and
// lays them out. The month window spans whole weeks, so padding days of the
// neighbouring months are included.
func (s *CalendarService) Grid(ctx context.Context, anchor time.Time, granularity string) (*GridView, error) {
	parsed, err := calendar.ParseGranularity(granularity)
	if err != nil {
		return nil, ErrInvalidInput
	}
	view := calendar.NewViewState(anchor, parsed)

	var from, to time.Time
	var weeks [][]time.Time
	if parsed == calendar.GranularityMonth {
		weeks = view.MonthWeeks()
		from = weeks[0][0]
		to = weeks[len(weeks)-1][6].AddDate(0, 0, 1)
	} else {
		days := view.VisibleDays()
		from = days[0]
		to = days[len(days)-1].AddDate(0, 0, 1)
	}

	sessions, err := s.windows.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]GridEntry, 0, len(sessions))
	for _, session := range sessions {
		entry := GridEntry{Session: session}
		if parsed != calendar.GranularityMonth {
			entry.Layout, entry.Placed = calendar.Place(session, view)
		}
		entries = append(entries, entry)
	}

	return &GridView{
		Title:       view.Title(),
		Granularity: parsed,
		Days:        view.VisibleDays(),
		MonthWeeks:  weeks,
		Entries:     entries,
	}, nil
}

// GestureResult reports how a drag or resize ended. A cancelled gesture
// carries the untouched session so the caller can snap the rendering back.
type GestureResult struct {
	State   calendar.GestureState `json:"state"`
	Session *models.Session       `json:"session"`
}

type DragEndInput struct {
	SessionID   int64
	Anchor      time.Time
	Granularity string
	Geometry    calendar.Geometry
	Pointer     calendar.Pointer
}

// OnDragEnd resolves a finished drag against the grid geometry. Drops outside
// the grid cancel without a write; a drop on the session's current slot
// commits without a write.
func (s *CalendarService) OnDragEnd(ctx context.Context, input DragEndInput) (*GestureResult, error) {
	parsed, err := calendar.ParseGranularity(input.Granularity)
	if err != nil {
		return nil, ErrInvalidInput
	}

	session, err := s.mover.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	view := calendar.NewViewState(input.Anchor, parsed)
	gesture := calendar.NewGesture(*session, s.snapMinutes, s.minSessionMinutes)

	var candidate calendar.Candidate
	var ok bool
	if parsed == calendar.GranularityMonth {
		candidate, ok = gesture.EndMonthMove(view, input.Geometry, input.Pointer)
	} else {
		candidate, ok = gesture.EndMove(view, input.Geometry, input.Pointer)
	}
	if !ok {
		return &GestureResult{State: gesture.State, Session: session}, nil
	}

	if calendar.SameDay(candidate.Date, session.Date) && candidate.StartTime() == session.StartTime {
		return &GestureResult{State: gesture.State, Session: session}, nil
	}

	updated, err := s.mover.Reschedule(ctx, session.ID, candidate.Date, candidate.StartTime())
	if err != nil {
		return nil, err
	}
	return &GestureResult{State: gesture.State, Session: updated}, nil
}

type ResizeEndInput struct {
	SessionID int64
	Geometry  calendar.Geometry
	DeltaY    float64
}

// OnResizeEnd resolves a finished resize. A delta that snaps back to the
// current duration commits without a write.
func (s *CalendarService) OnResizeEnd(ctx context.Context, input ResizeEndInput) (*GestureResult, error) {
	session, err := s.mover.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	gesture := calendar.NewGesture(*session, s.snapMinutes, s.minSessionMinutes)
	duration := gesture.EndResize(input.Geometry, input.DeltaY)
	if duration == session.DurationMinutes {
		return &GestureResult{State: gesture.State, Session: session}, nil
	}

	updated, err := s.mover.Resize(ctx, session.ID, duration)
	if err != nil {
		return nil, err
	}
	return &GestureResult{State: gesture.State, Session: updated}, nil
}
