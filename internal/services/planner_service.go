package services

import (
	"context"
	"errors"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/calendar"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/schedule"
)

type activeClientLister interface {
	ListActive(ctx context.Context) ([]models.Client, error)
}

type sessionCommitter interface {
	CommitSession(ctx context.Context, input CommitSessionInput) (*models.Session, error)
}

// PlannerService generates weekly slot proposals from the configured
// availability and turns accepted proposals into scheduled sessions.
type PlannerService struct {
	clients   activeClientLister
	committer sessionCommitter

	defaults   schedule.Preferences
	prioritize schedule.PriorityFunc
}

func NewPlannerService(clients activeClientLister, committer sessionCommitter, defaults schedule.Preferences) *PlannerService {
	return &PlannerService{
		clients:    clients,
		committer:  committer,
		defaults:   defaults,
		prioritize: schedule.LongestIdleFirst,
	}
}

// SetPriority swaps the assignment heuristic for subsequent generations.
func (s *PlannerService) SetPriority(prioritize schedule.PriorityFunc) {
	if prioritize != nil {
		s.prioritize = prioritize
	}
}

// GenerateWeekInput carries per-request overrides of the configured
// availability. Zero values fall back to the defaults.
type GenerateWeekInput struct {
	WeekOf           time.Time
	WorkingDays      []int
	WorkingStart     string
	WorkingEnd       string
	SessionDuration  int
	FixedCommitments []schedule.DayWindow
	PreferredBreaks  []schedule.DayWindow
}

type WeekProposal struct {
	WeekStart time.Time     `json:"week_start"`
	Slots     []models.Slot `json:"slots"`
}

// GenerateWeek builds the slot proposal for the week containing WeekOf. The
// active waiting pool is ordered by the current priority and booked one slot
// each; the caller reviews the proposal before anything is persisted.
func (s *PlannerService) GenerateWeek(ctx context.Context, input GenerateWeekInput) (*WeekProposal, error) {
	prefs := s.defaults
	if len(input.WorkingDays) > 0 {
		prefs.WorkingDays = input.WorkingDays
	}
	if input.WorkingStart != "" {
		prefs.WorkingStart = input.WorkingStart
	}
	if input.WorkingEnd != "" {
		prefs.WorkingEnd = input.WorkingEnd
	}
	if input.SessionDuration > 0 {
		prefs.SessionDuration = input.SessionDuration
	}
	if input.FixedCommitments != nil {
		prefs.FixedCommitments = input.FixedCommitments
	}
	if input.PreferredBreaks != nil {
		prefs.PreferredBreaks = input.PreferredBreaks
	}

	clients, err := s.clients.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	weekStart := calendar.StartOfWeek(input.WeekOf)
	return &WeekProposal{
		WeekStart: weekStart,
		Slots:     schedule.GenerateWeek(weekStart, prefs, clients, s.prioritize),
	}, nil
}

// AcceptResult summarizes a persisted proposal: how many booked slots became
// sessions and how many were skipped because their client disappeared between
// generation and acceptance.
type AcceptResult struct {
	Created []models.Session `json:"created"`
	Skipped int              `json:"skipped"`
}

// AcceptSlots persists the booked slots of a reviewed proposal as scheduled
// sessions. Non-booked slots are ignored; a slot whose client no longer
// exists is skipped rather than failing the whole batch.
func (s *PlannerService) AcceptSlots(ctx context.Context, slots []models.Slot) (*AcceptResult, error) {
	result := &AcceptResult{Created: make([]models.Session, 0, len(slots))}

	for _, slot := range slots {
		if slot.Kind != models.SlotBooked || slot.ClientID == nil {
			continue
		}

		start := calendar.ClockMinutesOrDefault(slot.StartTime)
		end := calendar.ClockMinutesOrDefault(slot.EndTime)
		duration := end - start
		if duration <= 0 {
			result.Skipped++
			continue
		}

		session, err := s.committer.CommitSession(ctx, CommitSessionInput{
			ClientID:        *slot.ClientID,
			Date:            slot.Date,
			StartTime:       slot.StartTime,
			DurationMinutes: duration,
			Status:          models.SessionScheduled,
		})
		if err != nil {
			if errors.Is(err, ErrClientNotFound) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Created = append(result.Created, *session)
	}

	return result, nil
}
