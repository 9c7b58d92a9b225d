package schedule

import (
	"sort"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/calendar"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

// DayWindow is a recurring time window on one weekday, 0 = Sunday.
type DayWindow struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Preferences are the recurring availability rules a week is generated from.
type Preferences struct {
	WorkingDays      []int       `json:"working_days"`
	WorkingStart     string      `json:"working_start"`
	WorkingEnd       string      `json:"working_end"`
	SessionDuration  int         `json:"session_duration"`
	FixedCommitments []DayWindow `json:"fixed_commitments,omitempty"`
	PreferredBreaks  []DayWindow `json:"preferred_breaks,omitempty"`
}

// PriorityFunc orders the waiting pool: it reports whether a should be
// scheduled before b. Swappable so stronger heuristics (overdue balance,
// test readiness) can replace the default without touching the slot walk.
type PriorityFunc func(a, b models.Client) bool

// LongestIdleFirst is the default priority: clients never seen come first,
// then the client whose last session is oldest.
func LongestIdleFirst(a, b models.Client) bool {
	switch {
	case a.LastSessionDate == nil && b.LastSessionDate == nil:
		return a.ID < b.ID
	case a.LastSessionDate == nil:
		return true
	case b.LastSessionDate == nil:
		return false
	default:
		return a.LastSessionDate.Before(*b.LastSessionDate)
	}
}

// GenerateWeek produces the slot proposal for the 7 days starting at
// weekStart. Days outside the working set are skipped, a fixed commitment
// claims its whole day, break windows are emitted as single slots with the
// walk resuming at their end, and everything else becomes available slots of
// the configured duration. Clients are then assigned to available slots in
// priority order, one slot per client per week. The result is a proposal;
// nothing is persisted here.
func GenerateWeek(weekStart time.Time, prefs Preferences, clients []models.Client, prioritize PriorityFunc) []models.Slot {
	if prioritize == nil {
		prioritize = LongestIdleFirst
	}

	workingStart := calendar.ClockMinutesOrDefault(prefs.WorkingStart)
	workingEnd := calendar.ClockMinutesOrDefault(prefs.WorkingEnd)

	var slots []models.Slot
	for day := 0; day < 7; day++ {
		if !containsDay(prefs.WorkingDays, day) {
			continue
		}
		date := calendar.StartOfDay(weekStart).AddDate(0, 0, day)

		if commitment, ok := findWindow(prefs.FixedCommitments, day); ok {
			slots = append(slots, models.Slot{
				Date:      date,
				StartTime: commitment.Start,
				EndTime:   commitment.End,
				Kind:      models.SlotFixedCommitment,
			})
			continue
		}

		slots = append(slots, walkDay(date, day, workingStart, workingEnd, prefs)...)
	}

	return assignClients(slots, clients, prioritize)
}

func walkDay(date time.Time, day, workingStart, workingEnd int, prefs Preferences) []models.Slot {
	var slots []models.Slot

	for current := workingStart; current < workingEnd; {
		if window, ok := breakCovering(prefs.PreferredBreaks, day, current); ok {
			breakEnd := calendar.ClockMinutesOrDefault(window.End)
			slots = append(slots, models.Slot{
				Date:      date,
				StartTime: window.Start,
				EndTime:   window.End,
				Kind:      models.SlotBreak,
			})
			// Resume at the break's end, not one increment later, so slots
			// never overlap the break window.
			if breakEnd <= current {
				break
			}
			current = breakEnd
			continue
		}

		end := current + prefs.SessionDuration
		if prefs.SessionDuration <= 0 || end > calendar.MinutesPerDay {
			break
		}
		slots = append(slots, models.Slot{
			Date:      date,
			StartTime: calendar.FormatClock(current),
			EndTime:   calendar.FormatClock(end),
			Kind:      models.SlotAvailable,
		})
		current = end
	}

	return slots
}

// assignClients books the waiting pool onto available slots in generation
// order. Each client gets at most one slot per generated week; leftover slots
// stay available and leftover clients wait for the next pass.
func assignClients(slots []models.Slot, clients []models.Client, prioritize PriorityFunc) []models.Slot {
	queue := make([]models.Client, len(clients))
	copy(queue, clients)
	sort.SliceStable(queue, func(i, j int) bool {
		return prioritize(queue[i], queue[j])
	})

	next := 0
	for i := range slots {
		if slots[i].Kind != models.SlotAvailable || next >= len(queue) {
			continue
		}
		clientID := queue[next].ID
		slots[i].ClientID = &clientID
		slots[i].Kind = models.SlotBooked
		next++
	}
	return slots
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func findWindow(windows []DayWindow, day int) (DayWindow, bool) {
	for _, window := range windows {
		if window.Day == day {
			return window, true
		}
	}
	return DayWindow{}, false
}

func breakCovering(windows []DayWindow, day, minutes int) (DayWindow, bool) {
	for _, window := range windows {
		if window.Day != day {
			continue
		}
		start := calendar.ClockMinutesOrDefault(window.Start)
		end := calendar.ClockMinutesOrDefault(window.End)
		if minutes >= start && minutes < end {
			return window, true
		}
	}
	return DayWindow{}, false
}
