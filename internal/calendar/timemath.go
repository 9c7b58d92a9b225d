package calendar

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	// DefaultClockMinutes is the fallback applied when a persisted "HH:MM"
	// value cannot be parsed: 09:00.
	DefaultClockMinutes = 9 * 60
)

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday beginning the week containing t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight.
// A single-digit hour is accepted.
func ParseClock(value string) (int, error) {
	hourPart, minutePart, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}
	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockMinutesOrDefault parses a persisted wall-clock string, falling back to
// 09:00 when the value is malformed. The fallback is logged so bad data does
// not disappear silently.
func ClockMinutesOrDefault(value string) int {
	minutes, err := ParseClock(value)
	if err != nil {
		log.Printf("calendar: %v, falling back to %s", err, FormatClock(DefaultClockMinutes))
		return DefaultClockMinutes
	}
	return minutes
}

// AtClock anchors minutes-since-midnight onto a calendar day.
func AtClock(day time.Time, minutes int) time.Time {
	return StartOfDay(day).Add(time.Duration(minutes) * time.Minute)
}
