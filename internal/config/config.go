package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	DBUrl  string
	AppEnv string

	// Scheduling knobs.
	ReadyThreshold        int
	MinSessionMinutes     int
	DefaultSessionMinutes int
	SnapMinutes           int
	OverdueAfterDays      int
	RejectOverlaps        bool

	// Weekly generation defaults.
	WorkingDays       []int
	WorkingHoursStart string
	WorkingHoursEnd   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	workingDays, err := parseWorkingDays(getEnv("WORKING_DAYS", "0,1,2,3,4"))
	if err != nil {
		return nil, fmt.Errorf("WORKING_DAYS: %w", err)
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DBUrl:                 getEnv("DB_URL", ""),
		AppEnv:                normalizeEnv(getEnv("APP_ENV", "production")),
		ReadyThreshold:        getEnvInt("READY_THRESHOLD", 30),
		MinSessionMinutes:     getEnvInt("MIN_SESSION_MINUTES", 15),
		DefaultSessionMinutes: getEnvInt("DEFAULT_SESSION_MINUTES", 45),
		SnapMinutes:           getEnvInt("SNAP_MINUTES", 15),
		OverdueAfterDays:      getEnvInt("OVERDUE_AFTER_DAYS", 30),
		RejectOverlaps:        getEnvBool("REJECT_OVERLAPS", false),
		WorkingDays:           workingDays,
		WorkingHoursStart:     getEnv("WORKING_HOURS_START", "08:00"),
		WorkingHoursEnd:       getEnv("WORKING_HOURS_END", "17:00"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

// parseWorkingDays parses a comma-separated list of weekday numbers,
// 0 = Sunday through 6 = Saturday.
func parseWorkingDays(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("weekday %d out of range", day)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no working days configured")
	}
	return days, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
