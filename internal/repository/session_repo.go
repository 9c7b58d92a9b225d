package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

type CreateSessionInput struct {
	ClientID        int64
	Date            time.Time
	StartTime       string
	DurationMinutes int
	Cost            float64
	IsPaid          bool
	Notes           *string
	Status          string
}

type UpdateSessionDetailsInput struct {
	Cost   *float64
	IsPaid *bool
	Notes  *string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	query := `
		INSERT INTO sessions (client_id, date, start_time, duration_min, cost, is_paid, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.ClientID,
		input.Date,
		input.StartTime,
		input.DurationMinutes,
		input.Cost,
		input.IsPaid,
		input.Notes,
		input.Status,
	).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `
		SELECT id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Session, error) {
	query := `
		SELECT id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
		FROM sessions
		WHERE client_id = $1
		ORDER BY date DESC, start_time DESC, id DESC
	`
	return r.list(ctx, query, clientID)
}

// ListByDateRange returns the sessions of a calendar window, from inclusive
// to exclusive.
func (r *SessionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	query := `
		SELECT id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
		FROM sessions
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC, start_time ASC, id ASC
	`
	return r.list(ctx, query, from, to)
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.ClientID,
			&session.Date,
			&session.StartTime,
			&session.DurationMinutes,
			&session.Cost,
			&session.IsPaid,
			&session.Notes,
			&session.Status,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateSchedule moves a session to a new day and start time. Duration is
// deliberately untouched; moves preserve it.
func (r *SessionRepository) UpdateSchedule(ctx context.Context, sessionID int64, date time.Time, startTime string) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET date = $2, start_time = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, date, startTime).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateDuration applies a resize; only the duration changes.
func (r *SessionRepository) UpdateDuration(ctx context.Context, sessionID int64, durationMinutes int) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET duration_min = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, durationMinutes).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) UpdateDetails(ctx context.Context, sessionID int64, input UpdateSessionDetailsInput) (*models.Session, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{sessionID}

	if input.Cost != nil {
		args = append(args, *input.Cost)
		setParts = append(setParts, fmt.Sprintf("cost = $%d", len(args)))
	}
	if input.IsPaid != nil {
		args = append(args, *input.IsPaid)
		setParts = append(setParts, fmt.Sprintf("is_paid = $%d", len(args)))
	}
	if input.Notes != nil {
		args = append(args, *input.Notes)
		setParts = append(setParts, fmt.Sprintf("notes = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE sessions
		SET %s
		WHERE id = $1
		RETURNING id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
	`, strings.Join(setParts, ", "))

	var session models.Session
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) UpdateStatusIfCurrent(ctx context.Context, sessionID int64, currentStatus, nextStatus string) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, client_id, date, start_time, duration_min, cost, is_paid, notes, status, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus).Scan(
		&session.ID,
		&session.ClientID,
		&session.Date,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Cost,
		&session.IsPaid,
		&session.Notes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// LastCompletedDate returns the most recent completed session date for a
// client, or nil when none remain. Used to rebuild the client's derived
// last_session_date after a completed session is removed.
func (r *SessionRepository) LastCompletedDate(ctx context.Context, clientID int64) (*time.Time, error) {
	query := `
		SELECT MAX(date)
		FROM sessions
		WHERE client_id = $1 AND status = 'completed'
	`

	var last *time.Time
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&last); err != nil {
		return nil, err
	}
	return last, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sessionID)
	return err
}

// HasOverlap reports whether any non-cancelled session on the given day
// intersects [startTime, startTime + duration). Used only when the
// double-booking rejection flag is enabled; the permissive default keeps the
// calendar's historical stacking behavior.
func (r *SessionRepository) HasOverlap(
	ctx context.Context,
	date time.Time,
	startTime string,
	durationMinutes int,
	excludedSessionID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE date = $1
			  AND id <> $4
			  AND status <> 'cancelled'
			  AND start_time::time < ($2::time + ($3::int * INTERVAL '1 minute'))
			  AND (start_time::time + (duration_min * INTERVAL '1 minute')) > $2::time
		)
	`

	var hasOverlap bool
	if err := r.db.QueryRow(ctx, query, date, startTime, durationMinutes, excludedSessionID).Scan(&hasOverlap); err != nil {
		return false, err
	}
	return hasOverlap, nil
}
