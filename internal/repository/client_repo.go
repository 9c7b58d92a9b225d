package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

type CreateClientInput struct {
	Name  string
	Phone string
}

type ClientListFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// DerivedClientState carries the fields recomputed from session and payment
// history. It is always written as one unit so balance, payment status and
// readiness cannot drift apart.
type DerivedClientState struct {
	CompletedSessions int
	LastSessionDate   *time.Time
	Balance           float64
	PaymentStatus     string
	LastPaymentDate   *time.Time
	ReadyForTest      bool
}

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	query := `
		INSERT INTO clients (name, phone)
		VALUES ($1, $2)
		RETURNING id, name, phone, status, start_date, completed_sessions, last_session_date,
			balance, payment_status, last_payment_date, ready_for_test, progress_notes,
			created_at, updated_at
	`

	var client models.Client
	err := r.db.QueryRow(ctx, query, input.Name, input.Phone).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Status,
		&client.StartDate,
		&client.CompletedSessions,
		&client.LastSessionDate,
		&client.Balance,
		&client.PaymentStatus,
		&client.LastPaymentDate,
		&client.ReadyForTest,
		&client.ProgressNotes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, clientID int64) (*models.Client, error) {
	query := `
		SELECT id, name, phone, status, start_date, completed_sessions, last_session_date,
			balance, payment_status, last_payment_date, ready_for_test, progress_notes,
			created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client models.Client
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Status,
		&client.StartDate,
		&client.CompletedSessions,
		&client.LastSessionDate,
		&client.Balance,
		&client.PaymentStatus,
		&client.LastPaymentDate,
		&client.ReadyForTest,
		&client.ProgressNotes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context, filter ClientListFilter) ([]models.Client, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		whereParts = append(whereParts, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	where := strings.Join(whereParts, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clients WHERE %s", where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, phone, status, start_date, completed_sessions, last_session_date,
			balance, payment_status, last_payment_date, ready_for_test, progress_notes,
			created_at, updated_at
		FROM clients
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Phone,
			&client.Status,
			&client.StartDate,
			&client.CompletedSessions,
			&client.LastSessionDate,
			&client.Balance,
			&client.PaymentStatus,
			&client.LastPaymentDate,
			&client.ReadyForTest,
			&client.ProgressNotes,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// ListActive returns the waiting pool for the weekly generator.
func (r *ClientRepository) ListActive(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, phone, status, start_date, completed_sessions, last_session_date,
			balance, payment_status, last_payment_date, ready_for_test, progress_notes,
			created_at, updated_at
		FROM clients
		WHERE status = 'active'
		ORDER BY last_session_date ASC NULLS FIRST, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Phone,
			&client.Status,
			&client.StartDate,
			&client.CompletedSessions,
			&client.LastSessionDate,
			&client.Balance,
			&client.PaymentStatus,
			&client.LastPaymentDate,
			&client.ReadyForTest,
			&client.ProgressNotes,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// UpdateDerivedState writes the recomputed session/payment aggregates in one
// statement.
func (r *ClientRepository) UpdateDerivedState(ctx context.Context, clientID int64, state DerivedClientState) (*models.Client, error) {
	query := `
		UPDATE clients
		SET completed_sessions = $2,
			last_session_date = $3,
			balance = $4,
			payment_status = $5,
			last_payment_date = $6,
			ready_for_test = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, phone, status, start_date, completed_sessions, last_session_date,
			balance, payment_status, last_payment_date, ready_for_test, progress_notes,
			created_at, updated_at
	`

	var client models.Client
	err := r.db.QueryRow(
		ctx,
		query,
		clientID,
		state.CompletedSessions,
		state.LastSessionDate,
		state.Balance,
		state.PaymentStatus,
		state.LastPaymentDate,
		state.ReadyForTest,
	).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Status,
		&client.StartDate,
		&client.CompletedSessions,
		&client.LastSessionDate,
		&client.Balance,
		&client.PaymentStatus,
		&client.LastPaymentDate,
		&client.ReadyForTest,
		&client.ProgressNotes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) UpdateProgressNotes(ctx context.Context, clientID int64, notes string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clients
		SET progress_notes = $2, updated_at = NOW()
		WHERE id = $1
	`, clientID, notes)
	return err
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, clientID int64, status string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clients
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, clientID, status)
	return err
}
