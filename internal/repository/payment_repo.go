package repository

import (
	"context"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

type CreatePaymentInput struct {
	ClientID int64
	Amount   float64
	Method   string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (client_id, amount, method)
		VALUES ($1, $2, $3)
		RETURNING id, client_id, amount, method, created_at
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, input.ClientID, input.Amount, input.Method).Scan(
		&payment.ID,
		&payment.ClientID,
		&payment.Amount,
		&payment.Method,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Payment, error) {
	query := `
		SELECT id, client_id, amount, method, created_at
		FROM payments
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.ClientID,
			&payment.Amount,
			&payment.Method,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
