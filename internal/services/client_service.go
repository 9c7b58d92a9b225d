package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/billing"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/repository"
)

var phonePattern = regexp.MustCompile(`^[\+]?[\d\s\-\(\)]+$`)

type ClientService struct {
	db          *pgxpool.Pool
	clientRepo  *repository.ClientRepository
	sessionRepo *repository.SessionRepository
	paymentRepo *repository.PaymentRepository
	notifier    ChangeNotifier

	overdueAfterDays int
	readyThreshold   int
}

func NewClientService(
	db *pgxpool.Pool,
	clientRepo *repository.ClientRepository,
	sessionRepo *repository.SessionRepository,
	paymentRepo *repository.PaymentRepository,
	notifier ChangeNotifier,
	overdueAfterDays int,
	readyThreshold int,
) *ClientService {
	return &ClientService{
		db:               db,
		clientRepo:       clientRepo,
		sessionRepo:      sessionRepo,
		paymentRepo:      paymentRepo,
		notifier:         orNoop(notifier),
		overdueAfterDays: overdueAfterDays,
		readyThreshold:   readyThreshold,
	}
}

type RegisterClientInput struct {
	Name  string
	Phone string
}

func (s *ClientService) RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if phone == "" || !phonePattern.MatchString(phone) {
		return nil, ErrInvalidInput
	}

	client, err := s.clientRepo.Create(ctx, repository.CreateClientInput{
		Name:  name,
		Phone: phone,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventClientUpdated, client.ID, 0)
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, clientID int64) (*models.ClientDetail, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &models.ClientDetail{
		Client:              *client,
		TestProgressPercent: billing.TestProgressPercent(client.CompletedSessions, s.readyThreshold),
		Sessions:            sessions,
	}, nil
}

func (s *ClientService) ListClients(ctx context.Context, filter repository.ClientListFilter) ([]models.ClientDetail, int, error) {
	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	details := make([]models.ClientDetail, 0, len(clients))
	for _, client := range clients {
		details = append(details, models.ClientDetail{
			Client:              client,
			TestProgressPercent: billing.TestProgressPercent(client.CompletedSessions, s.readyThreshold),
		})
	}
	return details, total, nil
}

// RecordPayment stores the payment and folds it into the client's balance in
// one transaction; payment status is re-derived from the new balance, never
// edited directly.
func (s *ClientService) RecordPayment(ctx context.Context, clientID int64, amount float64, method string) (*models.Client, error) {
	if clientID <= 0 || amount <= 0 {
		return nil, ErrInvalidInput
	}
	method = strings.TrimSpace(strings.ToLower(method))
	if method == "" {
		method = "cash"
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txClientRepo := repository.NewClientRepository(tx)
	txPaymentRepo := repository.NewPaymentRepository(tx)

	client, err := txClientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if _, err := txPaymentRepo.Create(ctx, repository.CreatePaymentInput{
		ClientID: clientID,
		Amount:   amount,
		Method:   method,
	}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	balance := client.Balance - amount
	updated, err := txClientRepo.UpdateDerivedState(ctx, clientID, repository.DerivedClientState{
		CompletedSessions: client.CompletedSessions,
		LastSessionDate:   client.LastSessionDate,
		Balance:           balance,
		PaymentStatus:     billing.Derive(balance, &now, now, s.overdueAfterDays),
		LastPaymentDate:   &now,
		ReadyForTest:      billing.ReadyForTest(client.CompletedSessions, s.readyThreshold),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventClientUpdated, clientID, 0)
	return updated, nil
}

func (s *ClientService) ListPayments(ctx context.Context, clientID int64) ([]models.Payment, error) {
	return s.paymentRepo.ListByClient(ctx, clientID)
}

// UpdateProgressNotes is the one client field edited freehand; everything
// else derived is recomputed from events.
func (s *ClientService) UpdateProgressNotes(ctx context.Context, clientID int64, notes string) error {
	if clientID <= 0 {
		return ErrInvalidInput
	}
	if err := s.clientRepo.UpdateProgressNotes(ctx, clientID, notes); err != nil {
		return err
	}
	s.notifier.NotifyCalendarChanged(EventClientUpdated, clientID, 0)
	return nil
}

func (s *ClientService) SetClientStatus(ctx context.Context, clientID int64, status string) error {
	if clientID <= 0 {
		return ErrInvalidInput
	}
	if status != models.ClientActive && status != models.ClientInactive {
		return ErrInvalidInput
	}
	if err := s.clientRepo.UpdateStatus(ctx, clientID, status); err != nil {
		return err
	}
	s.notifier.NotifyCalendarChanged(EventClientUpdated, clientID, 0)
	return nil
}
