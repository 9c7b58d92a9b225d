package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/billing"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/calendar"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/repository"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrConflict               = errors.New("conflict")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrClientNotFound         = errors.New("client not found")
	ErrSessionNotFound        = errors.New("session not found")
)

type SessionService struct {
	db          *pgxpool.Pool
	sessionRepo *repository.SessionRepository
	clientRepo  *repository.ClientRepository
	notifier    ChangeNotifier

	minSessionMinutes     int
	defaultSessionMinutes int
	rejectOverlaps        bool
	overdueAfterDays      int
	readyThreshold        int
}

func NewSessionService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	clientRepo *repository.ClientRepository,
	notifier ChangeNotifier,
	minSessionMinutes int,
	defaultSessionMinutes int,
	rejectOverlaps bool,
	overdueAfterDays int,
	readyThreshold int,
) *SessionService {
	return &SessionService{
		db:                    db,
		sessionRepo:           sessionRepo,
		clientRepo:            clientRepo,
		notifier:              orNoop(notifier),
		minSessionMinutes:     minSessionMinutes,
		defaultSessionMinutes: defaultSessionMinutes,
		rejectOverlaps:        rejectOverlaps,
		overdueAfterDays:      overdueAfterDays,
		readyThreshold:        readyThreshold,
	}
}

// ProposeSession builds an unsaved draft for the tapped calendar cell.
// Nothing is persisted until the draft is committed.
func (s *SessionService) ProposeSession(clientID int64, date time.Time, hour int) (*models.SessionDraft, error) {
	if hour < 0 || hour > 23 {
		return nil, ErrInvalidInput
	}
	return &models.SessionDraft{
		DraftID:         uuid.NewString(),
		ClientID:        clientID,
		Date:            calendar.StartOfDay(date).Format("2006-01-02"),
		StartTime:       calendar.FormatClock(hour * 60),
		DurationMinutes: s.defaultSessionMinutes,
		Cost:            0,
		IsPaid:          false,
	}, nil
}

type CommitSessionInput struct {
	ClientID        int64
	Date            time.Time
	StartTime       string
	DurationMinutes int
	Cost            float64
	IsPaid          bool
	Notes           *string
	Status          string
}

func (s *SessionService) CommitSession(ctx context.Context, input CommitSessionInput) (*models.Session, error) {
	if input.ClientID <= 0 {
		return nil, ErrInvalidInput
	}
	if input.DurationMinutes < s.minSessionMinutes {
		return nil, ErrInvalidInput
	}
	if input.Cost < 0 {
		return nil, ErrInvalidInput
	}
	if _, err := calendar.ParseClock(input.StartTime); err != nil {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = models.SessionScheduled
	}
	if input.Status != models.SessionScheduled && input.Status != models.SessionCompleted {
		return nil, ErrInvalidInput
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	date := calendar.StartOfDay(input.Date)
	if s.rejectOverlaps {
		overlaps, err := s.sessionRepo.HasOverlap(ctx, date, input.StartTime, input.DurationMinutes, 0)
		if err != nil {
			return nil, err
		}
		if overlaps {
			return nil, ErrConflict
		}
	}

	createInput := repository.CreateSessionInput{
		ClientID:        input.ClientID,
		Date:            date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Cost:            input.Cost,
		IsPaid:          input.IsPaid,
		Notes:           input.Notes,
		Status:          input.Status,
	}

	var session *models.Session
	if input.Status == models.SessionCompleted {
		// Logging a past lesson updates the client's derived state in the
		// same transaction as the insert.
		session, err = s.createCompleted(ctx, client, createInput)
	} else {
		session, err = s.sessionRepo.Create(ctx, createInput)
	}
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionCreated, session.ClientID, session.ID)
	return session, nil
}

func (s *SessionService) createCompleted(
	ctx context.Context,
	client *models.Client,
	input repository.CreateSessionInput,
) (*models.Session, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txClientRepo := repository.NewClientRepository(tx)

	session, err := txSessionRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	state := derivedStateOf(client)
	state.CompletedSessions++
	state.LastSessionDate = laterDate(state.LastSessionDate, session.Date)
	if !session.IsPaid {
		state.Balance += session.Cost
	}
	if _, err := s.applyDerivedState(ctx, txClientRepo, client.ID, state); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

type EditSessionInput struct {
	Cost   *float64
	IsPaid *bool
	Notes  *string
}

// CommitEdit changes the bookkeeping fields of a session. For completed
// sessions the client's balance tracks the edit: only unpaid cost counts
// toward what is owed, so the old contribution is removed and the new one
// added.
func (s *SessionService) CommitEdit(ctx context.Context, sessionID int64, input EditSessionInput) (*models.Session, error) {
	if input.Cost != nil && *input.Cost < 0 {
		return nil, ErrInvalidInput
	}
	if input.Cost == nil && input.IsPaid == nil && input.Notes == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	details := repository.UpdateSessionDetailsInput{
		Cost:   input.Cost,
		IsPaid: input.IsPaid,
		Notes:  input.Notes,
	}

	if session.Status != models.SessionCompleted {
		updated, err := s.sessionRepo.UpdateDetails(ctx, sessionID, details)
		if err != nil {
			return nil, err
		}
		s.notifier.NotifyCalendarChanged(EventSessionUpdated, updated.ClientID, updated.ID)
		return updated, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txClientRepo := repository.NewClientRepository(tx)

	updated, err := txSessionRepo.UpdateDetails(ctx, sessionID, details)
	if err != nil {
		return nil, err
	}

	client, err := txClientRepo.GetByID(ctx, session.ClientID)
	if err != nil {
		return nil, err
	}

	state := derivedStateOf(client)
	state.Balance += balanceContribution(updated) - balanceContribution(session)
	if _, err := s.applyDerivedState(ctx, txClientRepo, client.ID, state); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionUpdated, updated.ClientID, updated.ID)
	return updated, nil
}

// CommitDelete removes a session. Deleting a completed session unwinds its
// effect on the client: the completed count drops, its unpaid cost leaves the
// balance, and the last session date is rebuilt from what remains.
func (s *SessionService) CommitDelete(ctx context.Context, sessionID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}

	if session.Status != models.SessionCompleted {
		if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
			return err
		}
		s.notifier.NotifyCalendarChanged(EventSessionDeleted, session.ClientID, session.ID)
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txClientRepo := repository.NewClientRepository(tx)

	if err := txSessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	client, err := txClientRepo.GetByID(ctx, session.ClientID)
	if err != nil {
		return err
	}

	lastCompleted, err := txSessionRepo.LastCompletedDate(ctx, session.ClientID)
	if err != nil {
		return err
	}

	state := derivedStateOf(client)
	if state.CompletedSessions > 0 {
		state.CompletedSessions--
	}
	state.Balance -= balanceContribution(session)
	state.LastSessionDate = lastCompleted
	if _, err := s.applyDerivedState(ctx, txClientRepo, client.ID, state); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.notifier.NotifyCalendarChanged(EventSessionDeleted, session.ClientID, session.ID)
	return nil
}

// Reschedule moves a scheduled session to a new day and start time. Moving a
// completed or cancelled session is a state error, not a validation error.
func (s *SessionService) Reschedule(ctx context.Context, sessionID int64, date time.Time, startTime string) (*models.Session, error) {
	if _, err := calendar.ParseClock(startTime); err != nil {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != models.SessionScheduled {
		return nil, ErrInvalidStateTransition
	}

	date = calendar.StartOfDay(date)
	if calendar.SameDay(session.Date, date) && session.StartTime == startTime {
		return session, nil
	}

	if s.rejectOverlaps {
		overlaps, err := s.sessionRepo.HasOverlap(ctx, date, startTime, session.DurationMinutes, session.ID)
		if err != nil {
			return nil, err
		}
		if overlaps {
			return nil, ErrConflict
		}
	}

	updated, err := s.sessionRepo.UpdateSchedule(ctx, sessionID, date, startTime)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionUpdated, updated.ClientID, updated.ID)
	return updated, nil
}

// Resize changes a scheduled session's duration. Durations below the floor
// are rejected here; interactive resizes clamp before they reach this point.
func (s *SessionService) Resize(ctx context.Context, sessionID int64, durationMinutes int) (*models.Session, error) {
	if durationMinutes < s.minSessionMinutes {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != models.SessionScheduled {
		return nil, ErrInvalidStateTransition
	}
	if session.DurationMinutes == durationMinutes {
		return session, nil
	}

	updated, err := s.sessionRepo.UpdateDuration(ctx, sessionID, durationMinutes)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionUpdated, updated.ClientID, updated.ID)
	return updated, nil
}

// CompleteSession marks a scheduled session as done and folds it into the
// client's derived state: completed count, last session date, unpaid cost
// into the balance, and the readiness flag once the threshold is crossed.
func (s *SessionService) CompleteSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txClientRepo := repository.NewClientRepository(tx)

	session, err := txSessionRepo.UpdateStatusIfCurrent(ctx, sessionID, models.SessionScheduled, models.SessionCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyStatusConflict(ctx, sessionID)
		}
		return nil, err
	}

	client, err := txClientRepo.GetByID(ctx, session.ClientID)
	if err != nil {
		return nil, err
	}

	state := derivedStateOf(client)
	state.CompletedSessions++
	state.LastSessionDate = laterDate(state.LastSessionDate, session.Date)
	if !session.IsPaid {
		state.Balance += session.Cost
	}
	if _, err := s.applyDerivedState(ctx, txClientRepo, client.ID, state); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionUpdated, session.ClientID, session.ID)
	return session, nil
}

// CancelSession moves a scheduled session to cancelled. Cancelled sessions
// never touch the client's derived state.
func (s *SessionService) CancelSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	session, err := s.sessionRepo.UpdateStatusIfCurrent(ctx, sessionID, models.SessionScheduled, models.SessionCancelled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyStatusConflict(ctx, sessionID)
		}
		return nil, err
	}

	s.notifier.NotifyCalendarChanged(EventSessionUpdated, session.ClientID, session.ID)
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListByClient(ctx context.Context, clientID int64) ([]models.Session, error) {
	return s.sessionRepo.ListByClient(ctx, clientID)
}

// classifyStatusConflict separates "no such session" from "session exists but
// is not in the expected state" after a guarded status update matched nothing.
func (s *SessionService) classifyStatusConflict(ctx context.Context, sessionID int64) error {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}
	return ErrInvalidStateTransition
}

// applyDerivedState recomputes payment status and readiness from the mutated
// counters before persisting. Callers edit counters, never statuses.
func (s *SessionService) applyDerivedState(
	ctx context.Context,
	repo *repository.ClientRepository,
	clientID int64,
	state repository.DerivedClientState,
) (*models.Client, error) {
	state.PaymentStatus = billing.Derive(state.Balance, state.LastPaymentDate, time.Now().UTC(), s.overdueAfterDays)
	state.ReadyForTest = billing.ReadyForTest(state.CompletedSessions, s.readyThreshold)
	return repo.UpdateDerivedState(ctx, clientID, state)
}

func derivedStateOf(client *models.Client) repository.DerivedClientState {
	return repository.DerivedClientState{
		CompletedSessions: client.CompletedSessions,
		LastSessionDate:   client.LastSessionDate,
		Balance:           client.Balance,
		PaymentStatus:     client.PaymentStatus,
		LastPaymentDate:   client.LastPaymentDate,
		ReadyForTest:      client.ReadyForTest,
	}
}

func balanceContribution(session *models.Session) float64 {
	if session.IsPaid {
		return 0
	}
	return session.Cost
}

func laterDate(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.After(*current) {
		return &candidate
	}
	return current
}
