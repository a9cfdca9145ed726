package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/roamly-go/internal/model"
	"github.com/roamly/roamly-go/internal/repository"
)

var (
	ErrTitleRequired          = errors.New("title is required")
	ErrDestinationRequired    = errors.New("destination is required")
	ErrDatesRequired          = errors.New("startDate and endDate are required")
	ErrEndBeforeStart         = errors.New("endDate cannot be before startDate")
	ErrNegativeBudget         = errors.New("budget cannot be negative")
	ErrNegativeAmount         = errors.New("amounts cannot be negative")
	ErrActivityNameRequired   = errors.New("activity name is required")
	ErrInvalidStatus          = errors.New("invalid trip status")
	ErrInvalidExpenseCategory = errors.New("invalid expense category")
	ErrInvalidTipCategory     = errors.New("invalid tip category")
	ErrTipContentRequired     = errors.New("tip content is required")
	ErrInvalidTripID          = errors.New("invalid trip id")
	ErrTripNotFound           = errors.New("trip not found")
)

// TripStore is the persistence surface TripService needs. Satisfied by
// repository.TripRepository.
type TripStore interface {
	Create(ctx context.Context, trip *model.Trip) error
	List(ctx context.Context, ownerID primitive.ObjectID, f model.TripFilter) ([]model.Trip, error)
	ListUpcoming(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error)
	ListPast(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error)
	ListEndedWithStatus(ctx context.Context, ownerID primitive.ObjectID, now time.Time, statuses []string) ([]model.Trip, error)
	GetByID(ctx context.Context, ownerID, tripID primitive.ObjectID) (*model.Trip, error)
	Update(ctx context.Context, trip *model.Trip) error
	UpdateStatus(ctx context.Context, ownerID, tripID primitive.ObjectID, status string, now time.Time) error
	Delete(ctx context.Context, ownerID, tripID primitive.ObjectID) error
	PushTip(ctx context.Context, ownerID, tripID primitive.ObjectID, tip model.Tip, now time.Time) (*model.Trip, error)
}

// TripService handles trip business logic. All operations are scoped to the
// owning user; acting on someone else's trip reports ErrTripNotFound.
type TripService struct {
	repo TripStore
	now  func() time.Time
}

// NewTripService creates a new TripService.
func NewTripService(repo TripStore) *TripService {
	return &TripService{repo: repo, now: time.Now}
}

// NewTripServiceWithClock creates a TripService with an injected clock.
// Used by tests.
func NewTripServiceWithClock(repo TripStore, now func() time.Time) *TripService {
	return &TripService{repo: repo, now: now}
}

// DeriveStatus classifies a trip by its date range relative to now.
func DeriveStatus(now, startDate, endDate time.Time) string {
	switch {
	case now.Before(startDate):
		return model.StatusUpcoming
	case now.After(endDate):
		return model.StatusCompleted
	default:
		return model.StatusOngoing
	}
}

// CreateTrip validates and persists a new trip. The status is computed from
// the dates, never taken from the caller.
func (s *TripService) CreateTrip(ctx context.Context, ownerID primitive.ObjectID, req model.CreateTripRequest) (*model.Trip, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, ErrDestinationRequired
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, ErrDatesRequired
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if req.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	if err := validateActivities(req.Activities); err != nil {
		return nil, err
	}
	if err := validateExpenses(req.Expenses); err != nil {
		return nil, err
	}

	now := s.now()
	trip := &model.Trip{
		UserID:      ownerID,
		Title:       title,
		Destination: destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Status:      DeriveStatus(now, req.StartDate, req.EndDate),
		Description: strings.TrimSpace(req.Description),
		Activities:  emptyIfNilActivities(req.Activities),
		Expenses:    emptyIfNilExpenses(req.Expenses),
		Tips:        []model.Tip{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns the owner's trips matching the filter, ascending by
// start date.
func (s *TripService) ListTrips(ctx context.Context, ownerID primitive.ObjectID, f model.TripFilter) ([]model.Trip, error) {
	if f.Status != nil && !model.ValidStatus(*f.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, ownerID, f)
}

// GetTrip returns one of the owner's trips. A malformed id, a missing trip,
// and a trip owned by someone else are all reported distinctly from the
// caller's side only as invalid-id vs not-found.
func (s *TripService) GetTrip(ctx context.Context, ownerID primitive.ObjectID, tripID string) (*model.Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// UpdateTrip merges the non-nil request fields into the stored trip,
// re-validates, and recomputes the status. An explicit cancelled status is
// sticky: the date derivation never overrides it.
func (s *TripService) UpdateTrip(ctx context.Context, ownerID primitive.ObjectID, tripID string, req model.UpdateTripRequest) (*model.Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		trip.Title = title
	}
	if req.Destination != nil {
		destination := strings.TrimSpace(*req.Destination)
		if destination == "" {
			return nil, ErrDestinationRequired
		}
		trip.Destination = destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, ErrNegativeBudget
		}
		trip.Budget = *req.Budget
	}
	if req.Description != nil {
		trip.Description = strings.TrimSpace(*req.Description)
	}
	if req.Activities != nil {
		if err := validateActivities(*req.Activities); err != nil {
			return nil, err
		}
		trip.Activities = emptyIfNilActivities(*req.Activities)
	}
	if req.Expenses != nil {
		if err := validateExpenses(*req.Expenses); err != nil {
			return nil, err
		}
		trip.Expenses = emptyIfNilExpenses(*req.Expenses)
	}

	cancelled := trip.Status == model.StatusCancelled
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		cancelled = *req.Status == model.StatusCancelled
	}

	now := s.now()
	if cancelled {
		trip.Status = model.StatusCancelled
	} else {
		trip.Status = DeriveStatus(now, trip.StartDate, trip.EndDate)
	}
	trip.UpdatedAt = now

	if err := s.repo.Update(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes one of the owner's trips. Repeating the call on an
// already-deleted id reports ErrTripNotFound.
func (s *TripService) DeleteTrip(ctx context.Context, ownerID primitive.ObjectID, tripID string) error {
	id, err := parseTripID(tripID)
	if err != nil {
		return err
	}
	err = s.repo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrTripNotFound) {
		return ErrTripNotFound
	}
	return err
}

// AddTip appends a tip with a server-assigned timestamp and returns the
// updated trip.
func (s *TripService) AddTip(ctx context.Context, ownerID primitive.ObjectID, tripID string, req model.AddTipRequest) (*model.Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrTipContentRequired
	}
	if !model.ValidTipCategory(req.Category) {
		return nil, ErrInvalidTipCategory
	}

	now := s.now()
	tip := model.Tip{Content: content, Category: req.Category, CreatedAt: now}
	trip, err := s.repo.PushTip(ctx, ownerID, id, tip, now)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// ListUpcoming returns upcoming trips whose start date is in the future.
// Stale statuses are refreshed first so elapsed trips do not linger here.
func (s *TripService) ListUpcoming(ctx context.Context, ownerID primitive.ObjectID) ([]model.Trip, error) {
	now := s.now()
	if err := s.refreshStaleStatuses(ctx, ownerID, now); err != nil {
		return nil, err
	}
	return s.repo.ListUpcoming(ctx, ownerID, now)
}

// ListPast returns completed trips whose end date has elapsed, after the
// same stale-status refresh.
func (s *TripService) ListPast(ctx context.Context, ownerID primitive.ObjectID) ([]model.Trip, error) {
	now := s.now()
	if err := s.refreshStaleStatuses(ctx, ownerID, now); err != nil {
		return nil, err
	}
	return s.repo.ListPast(ctx, ownerID, now)
}

// refreshStaleStatuses re-derives the status of trips whose dates have
// elapsed since their last save. The stored status is only ever advanced to
// completed; cancelled trips are left untouched.
func (s *TripService) refreshStaleStatuses(ctx context.Context, ownerID primitive.ObjectID, now time.Time) error {
	stale, err := s.repo.ListEndedWithStatus(ctx, ownerID, now, []string{model.StatusUpcoming, model.StatusOngoing})
	if err != nil {
		return err
	}
	for _, trip := range stale {
		err := s.repo.UpdateStatus(ctx, ownerID, trip.ID, model.StatusCompleted, now)
		if err != nil && !errors.Is(err, repository.ErrTripNotFound) {
			return err
		}
	}
	return nil
}

func parseTripID(tripID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(tripID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidTripID
	}
	return id, nil
}

func validateActivities(activities []model.Activity) error {
	for _, a := range activities {
		if strings.TrimSpace(a.Name) == "" {
			return ErrActivityNameRequired
		}
		if a.Cost < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

func validateExpenses(expenses []model.Expense) error {
	for _, e := range expenses {
		if !model.ValidExpenseCategory(e.Category) {
			return ErrInvalidExpenseCategory
		}
		if e.Amount < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

func emptyIfNilActivities(a []model.Activity) []model.Activity {
	if a == nil {
		return []model.Activity{}
	}
	return a
}

func emptyIfNilExpenses(e []model.Expense) []model.Expense {
	if e == nil {
		return []model.Expense{}
	}
	return e
}
