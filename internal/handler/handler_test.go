package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/roamly-go/internal/middleware"
	"github.com/roamly/roamly-go/internal/model"
	"github.com/roamly/roamly-go/internal/repository"
	"github.com/roamly/roamly-go/internal/service"
)

const testJWTSecret = "handler-test-secret"

// In-memory stores mirroring the Mongo repositories' error contract.

type memUserStore struct {
	users map[primitive.ObjectID]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) Update(_ context.Context, user *model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

type memTripStore struct {
	trips map[primitive.ObjectID]*model.Trip
}

func newMemTripStore() *memTripStore {
	return &memTripStore{trips: make(map[primitive.ObjectID]*model.Trip)}
}

func (s *memTripStore) Create(_ context.Context, trip *model.Trip) error {
	trip.ID = primitive.NewObjectID()
	cp := *trip
	s.trips[trip.ID] = &cp
	return nil
}

func (s *memTripStore) collect(ownerID primitive.ObjectID, keep func(*model.Trip) bool) []model.Trip {
	out := make([]model.Trip, 0)
	for _, trip := range s.trips {
		if trip.UserID == ownerID && keep(trip) {
			out = append(out, *trip)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (s *memTripStore) List(_ context.Context, ownerID primitive.ObjectID, f model.TripFilter) ([]model.Trip, error) {
	return s.collect(ownerID, func(t *model.Trip) bool {
		if f.Status != nil && t.Status != *f.Status {
			return false
		}
		if f.Destination != nil &&
			!strings.Contains(strings.ToLower(t.Destination), strings.ToLower(*f.Destination)) {
			return false
		}
		return true
	}), nil
}

func (s *memTripStore) ListUpcoming(_ context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error) {
	return s.collect(ownerID, func(t *model.Trip) bool {
		return t.Status == model.StatusUpcoming && t.StartDate.After(now)
	}), nil
}

func (s *memTripStore) ListPast(_ context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error) {
	return s.collect(ownerID, func(t *model.Trip) bool {
		return t.Status == model.StatusCompleted && t.EndDate.Before(now)
	}), nil
}

func (s *memTripStore) ListEndedWithStatus(_ context.Context, ownerID primitive.ObjectID, now time.Time, statuses []string) ([]model.Trip, error) {
	return s.collect(ownerID, func(t *model.Trip) bool {
		if !t.EndDate.Before(now) {
			return false
		}
		for _, st := range statuses {
			if t.Status == st {
				return true
			}
		}
		return false
	}), nil
}

func (s *memTripStore) GetByID(_ context.Context, ownerID, tripID primitive.ObjectID) (*model.Trip, error) {
	trip, ok := s.trips[tripID]
	if !ok || trip.UserID != ownerID {
		return nil, repository.ErrTripNotFound
	}
	cp := *trip
	return &cp, nil
}

func (s *memTripStore) Update(_ context.Context, trip *model.Trip) error {
	existing, ok := s.trips[trip.ID]
	if !ok || existing.UserID != trip.UserID {
		return repository.ErrTripNotFound
	}
	cp := *trip
	s.trips[trip.ID] = &cp
	return nil
}

func (s *memTripStore) UpdateStatus(_ context.Context, ownerID, tripID primitive.ObjectID, status string, now time.Time) error {
	trip, ok := s.trips[tripID]
	if !ok || trip.UserID != ownerID {
		return repository.ErrTripNotFound
	}
	trip.Status = status
	trip.UpdatedAt = now
	return nil
}

func (s *memTripStore) Delete(_ context.Context, ownerID, tripID primitive.ObjectID) error {
	trip, ok := s.trips[tripID]
	if !ok || trip.UserID != ownerID {
		return repository.ErrTripNotFound
	}
	delete(s.trips, tripID)
	return nil
}

func (s *memTripStore) PushTip(_ context.Context, ownerID, tripID primitive.ObjectID, tip model.Tip, now time.Time) (*model.Trip, error) {
	trip, ok := s.trips[tripID]
	if !ok || trip.UserID != ownerID {
		return nil, repository.ErrTripNotFound
	}
	trip.Tips = append(trip.Tips, tip)
	trip.UpdatedAt = now
	cp := *trip
	return &cp, nil
}

// newTestRouter wires handlers, services, and middleware the way the server
// entrypoint does, backed by in-memory stores.
func newTestRouter() http.Handler {
	authSvc := service.NewAuthService(newMemUserStore(), testJWTSecret, time.Hour)
	tripSvc := service.NewTripService(newMemTripStore())
	authHandler := NewAuthHandler(authSvc)
	tripHandler := NewTripHandler(tripSvc)

	r := chi.NewRouter()
	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(testJWTSecret))
		r.Get("/api/auth/profile", authHandler.HandleGetProfile)
		r.Put("/api/auth/profile", authHandler.HandleUpdateProfile)
		r.Put("/api/auth/change-password", authHandler.HandleChangePassword)

		r.Post("/api/trips", tripHandler.HandleCreateTrip)
		r.Get("/api/trips", tripHandler.HandleListTrips)
		r.Get("/api/trips/upcoming", tripHandler.HandleUpcomingTrips)
		r.Get("/api/trips/past", tripHandler.HandlePastTrips)
		r.Get("/api/trips/{tripId}", tripHandler.HandleGetTrip)
		r.Put("/api/trips/{tripId}", tripHandler.HandleUpdateTrip)
		r.Delete("/api/trips/{tripId}", tripHandler.HandleDeleteTrip)
		r.Post("/api/trips/{tripId}/tips", tripHandler.HandleAddTip)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

// registerUser registers a fresh user and returns their token.
func registerUser(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "name": "Test User",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("register response missing token")
	}
	return token
}
