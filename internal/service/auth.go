package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/roamly-go/internal/crypto"
	"github.com/roamly/roamly-go/internal/model"
	"github.com/roamly/roamly-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the persistence surface AuthService needs. Satisfied by
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// AuthService handles registration, login, profile, and password changes.
type AuthService struct {
	repo      UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns an auth token. The email
// is lowercased before storage so uniqueness is case-insensitive.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}
	if len(req.Password) < 6 {
		return model.AuthResponse{}, ErrPasswordTooShort
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.AuthResponse{}, ErrNameRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:             email,
		Password:          hash,
		Name:              name,
		TravelPreferences: model.DefaultTravelPreferences(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// Login authenticates a user and returns an auth token. Lookup and hash
// failures both yield the same generic error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.respond(user)
}

// GetProfile retrieves a user record by id.
func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites the mutable profile fields and re-issues a token
// carrying the unchanged identity claims. Email is immutable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req model.UpdateProfileRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrUserNotFound
		}
		return model.AuthResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	user.Location = strings.TrimSpace(req.Location)
	user.Bio = strings.TrimSpace(req.Bio)
	user.FavoriteDestinations = req.FavoriteDestinations
	user.TravelPreferences = normalizePreferences(req.TravelPreferences)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrUserNotFound
		}
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// ChangePassword verifies the current password and persists a fresh hash of
// the new one. The re-hash happens here explicitly; there is no implicit
// on-save hook.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, req model.ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return ErrPasswordRequired
	}
	if len(req.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	match, err := crypto.VerifyPassword(req.CurrentPassword, user.Password)
	if err != nil {
		return err
	}
	if !match {
		return ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hash
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

func (s *AuthService) respond(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID.Hex(), user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, User: *user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePreferences fills enumeration defaults for absent or unknown
// values rather than rejecting them.
func normalizePreferences(p *model.TravelPreferences) model.TravelPreferences {
	out := model.DefaultTravelPreferences()
	if p == nil {
		return out
	}
	switch p.PreferredTransport {
	case model.TransportFlight, model.TransportTrain, model.TransportBus, model.TransportCar, model.TransportAny:
		out.PreferredTransport = p.PreferredTransport
	}
	switch p.AccommodationType {
	case model.AccommodationHotel, model.AccommodationHostel, model.AccommodationApartment,
		model.AccommodationCamping, model.AccommodationAny:
		out.AccommodationType = p.AccommodationType
	}
	switch p.Budget {
	case model.BudgetTierBudget, model.BudgetTierMedium, model.BudgetTierLuxury:
		out.Budget = p.Budget
	}
	return out
}
