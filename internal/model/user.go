package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Travel preference enumerations. Each field falls back to its default when
// absent or empty.
const (
	TransportFlight = "flight"
	TransportTrain  = "train"
	TransportBus    = "bus"
	TransportCar    = "car"
	TransportAny    = "any"

	AccommodationHotel     = "hotel"
	AccommodationHostel    = "hostel"
	AccommodationApartment = "apartment"
	AccommodationCamping   = "camping"
	AccommodationAny       = "any"

	BudgetTierBudget = "budget"
	BudgetTierMedium = "medium"
	BudgetTierLuxury = "luxury"
)

// TravelPreferences captures a user's standing travel choices.
type TravelPreferences struct {
	PreferredTransport string `bson:"preferredTransport" json:"preferredTransport"`
	AccommodationType  string `bson:"accommodationType" json:"accommodationType"`
	Budget             string `bson:"budget" json:"budget"`
}

// DefaultTravelPreferences returns the preference record used when a user has
// never set one.
func DefaultTravelPreferences() TravelPreferences {
	return TravelPreferences{
		PreferredTransport: TransportAny,
		AccommodationType:  AccommodationAny,
		Budget:             BudgetTierMedium,
	}
}

// User is a stored user document. Email is unique and stored lowercase.
// The password hash is never serialized to JSON.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"`
	Name                 string             `bson:"name" json:"name"`
	Location             string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio                  string             `bson:"bio,omitempty" json:"bio,omitempty"`
	FavoriteDestinations []string           `bson:"favoriteDestinations,omitempty" json:"favoriteDestinations,omitempty"`
	TravelPreferences    TravelPreferences  `bson:"travelPreferences" json:"travelPreferences"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest overwrites profile fields; email is immutable here.
type UpdateProfileRequest struct {
	Name                 string             `json:"name"`
	Location             string             `json:"location"`
	Bio                  string             `json:"bio"`
	FavoriteDestinations []string           `json:"favoriteDestinations"`
	TravelPreferences    *TravelPreferences `json:"travelPreferences"`
}

// ChangePasswordRequest is the payload for PUT /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse carries a bearer token plus the public user record.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
