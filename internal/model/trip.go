package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip statuses. The first three are derived from the trip's date range at
// write time; cancelled is only ever set explicitly by the owner.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Expense categories.
const (
	ExpenseAccommodation = "accommodation"
	ExpenseTransport     = "transport"
	ExpenseFood          = "food"
	ExpenseActivities    = "activities"
	ExpenseShopping      = "shopping"
	ExpenseOther         = "other"
)

// Tip categories.
const (
	TipAccommodation = "accommodation"
	TipTransport     = "transport"
	TipFood          = "food"
	TipActivities    = "activities"
	TipSafety        = "safety"
	TipGeneral       = "general"
)

// ValidStatus reports whether s is a known trip status.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidExpenseCategory reports whether c is a known expense category.
func ValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseAccommodation, ExpenseTransport, ExpenseFood, ExpenseActivities, ExpenseShopping, ExpenseOther:
		return true
	}
	return false
}

// ValidTipCategory reports whether c is a known tip category.
func ValidTipCategory(c string) bool {
	switch c {
	case TipAccommodation, TipTransport, TipFood, TipActivities, TipSafety, TipGeneral:
		return true
	}
	return false
}

// Activity is a planned item inside a trip.
type Activity struct {
	Name  string    `bson:"name" json:"name"`
	Date  time.Time `bson:"date" json:"date"`
	Cost  float64   `bson:"cost" json:"cost"`
	Notes string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Expense is a recorded spend against the trip budget.
type Expense struct {
	Category    string    `bson:"category" json:"category"`
	Amount      float64   `bson:"amount" json:"amount"`
	Date        time.Time `bson:"date" json:"date"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}

// Tip is a free-text note attached to a trip with a server-set timestamp.
type Tip struct {
	Content   string    `bson:"content" json:"content"`
	Category  string    `bson:"category" json:"category"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Trip is a stored trip document, owned exclusively by UserID. Every read,
// update, and delete filters by owner as well as id.
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Destination string             `bson:"destination" json:"destination"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	Budget      float64            `bson:"budget" json:"budget"`
	Status      string             `bson:"status" json:"status"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Activities  []Activity         `bson:"activities" json:"activities"`
	Expenses    []Expense          `bson:"expenses" json:"expenses"`
	Tips        []Tip              `bson:"tips" json:"tips"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateTripRequest is the payload for POST /api/trips.
type CreateTripRequest struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Budget      float64    `json:"budget"`
	Description string     `json:"description"`
	Activities  []Activity `json:"activities"`
	Expenses    []Expense  `json:"expenses"`
}

// UpdateTripRequest is a partial-field merge; nil fields keep current values.
type UpdateTripRequest struct {
	Title       *string     `json:"title"`
	Destination *string     `json:"destination"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	Budget      *float64    `json:"budget"`
	Status      *string     `json:"status"`
	Description *string     `json:"description"`
	Activities  *[]Activity `json:"activities"`
	Expenses    *[]Expense  `json:"expenses"`
}

// AddTipRequest is the payload for POST /api/trips/{tripId}/tips.
type AddTipRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
}

// TripFilter holds the optional list filters. Each field is independently
// nullable and translated to a store predicate by the repository.
type TripFilter struct {
	Status        *string
	Destination   *string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
}
