package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/roamly-go/internal/model"
	"github.com/roamly/roamly-go/internal/service"
)

// TripHandler handles HTTP requests for trip operations.
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(svc *service.TripService) *TripHandler {
	return &TripHandler{service: svc}
}

// HandleCreateTrip handles POST /api/trips.
func (h *TripHandler) HandleCreateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.service.CreateTrip(r.Context(), owner, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "trip": trip})
}

// HandleListTrips handles GET /api/trips with optional filters.
func (h *TripHandler) HandleListTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	filter, err := parseTripFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trips, err := h.service.ListTrips(r.Context(), owner, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trips": trips})
}

// HandleUpcomingTrips handles GET /api/trips/upcoming.
func (h *TripHandler) HandleUpcomingTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	trips, err := h.service.ListUpcoming(r.Context(), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trips": trips})
}

// HandlePastTrips handles GET /api/trips/past.
func (h *TripHandler) HandlePastTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	trips, err := h.service.ListPast(r.Context(), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trips": trips})
}

// HandleGetTrip handles GET /api/trips/{tripId}.
func (h *TripHandler) HandleGetTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	trip, err := h.service.GetTrip(r.Context(), owner, chi.URLParam(r, "tripId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trip": trip})
}

// HandleUpdateTrip handles PUT /api/trips/{tripId}.
func (h *TripHandler) HandleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.service.UpdateTrip(r.Context(), owner, chi.URLParam(r, "tripId"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trip": trip})
}

// HandleDeleteTrip handles DELETE /api/trips/{tripId}.
func (h *TripHandler) HandleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if err := h.service.DeleteTrip(r.Context(), owner, chi.URLParam(r, "tripId")); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "trip deleted successfully"})
}

// HandleAddTip handles POST /api/trips/{tripId}/tips.
func (h *TripHandler) HandleAddTip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.AddTipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.service.AddTip(r.Context(), owner, chi.URLParam(r, "tripId"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trip": trip})
}

func (h *TripHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrDestinationRequired),
		errors.Is(err, service.ErrDatesRequired),
		errors.Is(err, service.ErrEndBeforeStart),
		errors.Is(err, service.ErrNegativeBudget),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrActivityNameRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidExpenseCategory),
		errors.Is(err, service.ErrInvalidTipCategory),
		errors.Is(err, service.ErrTipContentRequired),
		errors.Is(err, service.ErrInvalidTripID):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrTripNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// parseTripFilter builds the optional-filter struct from query parameters.
func parseTripFilter(r *http.Request) (model.TripFilter, error) {
	q := r.URL.Query()
	var f model.TripFilter

	if v := strings.TrimSpace(q.Get("status")); v != "" {
		f.Status = &v
	}
	if v := strings.TrimSpace(q.Get("destination")); v != "" {
		f.Destination = &v
	}
	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return model.TripFilter{}, errors.New("startDate must be YYYY-MM-DD or RFC3339")
		}
		f.StartDateFrom = &t
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return model.TripFilter{}, errors.New("endDate must be YYYY-MM-DD or RFC3339")
		}
		f.StartDateTo = &t
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
