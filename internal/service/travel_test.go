package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly-go/internal/model"
)

func newProviderStub(t *testing.T, wantPath string, status int, body string, capture *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.Path)
		if capture != nil {
			m := make(map[string]string)
			for k := range r.URL.Query() {
				m[k] = r.URL.Query().Get(k)
			}
			*capture = m
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestSearchFlights_ReshapesProviderResponse(t *testing.T) {
	var query map[string]string
	srv := newProviderStub(t, "/flights", http.StatusOK, `{
		"data": [{
			"id": "fl-1",
			"airline": {"name": "Iberia"},
			"price": {"amount": 214.5},
			"departure": {"time": "2026-04-01T08:30:00Z", "airport": {"name": "Madrid Barajas"}},
			"arrival": {"time": "2026-04-01T10:45:00Z", "airport": {"name": "Lisbon Humberto Delgado"}},
			"duration": "2h15m",
			"stops": 0
		}]
	}`, &query)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), srv.URL+"/flights", "", "")
	flights, err := svc.SearchFlights(context.Background(), model.FlightSearchParams{
		Origin:        "MAD",
		Destination:   "LIS",
		DepartureDate: "2026-04-01",
		Adults:        2,
	})
	require.NoError(t, err)

	require.Len(t, flights, 1)
	assert.Equal(t, model.Flight{
		ID:        "fl-1",
		Airline:   "Iberia",
		Price:     214.5,
		Departure: model.FlightTime{Time: "2026-04-01T08:30:00Z", Airport: "Madrid Barajas"},
		Arrival:   model.FlightTime{Time: "2026-04-01T10:45:00Z", Airport: "Lisbon Humberto Delgado"},
		Duration:  "2h15m",
		Stops:     0,
	}, flights[0])

	assert.Equal(t, "MAD", query["origin"])
	assert.Equal(t, "LIS", query["destination"])
	assert.Equal(t, "2026-04-01", query["date"])
	assert.Equal(t, "2", query["adults"])
}

func TestSearchFlights_ProviderErrorIsGeneric(t *testing.T) {
	srv := newProviderStub(t, "/flights", http.StatusBadGateway, `{"message":"quota exceeded"}`, nil)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), srv.URL+"/flights", "", "")
	_, err := svc.SearchFlights(context.Background(), model.FlightSearchParams{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2026-04-01", Adults: 1,
	})
	assert.ErrorIs(t, err, ErrFlightDataUnavailable)
}

func TestSearchHotels_ReshapesProviderResponse(t *testing.T) {
	srv := newProviderStub(t, "/hotels", http.StatusOK, `{
		"result": [{
			"hotel_id": 88421,
			"hotel_name": "Alfama View",
			"review_score": 8.7,
			"price_breakdown": {"gross_price": 132.0},
			"address": "Rua do Vigario 12, Lisbon",
			"main_photo_url": "https://cdn.example.com/88421.jpg",
			"facilities": ["wifi", "breakfast"],
			"latitude": 38.7117,
			"longitude": -9.1265
		}]
	}`, nil)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), "", srv.URL+"/hotels", "")
	hotels, err := svc.SearchHotels(context.Background(), model.HotelSearchParams{
		Location: "Lisbon", CheckIn: "2026-04-01", CheckOut: "2026-04-05", Guests: 2,
	})
	require.NoError(t, err)

	require.Len(t, hotels, 1)
	h := hotels[0]
	assert.Equal(t, "88421", h.ID)
	assert.Equal(t, "Alfama View", h.Name)
	assert.Equal(t, 8.7, h.Rating)
	assert.Equal(t, 132.0, h.Price)
	assert.Equal(t, []string{"wifi", "breakfast"}, h.Amenities)
	assert.Equal(t, 38.7117, h.Latitude)
}

func TestSearchHotels_ProviderErrorIsGeneric(t *testing.T) {
	srv := newProviderStub(t, "/hotels", http.StatusInternalServerError, ``, nil)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), "", srv.URL+"/hotels", "")
	_, err := svc.SearchHotels(context.Background(), model.HotelSearchParams{
		Location: "Lisbon", CheckIn: "2026-04-01", CheckOut: "2026-04-05", Guests: 2,
	})
	assert.ErrorIs(t, err, ErrHotelDataUnavailable)
}

func TestGetWeatherForecast_ReshapesProviderResponse(t *testing.T) {
	var query map[string]string
	srv := newProviderStub(t, "/forecast", http.StatusOK, `{
		"list": [
			{
				"dt_txt": "2026-04-01 12:00:00",
				"main": {"temp": 19.4, "feels_like": 18.9, "humidity": 61},
				"weather": [{"description": "scattered clouds", "icon": "03d"}]
			},
			{
				"dt_txt": "2026-04-01 15:00:00",
				"main": {"temp": 21.0, "feels_like": 20.4, "humidity": 55},
				"weather": []
			}
		]
	}`, &query)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), "", "", srv.URL+"/forecast")
	forecasts, err := svc.GetWeatherForecast(context.Background(), model.WeatherParams{
		City: "Lisbon", Country: "PT",
	})
	require.NoError(t, err)

	require.Len(t, forecasts, 2)
	assert.Equal(t, model.WeatherForecast{
		Date:        "2026-04-01 12:00:00",
		Temperature: 19.4,
		FeelsLike:   18.9,
		Humidity:    61,
		Description: "scattered clouds",
		Icon:        "03d",
	}, forecasts[0])

	// Slots with no weather entries keep zero description and icon.
	assert.Empty(t, forecasts[1].Description)
	assert.Empty(t, forecasts[1].Icon)

	assert.Equal(t, "Lisbon,PT", query["q"])
	assert.Equal(t, "metric", query["units"])
}

func TestGetWeatherForecast_ProviderErrorIsGeneric(t *testing.T) {
	srv := newProviderStub(t, "/forecast", http.StatusUnauthorized, `{"cod":401}`, nil)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), "", "", srv.URL+"/forecast")
	_, err := svc.GetWeatherForecast(context.Background(), model.WeatherParams{City: "Lisbon", Country: "PT"})
	assert.ErrorIs(t, err, ErrWeatherDataUnavailable)
}

func TestSearchFlights_EmptyProviderDataIsEmptySlice(t *testing.T) {
	srv := newProviderStub(t, "/flights", http.StatusOK, `{"data": []}`, nil)
	defer srv.Close()

	svc := NewTravelServiceWithURLs(srv.Client(), srv.URL+"/flights", "", "")
	flights, err := svc.SearchFlights(context.Background(), model.FlightSearchParams{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2026-04-01", Adults: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}
