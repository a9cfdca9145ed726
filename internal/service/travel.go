package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/roamly/roamly-go/internal/model"
)

var (
	ErrFlightDataUnavailable  = errors.New("failed to fetch flight data")
	ErrHotelDataUnavailable   = errors.New("failed to fetch hotel data")
	ErrWeatherDataUnavailable = errors.New("failed to fetch weather data")
)

const (
	defaultFlightBaseURL  = "https://skyscanner-api.p.rapidapi.com/v3/flights/live/search"
	defaultHotelBaseURL   = "https://booking-com.p.rapidapi.com/v1/hotels/search"
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/forecast"
)

// TravelService is a stateless pass-through to third-party flight, hotel,
// and weather providers. Provider responses are reshaped into the uniform
// model types; provider failures surface only as the generic errors above.
type TravelService struct {
	client            *http.Client
	rapidAPIKey       string
	openWeatherAPIKey string

	flightBaseURL  string
	hotelBaseURL   string
	weatherBaseURL string
}

// NewTravelService creates a TravelService talking to the real providers.
func NewTravelService(rapidAPIKey, openWeatherAPIKey string) *TravelService {
	return &TravelService{
		client:            &http.Client{Timeout: 15 * time.Second},
		rapidAPIKey:       rapidAPIKey,
		openWeatherAPIKey: openWeatherAPIKey,
		flightBaseURL:     defaultFlightBaseURL,
		hotelBaseURL:      defaultHotelBaseURL,
		weatherBaseURL:    defaultWeatherBaseURL,
	}
}

// NewTravelServiceWithURLs creates a TravelService against custom provider
// endpoints. Used by tests.
func NewTravelServiceWithURLs(client *http.Client, flightURL, hotelURL, weatherURL string) *TravelService {
	return &TravelService{
		client:         client,
		flightBaseURL:  flightURL,
		hotelBaseURL:   hotelURL,
		weatherBaseURL: weatherURL,
	}
}

// Provider wire shapes. Only the fields we reshape are decoded.

type flightProviderResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Airline struct {
			Name string `json:"name"`
		} `json:"airline"`
		Price struct {
			Amount float64 `json:"amount"`
		} `json:"price"`
		Departure struct {
			Time    string `json:"time"`
			Airport struct {
				Name string `json:"name"`
			} `json:"airport"`
		} `json:"departure"`
		Arrival struct {
			Time    string `json:"time"`
			Airport struct {
				Name string `json:"name"`
			} `json:"airport"`
		} `json:"arrival"`
		Duration string `json:"duration"`
		Stops    int    `json:"stops"`
	} `json:"data"`
}

type hotelProviderResponse struct {
	Result []struct {
		HotelID     json.Number `json:"hotel_id"`
		HotelName   string      `json:"hotel_name"`
		ReviewScore float64     `json:"review_score"`
		PriceBreak  struct {
			GrossPrice float64 `json:"gross_price"`
		} `json:"price_breakdown"`
		Address      string   `json:"address"`
		MainPhotoURL string   `json:"main_photo_url"`
		Facilities   []string `json:"facilities"`
		Latitude     float64  `json:"latitude"`
		Longitude    float64  `json:"longitude"`
	} `json:"result"`
}

type weatherProviderResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// SearchFlights queries the flight aggregator and reshapes its results.
func (s *TravelService) SearchFlights(ctx context.Context, params model.FlightSearchParams) ([]model.Flight, error) {
	q := url.Values{}
	q.Set("origin", params.Origin)
	q.Set("destination", params.Destination)
	q.Set("date", params.DepartureDate)
	q.Set("adults", strconv.Itoa(params.Adults))
	q.Set("currency", "USD")

	var body flightProviderResponse
	if err := s.get(ctx, s.flightBaseURL, q, rapidAPIHeaders(s.rapidAPIKey, "skyscanner-api.p.rapidapi.com"), &body); err != nil {
		slog.Error("flight provider request failed", "error", err)
		return nil, ErrFlightDataUnavailable
	}

	flights := make([]model.Flight, 0, len(body.Data))
	for _, f := range body.Data {
		flights = append(flights, model.Flight{
			ID:        f.ID,
			Airline:   f.Airline.Name,
			Price:     f.Price.Amount,
			Departure: model.FlightTime{Time: f.Departure.Time, Airport: f.Departure.Airport.Name},
			Arrival:   model.FlightTime{Time: f.Arrival.Time, Airport: f.Arrival.Airport.Name},
			Duration:  f.Duration,
			Stops:     f.Stops,
		})
	}
	return flights, nil
}

// SearchHotels queries the hotel aggregator and reshapes its results.
func (s *TravelService) SearchHotels(ctx context.Context, params model.HotelSearchParams) ([]model.Hotel, error) {
	q := url.Values{}
	q.Set("location", params.Location)
	q.Set("checkin", params.CheckIn)
	q.Set("checkout", params.CheckOut)
	q.Set("adults", strconv.Itoa(params.Guests))
	q.Set("room_number", "1")
	q.Set("currency", "USD")

	var body hotelProviderResponse
	if err := s.get(ctx, s.hotelBaseURL, q, rapidAPIHeaders(s.rapidAPIKey, "booking-com.p.rapidapi.com"), &body); err != nil {
		slog.Error("hotel provider request failed", "error", err)
		return nil, ErrHotelDataUnavailable
	}

	hotels := make([]model.Hotel, 0, len(body.Result))
	for _, h := range body.Result {
		hotels = append(hotels, model.Hotel{
			ID:        h.HotelID.String(),
			Name:      h.HotelName,
			Rating:    h.ReviewScore,
			Price:     h.PriceBreak.GrossPrice,
			Address:   h.Address,
			Thumbnail: h.MainPhotoURL,
			Amenities: h.Facilities,
			Latitude:  h.Latitude,
			Longitude: h.Longitude,
		})
	}
	return hotels, nil
}

// GetWeatherForecast queries the weather provider and reshapes its results.
func (s *TravelService) GetWeatherForecast(ctx context.Context, params model.WeatherParams) ([]model.WeatherForecast, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s,%s", params.City, params.Country))
	q.Set("appid", s.openWeatherAPIKey)
	q.Set("units", "metric")

	var body weatherProviderResponse
	if err := s.get(ctx, s.weatherBaseURL, q, nil, &body); err != nil {
		slog.Error("weather provider request failed", "error", err)
		return nil, ErrWeatherDataUnavailable
	}

	forecasts := make([]model.WeatherForecast, 0, len(body.List))
	for _, slot := range body.List {
		f := model.WeatherForecast{
			Date:        slot.DtTxt,
			Temperature: slot.Main.Temp,
			FeelsLike:   slot.Main.FeelsLike,
			Humidity:    slot.Main.Humidity,
		}
		if len(slot.Weather) > 0 {
			f.Description = slot.Weather[0].Description
			f.Icon = slot.Weather[0].Icon
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, nil
}

func (s *TravelService) get(ctx context.Context, baseURL string, query url.Values, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func rapidAPIHeaders(key, host string) map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  key,
		"X-RapidAPI-Host": host,
	}
}
