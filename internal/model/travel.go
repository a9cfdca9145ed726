package model

// FlightSearchParams describes an outbound flight search.
type FlightSearchParams struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    string  `json:"returnDate,omitempty"`
	Adults        int     `json:"adults"`
	MaxPrice      float64 `json:"maxPrice,omitempty"`
}

// HotelSearchParams describes a hotel availability search.
type HotelSearchParams struct {
	Location string  `json:"location"`
	CheckIn  string  `json:"checkIn"`
	CheckOut string  `json:"checkOut"`
	Guests   int     `json:"guests"`
	MaxPrice float64 `json:"maxPrice,omitempty"`
}

// WeatherParams identifies the forecast location.
type WeatherParams struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// FlightTime is one endpoint of a flight segment.
type FlightTime struct {
	Time    string `json:"time"`
	Airport string `json:"airport"`
}

// Flight is the uniform shape providers' flight results are reshaped into.
type Flight struct {
	ID        string     `json:"id"`
	Airline   string     `json:"airline"`
	Price     float64    `json:"price"`
	Departure FlightTime `json:"departure"`
	Arrival   FlightTime `json:"arrival"`
	Duration  string     `json:"duration"`
	Stops     int        `json:"stops"`
}

// Hotel is the uniform shape providers' hotel results are reshaped into.
type Hotel struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Rating    float64  `json:"rating"`
	Price     float64  `json:"price"`
	Address   string   `json:"address"`
	Thumbnail string   `json:"thumbnail"`
	Amenities []string `json:"amenities"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
}

// WeatherForecast is a single forecast slot.
type WeatherForecast struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}
