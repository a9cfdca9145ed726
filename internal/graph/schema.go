package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/roamly/roamly-go/internal/model"
	"github.com/roamly/roamly-go/internal/service"
)

var flightTimeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FlightTime",
	Fields: graphql.Fields{
		"time":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"airport": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var flightType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Flight",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"airline":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"departure": &graphql.Field{Type: graphql.NewNonNull(flightTimeType)},
		"arrival":   &graphql.Field{Type: graphql.NewNonNull(flightTimeType)},
		"duration":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"stops":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var hotelType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Hotel",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"rating":    &graphql.Field{Type: graphql.Float},
		"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"address":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"thumbnail": &graphql.Field{Type: graphql.String},
		"amenities": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"latitude":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"longitude": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var weatherForecastType = graphql.NewObject(graphql.ObjectConfig{
	Name: "WeatherForecast",
	Fields: graphql.Fields{
		"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"temperature": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"feelsLike":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"humidity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"icon":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var flightSearchInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FlightSearchInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"origin":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"destination":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"departureDate": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"returnDate":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"adults":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"maxPrice":      &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var hotelSearchInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "HotelSearchInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"location": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"checkIn":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"checkOut": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"guests":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"maxPrice": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var weatherInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "WeatherInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"city":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"country": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

// NewSchema builds the travel-data query schema around the given service.
func NewSchema(travel *service.TravelService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"searchFlights": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(flightType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(flightSearchInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, ok := p.Args["input"].(map[string]interface{})
					if !ok {
						return nil, errors.New("invalid input")
					}
					params := model.FlightSearchParams{
						Origin:        stringArg(input, "origin"),
						Destination:   stringArg(input, "destination"),
						DepartureDate: stringArg(input, "departureDate"),
						ReturnDate:    stringArg(input, "returnDate"),
						Adults:        intArg(input, "adults"),
						MaxPrice:      floatArg(input, "maxPrice"),
					}
					return travel.SearchFlights(p.Context, params)
				},
			},
			"searchHotels": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(hotelType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(hotelSearchInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, ok := p.Args["input"].(map[string]interface{})
					if !ok {
						return nil, errors.New("invalid input")
					}
					params := model.HotelSearchParams{
						Location: stringArg(input, "location"),
						CheckIn:  stringArg(input, "checkIn"),
						CheckOut: stringArg(input, "checkOut"),
						Guests:   intArg(input, "guests"),
						MaxPrice: floatArg(input, "maxPrice"),
					}
					return travel.SearchHotels(p.Context, params)
				},
			},
			"getWeatherForecast": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(weatherForecastType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(weatherInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, ok := p.Args["input"].(map[string]interface{})
					if !ok {
						return nil, errors.New("invalid input")
					}
					params := model.WeatherParams{
						City:    stringArg(input, "city"),
						Country: stringArg(input, "country"),
					}
					return travel.GetWeatherForecast(p.Context, params)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func stringArg(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intArg(m map[string]interface{}, key string) int {
	if v, ok := m[key].(int); ok {
		return v
	}
	return 0
}

func floatArg(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
