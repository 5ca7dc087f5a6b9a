package provider

import (
	"context"
	"net/url"
	"strconv"

	"github.com/satriahrh/gerch/domain"
)

// OpenMeteo reads current conditions from the Open-Meteo forecast API.
type OpenMeteo struct {
	base
}

func NewOpenMeteo(opts ...Option) *OpenMeteo {
	return &OpenMeteo{base: newBase("https://api.open-meteo.com/v1", opts)}
}

type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

func (o *OpenMeteo) CurrentWeather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	var resp openMeteoResponse
	err := o.getJSON(ctx, "/forecast", url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(lon, 'f', 4, 64)},
		"current_weather": {"true"},
		"timezone":        {"auto"},
	}, &resp)
	if err != nil {
		return domain.Weather{}, err
	}
	if resp.CurrentWeather == nil {
		return domain.Weather{}, domain.ErrNotFound
	}
	return domain.Weather{
		Temperature: resp.CurrentWeather.Temperature,
		WindSpeed:   resp.CurrentWeather.WindSpeed,
	}, nil
}
