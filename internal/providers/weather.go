package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Forecast is the current conditions for one location.
type Forecast struct {
	Temp  float64
	TMin  float64
	TMax  float64
	Valid bool
}

type weatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Weather returns the forecast for a coordinate, memoized for fifteen
// minutes per location.
func (c *Client) Weather(ctx context.Context, lat, lon float64) Forecast {
	key := fmt.Sprintf("weather:%.4f:%.4f", lat, lon)
	if v, ok := c.cache.Get(key); ok {
		return v.(Forecast)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	params.Set("timezone", "auto")

	var resp weatherResponse
	if err := c.getJSON(ctx, c.WeatherBaseURL+"/forecast", params, &resp); err != nil {
		// Failed lookups are not cached so a transient outage recovers on
		// the next refresh.
		return Forecast{}
	}

	out := Forecast{Temp: resp.CurrentWeather.Temperature, Valid: true}
	if len(resp.Daily.TemperatureMax) > 0 {
		out.TMax = resp.Daily.TemperatureMax[0]
	}
	if len(resp.Daily.TemperatureMin) > 0 {
		out.TMin = resp.Daily.TemperatureMin[0]
	}
	c.cache.Set(key, out, weatherTTL)
	return out
}
