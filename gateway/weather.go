package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go-kiezmap/cache"
	"go-kiezmap/types"
)

const weatherKey = "weather:current"

type weatherResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Weather returns the current conditions at the profile center.
func (c *Client) Weather(ctx context.Context) Result[types.Weather] {
	return cache.Remember(ctx, c.memo, weatherKey, func(ctx context.Context) (Result[types.Weather], bool) {
		r := c.fetchWeather(ctx)
		return r, r.Live
	})
}

func (c *Client) fallbackWeather() types.Weather {
	code := c.profile.Weather.FallbackCode
	return types.Weather{
		TemperatureC:  c.profile.Weather.FallbackTemperature,
		ConditionCode: code,
		Condition:     DescribeWeatherCode(code),
	}
}

func (c *Client) fetchWeather(ctx context.Context) (res Result[types.Weather]) {
	ctx, span := startSpan(ctx, "gateway.Weather")
	defer func() { endSpan(span, res.Reason) }()

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(c.profile.Center.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(c.profile.Center.Lng, 'f', -1, 64))
	params.Set("current_weather", "true")

	var out weatherResponse
	if err := getJSON(ctx, c.http, c.endpoints.Weather, params, nil, &out); err != nil {
		c.log.Warn("weather unavailable, using fallback", "error", err)
		return NewFallback(c.fallbackWeather(), err)
	}
	if out.CurrentWeather == nil {
		err := fmt.Errorf("current_weather missing in response")
		c.log.Warn("weather unavailable, using fallback", "error", err)
		return NewFallback(c.fallbackWeather(), err)
	}
	return NewLive(types.Weather{
		TemperatureC:  out.CurrentWeather.Temperature,
		ConditionCode: out.CurrentWeather.WeatherCode,
		Condition:     DescribeWeatherCode(out.CurrentWeather.WeatherCode),
	})
}

// DescribeWeatherCode maps a WMO weather interpretation code to a short label.
func DescribeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
