package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// OpenMeteoProvider is the two-step weather backend: Nominatim geocodes the
// place name, Open-Meteo delivers the current conditions for the resulting
// coordinates.
type OpenMeteoProvider struct {
	Logger      *logger.Logger
	Client      *http.Client
	GeocodeURL  string
	ForecastURL string
}

func NewOpenMeteoProvider(log *logger.Logger, client *http.Client, geocodeURL, forecastURL string) *OpenMeteoProvider {
	return &OpenMeteoProvider{Logger: log, Client: client, GeocodeURL: geocodeURL, ForecastURL: forecastURL}
}

func (wp *OpenMeteoProvider) CurrentWeather(ctx context.Context, place string) (*dto.KnowledgeAnswer, error) {
	if place == "" {
		return nil, nil
	}

	geocodeURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", wp.GeocodeURL, url.QueryEscape(place))

	var results []dto.GeocodeResult
	if err := fetchJSON(ctx, wp.Client, geocodeURL, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("malformed coordinates for %q: %q,%q", place, results[0].Lat, results[0].Lon)
	}

	forecastURL := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true&timezone=auto",
		wp.ForecastURL, lat, lon)

	var forecast dto.WeatherForecast
	if err := fetchJSON(ctx, wp.Client, forecastURL, &forecast); err != nil {
		return nil, err
	}
	if forecast.CurrentWeather == nil {
		return nil, nil
	}

	cw := forecast.CurrentWeather
	text := fmt.Sprintf("%s の現在の天気: 天気コード%d、気温 %.1f°C、風速 %.1f m/s（取得元: Open-Meteo）",
		results[0].DisplayName, cw.WeatherCode, cw.Temperature, cw.WindSpeed)

	return &dto.KnowledgeAnswer{
		Source: "open-meteo",
		Title:  place,
		Text:   text,
		Meta:   map[string]any{"lat": lat, "lon": lon},
	}, nil
}
