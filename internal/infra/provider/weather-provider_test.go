package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWeatherServer serves both the geocoding and the forecast endpoint so a
// single test server can stand in for the whole two-step chain.
func newWeatherServer(t *testing.T, geocodeBody, forecastBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			fmt.Fprint(w, geocodeBody)
		case "/v1/forecast":
			assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
			fmt.Fprint(w, forecastBody)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestCurrentWeather(t *testing.T) {
	srv := newWeatherServer(t,
		`[{"lat":"35.6762","lon":"139.6503","display_name":"東京都, 日本"}]`,
		`{"current_weather":{"temperature":18.5,"windspeed":3.2,"weathercode":1}}`,
	)
	defer srv.Close()

	wp := NewOpenMeteoProvider(newTestLogger(), newTestClient(), srv.URL, srv.URL)
	ans, err := wp.CurrentWeather(context.Background(), "東京")
	require.NoError(t, err)
	require.NotNil(t, ans)

	assert.Equal(t, "open-meteo", ans.Source)
	assert.Equal(t, "東京", ans.Title)
	assert.Contains(t, ans.Text, "東京都, 日本")
	assert.Contains(t, ans.Text, "18.5")
	assert.Contains(t, ans.Text, "3.2")
	assert.InDelta(t, 35.6762, ans.Meta["lat"], 0.0001)
}

func TestCurrentWeatherUnknownPlaceMeansNoAnswer(t *testing.T) {
	srv := newWeatherServer(t, `[]`, `{}`)
	defer srv.Close()

	wp := NewOpenMeteoProvider(newTestLogger(), newTestClient(), srv.URL, srv.URL)
	ans, err := wp.CurrentWeather(context.Background(), "実在しない町")
	require.NoError(t, err)
	assert.Nil(t, ans)
}

func TestCurrentWeatherMalformedCoordinatesIsError(t *testing.T) {
	srv := newWeatherServer(t, `[{"lat":"not-a-number","lon":"139.65","display_name":"?"}]`, `{}`)
	defer srv.Close()

	wp := NewOpenMeteoProvider(newTestLogger(), newTestClient(), srv.URL, srv.URL)
	_, err := wp.CurrentWeather(context.Background(), "東京")
	assert.Error(t, err)
}

func TestCurrentWeatherMissingForecastMeansNoAnswer(t *testing.T) {
	srv := newWeatherServer(t,
		`[{"lat":"35.0","lon":"139.0","display_name":"どこか"}]`,
		`{}`,
	)
	defer srv.Close()

	wp := NewOpenMeteoProvider(newTestLogger(), newTestClient(), srv.URL, srv.URL)
	ans, err := wp.CurrentWeather(context.Background(), "どこか")
	require.NoError(t, err)
	assert.Nil(t, ans)
}

func TestCurrentWeatherEmptyPlace(t *testing.T) {
	wp := NewOpenMeteoProvider(newTestLogger(), newTestClient(), "http://unused.invalid", "http://unused.invalid")
	ans, err := wp.CurrentWeather(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, ans)
}
