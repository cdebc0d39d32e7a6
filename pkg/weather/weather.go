// Package weather looks up current conditions for an entry's weather
// snapshot. The diary store treats the result as an opaque optional value:
// a lookup failure simply means the entry is saved without a snapshot.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/feelio-app/feelio/pkg/diary"
)

// BaseURL is the OpenWeatherMap current-weather endpoint.
const BaseURL = "https://api.openweathermap.org/data/2.5/weather"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 5 * time.Second

// iconEmojis maps OpenWeatherMap icon codes to display emojis.
var iconEmojis = map[string]string{
	"01d": "☀️", "01n": "🌙",
	"02d": "⛅", "02n": "⛅",
	"03d": "☁️", "03n": "☁️",
	"04d": "☁️", "04n": "☁️",
	"09d": "🌧️", "09n": "🌧️",
	"10d": "🌦️", "10n": "🌦️",
	"11d": "⛈️", "11n": "⛈️",
	"13d": "❄️", "13n": "❄️",
	"50d": "🌫️", "50n": "🌫️",
}

// Snapshot is the full conditions record returned by a lookup. Only a
// subset of it is persisted with an entry.
type Snapshot struct {
	TempC       int    `json:"temp"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Icon        string `json:"icon"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// DiaryWeather converts the snapshot to the subset the diary store persists.
func (s *Snapshot) DiaryWeather() *diary.Weather {
	if s == nil {
		return nil
	}
	return &diary.Weather{
		Icon:  s.Icon,
		TempC: s.TempC,
		City:  s.City,
	}
}

// owmResponse mirrors the fields of interest in the OpenWeatherMap payload.
type owmResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Icon        string `json:"icon"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Client performs weather lookups.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a weather client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: BaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientForTesting builds a client pointed at a test server.
func NewClientForTesting(apiKey, baseURL string, httpClient *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, http: httpClient}
}

// Fetch looks up current conditions for the coordinates. Any failure is
// returned as an error and the caller records the entry without a snapshot.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather lookup returned status %d", resp.StatusCode)
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("weather response carried no conditions")
	}

	icon := payload.Weather[0].Icon
	emoji, ok := iconEmojis[icon]
	if !ok {
		emoji = "🌡️"
	}

	return &Snapshot{
		TempC:       int(math.Round(payload.Main.Temp)),
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Icon:        icon,
		Emoji:       emoji,
		Description: payload.Weather[0].Description,
	}, nil
}
