package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/airport/config"
)

// Unavailable is returned instead of a report whenever the upstream lookup
// fails.
const Unavailable = "Sorry, weather service is not available"

var ErrUpstreamUnavailable = errors.New("weather upstream unavailable")

type Cache interface {
	GetWeather(ctx context.Context, city string) (string, bool, error)
	SetWeather(ctx context.Context, city, report string) error
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   Cache
}

func NewClient(cfg config.WeatherConfig, cache Cache) *Client {
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		cache:   cache,
	}
}

type currentResponse struct {
	Location struct {
		Name      string `json:"name"`
		Country   string `json:"country"`
		Localtime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

func (r currentResponse) String() string {
	return fmt.Sprintf("%s/%s %s Weather: %v Celsius, %s",
		r.Location.Name, r.Location.Country, r.Location.Localtime, r.Current.TempC, r.Current.Condition.Text)
}

// Current returns a one line weather report for city, or Unavailable.
func (c *Client) Current(ctx context.Context, city string) string {
	if c.cache != nil {
		if report, ok, err := c.cache.GetWeather(ctx, city); err == nil && ok {
			return report
		}
	}

	report, err := c.Fetch(ctx, city)
	if err != nil {
		log.Printf("weather lookup failed: city=%q err=%v", city, err)
		return Unavailable
	}

	if c.cache != nil {
		if err := c.cache.SetWeather(ctx, city, report); err != nil {
			log.Printf("weather cache set failed: city=%q err=%v", city, err)
		}
	}
	return report
}

// Fetch always calls the upstream API.
func (c *Client) Fetch(ctx context.Context, city string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("q", city)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUpstreamUnavailable, err)
	}
	return body.String(), nil
}

// Refresh re-fetches reports for cities and stores them in the cache.
func (c *Client) Refresh(ctx context.Context, cities []string) int {
	refreshed := 0
	for _, city := range cities {
		fetchCtx, cancel := context.WithTimeout(ctx, c.http.Timeout+time.Second)
		report, err := c.Fetch(fetchCtx, city)
		cancel()
		if err != nil {
			log.Printf("weather refresh failed: city=%q err=%v", city, err)
			continue
		}
		if c.cache != nil {
			if err := c.cache.SetWeather(ctx, city, report); err != nil {
				log.Printf("weather cache set failed: city=%q err=%v", city, err)
				continue
			}
		}
		refreshed++
	}
	return refreshed
}
