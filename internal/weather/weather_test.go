package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	reports map[string]string
}

func (m *memCache) GetWeather(_ context.Context, city string) (string, bool, error) {
	r, ok := m.reports[city]
	return r, ok, nil
}

func (m *memCache) SetWeather(_ context.Context, city, report string) error {
	m.reports[city] = report
	return nil
}

const sampleBody = `{
  "location": {"name": "Paris", "country": "France", "localtime": "2025-01-01 10:00"},
  "current": {"temp_c": 4.5, "condition": {"text": "Partly cloudy"}}
}`

func newClient(t *testing.T, handler http.HandlerFunc, cache Cache) (*Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(config.WeatherConfig{URL: srv.URL + "/v1/current.json", APIKey: "k", TimeoutSeconds: 1}, cache), &calls
}

func TestClient_Current(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		w.Write([]byte(sampleBody))
	}, nil)

	assert.Equal(t, "Paris/France 2025-01-01 10:00 Weather: 4.5 Celsius, Partly cloudy", client.Current(context.Background(), "Paris"))
}

func TestClient_Current_FailsSoft(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, nil)

	assert.Equal(t, Unavailable, client.Current(context.Background(), "Paris"))

	_, err := client.Fetch(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestClient_Current_Timeout(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(3 * time.Second):
		case <-r.Context().Done():
		}
	}, nil)

	start := time.Now()
	assert.Equal(t, Unavailable, client.Current(context.Background(), "Paris"))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestClient_Current_UsesCache(t *testing.T) {
	cache := &memCache{reports: map[string]string{}}
	client, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	}, cache)

	first := client.Current(context.Background(), "Paris")
	second := client.Current(context.Background(), "Paris")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, *calls)
}

func TestClient_Refresh(t *testing.T) {
	cache := &memCache{reports: map[string]string{}}
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Nowhere" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(sampleBody))
	}, cache)

	n := client.Refresh(context.Background(), []string{"Paris", "Nowhere"})

	require.Equal(t, 1, n)
	assert.Contains(t, cache.reports, "Paris")
	assert.NotContains(t, cache.reports, "Nowhere")
}
