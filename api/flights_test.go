package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPagination = config.PaginationConfig{PageSize: 5, MaxPageSize: 100}

func sampleFlight() domain.Flight {
	return domain.Flight{
		ID: 1,
		Route: domain.Route{
			ID:        1,
			Departure: domain.Airport{ID: 1, ICAODesignator: "LFPG", ClosestBigCity: "Paris"},
			Arrival:   domain.Airport{ID: 2, ICAODesignator: "UKBB", ClosestBigCity: "Kyiv"},
			Distance:  550,
		},
		Airplane:      domain.Airplane{ID: 1, CallSign: "UR-PSA", Type: "Boeing 737", Rows: 1, SeatsInRow: 10, CruiseMachSpeed: 1.0},
		DepartureTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Crew:          []domain.Crew{{ID: 1, FirstName: "Amelia", LastName: "Earhart"}},
	}
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?departure=par&page=2&page_size=1", nil)

	page := domain.Page[domain.Flight]{Items: []domain.Flight{sampleFlight()}, Total: 3, Page: 2, PageSize: 1}
	mockService.On("List", c.Request.Context(), domain.FlightFilter{DepartureCity: "par"}, domain.PageRequest{Page: 2, PageSize: 1}).
		Return(page, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response pageResponse[flightSummary]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Count)
	require.NotNil(t, response.Next)
	require.NotNil(t, response.Previous)
	assert.Equal(t, 3, *response.Next)
	assert.Equal(t, 1, *response.Previous)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Paris (LFPG) - Kyiv (UKBB)", response.Results[0].Route)
	assert.Equal(t, "Boeing 737 (UR-PSA)", response.Results[0].Airplane)
	assert.Equal(t, "2025-01-01T01:00:00Z", response.Results[0].ArrivalTime)
	assert.Equal(t, []string{"Amelia Earhart"}, response.Results[0].Crew)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_PageSizeCapped(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?page_size=500", nil)

	mockService.On("List", mock.Anything, domain.FlightFilter{}, domain.PageRequest{Page: 1, PageSize: 100}).
		Return(domain.Page[domain.Flight]{Page: 1, PageSize: 100}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_InvalidPage(t *testing.T) {
	handler := NewFlightHandler(&MockFlightUseCase{}, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?page=0", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"page"`)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/1", nil)

	detail := &domain.FlightDetail{Flight: sampleFlight(), TakenSeats: []domain.Seat{{Row: 1, Seat: 10}}}
	mockService.On("GetDetail", c.Request.Context(), int64(1)).Return(detail, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response flightDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 9, response.TicketsAvailable)
	assert.Equal(t, []domain.Seat{{Row: 1, Seat: 10}}, response.TakenSeats)
	assert.Equal(t, "2025-01-01T01:00:00Z", response.ArrivalTime)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/42", nil)

	mockService.On("GetDetail", c.Request.Context(), int64(42)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_BadID(t *testing.T) {
	handler := NewFlightHandler(&MockFlightUseCase{}, testPagination)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
