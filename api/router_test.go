package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	router  *gin.Engine
	tokens  *auth.Tokens
	catalog *MockCatalogUseCase
	flights *MockFlightUseCase
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokens("secret", time.Hour)
	catalogSvc := &MockCatalogUseCase{}
	flightSvc := &MockFlightUseCase{}
	router := NewRouter(config.HTTPConfig{}, tokens, Handlers{
		Auth:    NewAuthHandler(&MockAuthUseCase{}),
		Catalog: NewCatalogHandler(catalogSvc, media.NewStore(t.TempDir())),
		Flights: NewFlightHandler(flightSvc, testPagination),
		Orders:  NewOrderHandler(&MockBookingUseCase{}, testPagination),
	})
	return routerFixture{router: router, tokens: tokens, catalog: catalogSvc, flights: flightSvc}
}

func (f routerFixture) do(t *testing.T, method, path, body string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, _, err := f.tokens.Issue(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, "GET", "/api/airports", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRouter_ReadOnlyForRegularUsers(t *testing.T) {
	f := newRouterFixture(t)
	user := &domain.User{ID: 1, Email: "jane@example.com"}

	f.catalog.On("ListAirports", mock.Anything).Return([]domain.Airport{{ID: 1, ICAODesignator: "UKBB", ClosestBigCity: "Kyiv"}}, nil)

	w := f.do(t, "GET", "/api/airports", "", user)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "POST", "/api/airports", `{"icao_designator":"LFPG","closest_big_city":"Paris"}`, user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, "GET", "/api/crew", "", user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.catalog.AssertNotCalled(t, "CreateAirport", mock.Anything, mock.Anything)
}

func TestRouter_StaffWrites(t *testing.T) {
	f := newRouterFixture(t)
	staff := &domain.User{ID: 2, Email: "admin@example.com", IsStaff: true}

	in := domain.Airport{ICAODesignator: "LFPG", ClosestBigCity: "Paris"}
	f.catalog.On("CreateAirport", mock.Anything, in).Return(&domain.Airport{ID: 3, ICAODesignator: "LFPG", ClosestBigCity: "Paris"}, nil)
	f.catalog.On("ListCrew", mock.Anything).Return([]domain.Crew{{ID: 1, FirstName: "Amelia", LastName: "Earhart"}}, nil)

	w := f.do(t, "POST", "/api/airports", `{"icao_designator":"LFPG","closest_big_city":"Paris"}`, staff)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, "GET", "/api/crew", "", staff)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"Amelia Earhart"`)

	f.catalog.AssertExpectations(t)
}

func TestRouter_FlightsList(t *testing.T) {
	f := newRouterFixture(t)

	f.flights.On("List", mock.Anything, domain.FlightFilter{ArrivalCity: "kyiv"}, domain.PageRequest{Page: 1, PageSize: 5}).
		Return(domain.Page[domain.Flight]{Items: []domain.Flight{sampleFlight()}, Total: 1, Page: 1, PageSize: 5}, nil)

	w := f.do(t, "GET", "/api/flights?arrival=kyiv", "", &domain.User{ID: 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	f.flights.AssertExpectations(t)
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("GET", "/api/airports", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
