package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service    flights.FlightUseCase
	pagination config.PaginationConfig
}

type flightSummary struct {
	ID            int64    `json:"id"`
	Route         string   `json:"route"`
	Airplane      string   `json:"airplane"`
	DepartureTime string   `json:"departure_time"`
	ArrivalTime   string   `json:"arrival_time"`
	Crew          []string `json:"crew"`
}

type flightDetailResponse struct {
	ID               int64           `json:"id"`
	Route            domain.Route    `json:"route"`
	Airplane         domain.Airplane `json:"airplane"`
	DepartureTime    string          `json:"departure_time"`
	ArrivalTime      string          `json:"arrival_time"`
	Crew             []domain.Crew   `json:"crew"`
	TakenSeats       []domain.Seat   `json:"taken_seats"`
	TicketsAvailable int             `json:"tickets_available"`
}

type createFlightRequest struct {
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	Crew          []int64   `json:"crew"`
}

func NewFlightHandler(service flights.FlightUseCase, pagination config.PaginationConfig) *FlightHandler {
	return &FlightHandler{service: service, pagination: pagination}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	page, err := parsePage(c, h.pagination)
	if err != nil {
		respondError(c, err)
		return
	}
	filter := domain.FlightFilter{DepartureCity: c.Query("departure"), ArrivalCity: c.Query("arrival")}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(result, toFlightSummary))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetail(detail))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		DepartureTime: req.DepartureTime,
		CrewIDs:       req.Crew,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightSummary(*flight))
}

func toFlightSummary(f domain.Flight) flightSummary {
	crew := make([]string, 0, len(f.Crew))
	for _, member := range f.Crew {
		crew = append(crew, member.FullName())
	}
	return flightSummary{
		ID:            f.ID,
		Route:         f.Route.String(),
		Airplane:      f.Airplane.String(),
		DepartureTime: f.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:   f.EstimatedArrivalTime().UTC().Format(time.RFC3339),
		Crew:          crew,
	}
}

func toFlightDetail(d *domain.FlightDetail) flightDetailResponse {
	crew := d.Crew
	if crew == nil {
		crew = []domain.Crew{}
	}
	taken := d.TakenSeats
	if taken == nil {
		taken = []domain.Seat{}
	}
	return flightDetailResponse{
		ID:               d.ID,
		Route:            d.Route,
		Airplane:         d.Airplane,
		DepartureTime:    d.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:      d.EstimatedArrivalTime().UTC().Format(time.RFC3339),
		Crew:             crew,
		TakenSeats:       taken,
		TicketsAvailable: d.TicketsAvailable(),
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
