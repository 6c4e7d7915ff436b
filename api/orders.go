package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/document"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service    booking.BookingUseCase
	pagination config.PaginationConfig
}

type ticketRequest struct {
	Flight int64 `json:"flight"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketResponse struct {
	ID            int64  `json:"id"`
	Flight        int64  `json:"flight"`
	Row           int    `json:"row"`
	Seat          int    `json:"seat"`
	Route         string `json:"route,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func NewOrderHandler(service booking.BookingUseCase, pagination config.PaginationConfig) *OrderHandler {
	return &OrderHandler{service: service, pagination: pagination}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/tickets.pdf", h.tickets)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	requests := make([]domain.TicketRequest, 0, len(req.Tickets))
	for i, t := range req.Tickets {
		tr := domain.TicketRequest{FlightID: t.Flight, Seat: domain.Seat{Row: t.Row, Seat: t.Seat}}
		if err := h.service.ValidateTicket(c.Request.Context(), tr); err != nil {
			respondError(c, &domain.TicketError{Index: i, Err: err})
			return
		}
		requests = append(requests, tr)
	}

	principal := currentPrincipal(c)
	order, err := h.service.CreateOrder(c.Request.Context(), booking.CreateOrderInput{
		UserID:  principal.UserID,
		Email:   principal.Email,
		Tickets: requests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *OrderHandler) list(c *gin.Context) {
	page, err := parsePage(c, h.pagination)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.service.ListOrders(c.Request.Context(), currentPrincipal(c).UserID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(result, toOrderResponse))
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), currentPrincipal(c).UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) tickets(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	principal := currentPrincipal(c)
	order, err := h.service.GetOrder(c.Request.Context(), principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := document.RenderETickets(order, principal.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, document.ETicketFilename(order.ID)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		Tickets:   make([]ticketResponse, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		tr := ticketResponse{ID: t.ID, Flight: t.FlightID, Row: t.Row, Seat: t.Seat.Seat, Route: t.Route}
		if !t.DepartureTime.IsZero() {
			tr.DepartureTime = t.DepartureTime.UTC().Format(time.RFC3339)
		}
		resp.Tickets = append(resp.Tickets, tr)
	}
	return resp
}
