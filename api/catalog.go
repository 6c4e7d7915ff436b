package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves airports, airlines, airplanes, crew and routes.
type CatalogHandler struct {
	service catalog.CatalogUseCase
	media   *media.Store
}

type crewResponse struct {
	domain.Crew
	FullName string `json:"full_name"`
}

type routeResponse struct {
	domain.Route
	Name string `json:"name"`
}

type createRouteRequest struct {
	Departure int64 `json:"departure"`
	Arrival   int64 `json:"arrival"`
	Distance  int   `json:"distance"`
}

func NewCatalogHandler(service catalog.CatalogUseCase, store *media.Store) *CatalogHandler {
	return &CatalogHandler{service: service, media: store}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.listAirports)
	router.POST("/airports", h.createAirport)
	router.GET("/airports/:id", h.getAirport)

	router.GET("/airlines", h.listAirlines)
	router.POST("/airlines", h.createAirline)
	router.GET("/airlines/:id", h.getAirline)

	router.GET("/airplanes", h.listAirplanes)
	router.POST("/airplanes", h.createAirplane)
	router.GET("/airplanes/:id", h.getAirplane)
	router.POST("/airplanes/:id/upload-image", h.uploadAirplaneImage)

	router.GET("/crew", RequireStaff(), h.listCrew)
	router.POST("/crew", RequireStaff(), h.createCrew)
	router.GET("/crew/:id", RequireStaff(), h.getCrew)

	router.GET("/routes", h.listRoutes)
	router.POST("/routes", h.createRoute)
	router.GET("/routes/:id", h.getRoute)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *CatalogHandler) getAirport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req domain.Airport
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *CatalogHandler) listAirlines(c *gin.Context) {
	airlines, err := h.service.ListAirlines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *CatalogHandler) getAirline(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	airline, err := h.service.GetAirline(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airline)
}

func (h *CatalogHandler) createAirline(c *gin.Context) {
	var req domain.Airline
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	airline, err := h.service.CreateAirline(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airline)
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplanes)
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req domain.Airplane
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.Image = ""
	airplane, err := h.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplane)
}

func (h *CatalogHandler) uploadAirplaneImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, domain.FieldErrors{"image": "no file was submitted"})
		return
	}

	ctx := c.Request.Context()
	airplane, err := h.service.GetAirplane(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := media.AirplaneImagePath(airplane.CallSign, file.Filename)
	if err != nil {
		respondError(c, domain.FieldErrors{"image": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()
	if err := h.media.Save(path, src); err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.SetAirplaneImage(ctx, id, path); err != nil {
		h.media.Remove(path)
		respondError(c, err)
		return
	}
	if airplane.Image != "" {
		h.media.Remove(airplane.Image)
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

func (h *CatalogHandler) listCrew(c *gin.Context) {
	crew, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]crewResponse, 0, len(crew))
	for _, member := range crew {
		resp = append(resp, crewResponse{Crew: member, FullName: member.FullName()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getCrew(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	member, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crewResponse{Crew: *member, FullName: member.FullName()})
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req domain.Crew
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.service.CreateCrew(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crewResponse{Crew: *member, FullName: member.FullName()})
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, routeResponse{Route: r, Name: r.String()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routeResponse{Route: *route, Name: route.String()})
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), catalog.CreateRouteInput{
		DepartureID: req.Departure,
		ArrivalID:   req.Arrival,
		Distance:    req.Distance,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, routeResponse{Route: *route, Name: route.String()})
}
