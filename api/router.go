package api

import (
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Flights *FlightHandler
	Orders  *OrderHandler
}

// NewRouter builds the REST API under /api. Every route except register and
// login requires a bearer token.
func NewRouter(cfg config.HTTPConfig, tokens *auth.Tokens, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), gin.Recovery(), cors.New(corsConfig(cfg.CORSOrigins)))

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	api := router.Group("/api")
	h.Auth.Register(api.Group("/auth"))

	protected := api.Group("", Authenticate(tokens))
	h.Orders.Register(protected.Group("/orders"))

	staffWrites := protected.Group("", StaffOrReadOnly())
	h.Catalog.Register(staffWrites)
	h.Flights.Register(staffWrites.Group("/flights"))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", requestIDHeader)
	cfg.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
