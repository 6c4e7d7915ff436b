package api

import (
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	principalKey    = "principal"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("http request: request_id=%s method=%s path=%s status=%d duration=%s",
			c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Authenticate requires a valid bearer token and stores the principal in the
// context.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := tokens.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			respondError(c, auth.ErrUnauthorized)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentPrincipal(c).IsStaff {
			respondError(c, auth.ErrForbidden)
			return
		}
		c.Next()
	}
}

// StaffOrReadOnly lets any authenticated user read and only staff write.
func StaffOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !currentPrincipal(c).IsStaff {
				respondError(c, auth.ErrForbidden)
				return
			}
		}
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}
