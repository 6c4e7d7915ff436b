package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error  string             `json:"error"`
	Fields domain.FieldErrors `json:"fields,omitempty"`
	Ticket *int               `json:"ticket,omitempty"`
}

// statusFor maps service errors to an HTTP status and body.
func statusFor(err error) (int, errorResponse) {
	body := errorResponse{Error: err.Error()}

	var ticketErr *domain.TicketError
	if errors.As(err, &ticketErr) {
		index := ticketErr.Index
		body.Ticket = &index
		if errors.Is(ticketErr.Err, domain.ErrNotFound) {
			body.Fields = domain.FieldErrors{"flight": "flight does not exist"}
			return http.StatusBadRequest, body
		}
	}

	var dup *domain.DuplicateSeatError
	switch {
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, body
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, body
	case errors.As(err, &dup):
		body.Fields, _ = domain.Fields(err)
		return http.StatusConflict, body
	case errors.Is(err, domain.ErrEmptyOrder):
		body.Fields = domain.FieldErrors{"tickets": err.Error()}
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, body
	}

	if fields, ok := domain.Fields(err); ok {
		body.Fields = fields
		return http.StatusBadRequest, body
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest, body
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func respondError(c *gin.Context, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: request_id=%s path=%s err=%v", c.GetString(requestIDKey), c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
