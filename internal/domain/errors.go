package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyOrder   = errors.New("order must contain at least one ticket")
	ErrInvalidInput = errors.New("invalid input")
)

// OutOfRangeError is returned when a seat designation component is outside
// the airplane layout.
type OutOfRangeError struct {
	Field string
	Bound string
	Max   int
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", e.Field, e.Bound, e.Max)
}

// TooLateError is returned when a ticket is bought inside the pre-departure
// cutoff window.
type TooLateError struct {
	DepartureTime time.Time
	Cutoff        time.Duration
}

func (e *TooLateError) Error() string {
	return fmt.Sprintf("tickets can not be bought less than %s before departure (%s), please choose another flight",
		formatCutoff(e.Cutoff), e.DepartureTime.UTC().Format(time.RFC3339))
}

func formatCutoff(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}

// DuplicateSeatError is returned when the seat is already sold on the flight.
type DuplicateSeatError struct {
	FlightID int64
	Seat     Seat
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("seat %d in row %d is already taken on flight %d", e.Seat.Seat, e.Seat.Row, e.FlightID)
}

// TicketError ties a booking failure to the position of the ticket in the
// request.
type TicketError struct {
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error {
	return e.Err
}

// FieldErrors maps request fields to human readable messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%v: %d invalid field(s)", ErrInvalidInput, len(e))
}

func (e FieldErrors) Unwrap() error {
	return ErrInvalidInput
}

// Fields extracts field level messages for any validation error produced by
// the booking core.
func Fields(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	var oor *OutOfRangeError
	if errors.As(err, &oor) {
		return FieldErrors{oor.Field: oor.Error()}, true
	}
	var late *TooLateError
	if errors.As(err, &late) {
		return FieldErrors{"flight": late.Error()}, true
	}
	var dup *DuplicateSeatError
	if errors.As(err, &dup) {
		return FieldErrors{"seat": dup.Error()}, true
	}
	return nil, false
}
