package booking

import (
	"time"

	"github.com/Domenick1991/airport/internal/domain"
)

// DefaultCutoff is how long before departure ticket sales close.
const DefaultCutoff = 2 * time.Hour

// SeatValidator checks a seat designation against an airplane layout and the
// sales cutoff of the flight.
type SeatValidator struct {
	cutoff time.Duration
	now    func() time.Time
}

func NewSeatValidator(cutoff time.Duration) *SeatValidator {
	return &SeatValidator{cutoff: cutoff, now: time.Now}
}

func (v *SeatValidator) Validate(seat domain.Seat, layout domain.SeatLayout, departure time.Time) error {
	if err := layout.Check(seat); err != nil {
		return err
	}
	if departure.Before(v.now().Add(v.cutoff)) {
		return &domain.TooLateError{DepartureTime: departure, Cutoff: v.cutoff}
	}
	return nil
}
