package domain

import "time"

type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

type Ticket struct {
	ID       int64 `json:"id"`
	OrderID  int64 `json:"order_id"`
	FlightID int64 `json:"flight"`
	Seat

	// Populated on the read side only.
	Route         string    `json:"route,omitempty"`
	DepartureTime time.Time `json:"departure_time,omitempty"`
}

// TicketRequest is one (flight, seat) pair of an order being placed.
type TicketRequest struct {
	FlightID int64
	Seat     Seat
}
