package domain

import (
	"math"
	"time"
)

// knotsPerMach is the average true air speed in knots at Mach 1 at FL360.
const knotsPerMach = 550

type Flight struct {
	ID            int64     `json:"id"`
	Route         Route     `json:"route"`
	Airplane      Airplane  `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	Crew          []Crew    `json:"crew"`
}

// FlightFilter narrows flight listings by a case-insensitive substring of the
// departure or arrival city.
type FlightFilter struct {
	DepartureCity string
	ArrivalCity   string
}

// FlightHours returns distance / (mach * 550) rounded to one decimal.
func FlightHours(distance int, mach float64) float64 {
	if mach <= 0 {
		return 0
	}
	hours := float64(distance) / (mach * knotsPerMach)
	return math.Round(hours*10) / 10
}

func EstimatedArrival(departure time.Time, distance int, mach float64) time.Time {
	hours := FlightHours(distance, mach)
	return departure.Add(time.Duration(math.Round(hours * float64(time.Hour))))
}

func (f Flight) EstimatedArrivalTime() time.Time {
	return EstimatedArrival(f.DepartureTime, f.Route.Distance, f.Airplane.CruiseMachSpeed)
}

// SeatsAvailable never goes below zero.
func SeatsAvailable(capacity, sold int) int {
	if sold >= capacity {
		return 0
	}
	return capacity - sold
}

type FlightDetail struct {
	Flight
	TakenSeats []Seat `json:"taken_seats"`
}

func (d FlightDetail) TicketsAvailable() int {
	return SeatsAvailable(d.Airplane.Capacity(), len(d.TakenSeats))
}
