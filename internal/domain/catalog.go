package domain

import "fmt"

type Airport struct {
	ID             int64  `json:"id"`
	ICAODesignator string `json:"icao_designator"`
	ClosestBigCity string `json:"closest_big_city"`
}

func (a Airport) String() string {
	return fmt.Sprintf("%s (%s)", a.ClosestBigCity, a.ICAODesignator)
}

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Airplane struct {
	ID              int64   `json:"id"`
	CallSign        string  `json:"call_sign"`
	Type            string  `json:"type"`
	Rows            int     `json:"rows"`
	SeatsInRow      int     `json:"seats_in_row"`
	CruiseMachSpeed float64 `json:"cruise_mach_speed"`
	AirlineID       int64   `json:"airline"`
	Image           string  `json:"image,omitempty"`
}

func (a Airplane) Layout() SeatLayout {
	return SeatLayout{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

func (a Airplane) Capacity() int {
	return a.Layout().Capacity()
}

func (a Airplane) String() string {
	return fmt.Sprintf("%s (%s)", a.Type, a.CallSign)
}

type Crew struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LicenseNumber string `json:"license_number"`
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Route struct {
	ID        int64   `json:"id"`
	Departure Airport `json:"departure"`
	Arrival   Airport `json:"arrival"`
	Distance  int     `json:"distance"`
}

func (r Route) String() string {
	return fmt.Sprintf("%s - %s", r.Departure, r.Arrival)
}
