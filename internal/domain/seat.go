package domain

// Seat is a seat designation on an airplane: a 1-based row and a 1-based
// position within that row.
type Seat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// SeatLayout describes the physical cabin of an airplane.
type SeatLayout struct {
	Rows       int `json:"rows"`
	SeatsInRow int `json:"seats_in_row"`
}

func (l SeatLayout) Capacity() int {
	if l.Rows <= 0 || l.SeatsInRow <= 0 {
		return 0
	}
	return l.Rows * l.SeatsInRow
}

type seatBound struct {
	field string
	bound string
	value int
	max   int
}

func (l SeatLayout) bounds(s Seat) [2]seatBound {
	return [2]seatBound{
		{field: "row", bound: "rows", value: s.Row, max: l.Rows},
		{field: "seat", bound: "seats_in_row", value: s.Seat, max: l.SeatsInRow},
	}
}

// Check reports an *OutOfRangeError for the first component of s that falls
// outside the layout.
func (l SeatLayout) Check(s Seat) error {
	for _, b := range l.bounds(s) {
		if b.value < 1 || b.value > b.max {
			return &OutOfRangeError{Field: b.field, Bound: b.bound, Max: b.max, Value: b.value}
		}
	}
	return nil
}

func (l SeatLayout) Contains(s Seat) bool {
	return l.Check(s) == nil
}
