package model

// Row describes one physical row of an auditorium: a label and how many
// seats it holds. Rows may be irregular (a VIP room has shorter rows).
type Row struct {
	Label string `json:"label" bson:"label"`
	Seats int    `json:"seats" bson:"seats"`
}

// Auditorium is a physical room. Its layout is fixed after creation; seat
// occupation state lives on each Screening, never here.
type Auditorium struct {
	ID   string `json:"id" bson:"_id" validate:"required,min=2,max=40"`
	Name string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Rows []Row  `json:"rows" bson:"rows" validate:"required,min=1,dive"`
}

func (a *Auditorium) SeatCount() int {
	total := 0
	for _, r := range a.Rows {
		total += r.Seats
	}
	return total
}

// NewSeatMatrix builds a fresh all-free seat matrix from the auditorium
// layout. Each screening gets its own copy so the same physical seat can be
// free at one show time and occupied at another.
func (a *Auditorium) NewSeatMatrix() []Seat {
	seats := make([]Seat, 0, a.SeatCount())
	for _, row := range a.Rows {
		for n := 1; n <= row.Seats; n++ {
			seats = append(seats, Seat{Row: row.Label, Number: n})
		}
	}
	return seats
}

const (
	standardRowSeats = 15
	vipRowSeats      = 6
)

// StandardRows returns the stock layout of a standard room: rowCount rows
// of 15 seats labelled A, B, C, ...
func StandardRows(rowCount int) []Row {
	return uniformRows(rowCount, standardRowSeats)
}

// VIPRows returns the stock layout of a VIP room: rowCount rows of 6 seats.
func VIPRows(rowCount int) []Row {
	return uniformRows(rowCount, vipRowSeats)
}

func uniformRows(rowCount, seatsPerRow int) []Row {
	rows := make([]Row, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		rows = append(rows, Row{Label: string(rune('A' + i)), Seats: seatsPerRow})
	}
	return rows
}
