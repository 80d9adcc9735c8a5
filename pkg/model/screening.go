package model

import (
	"fmt"
	"strconv"
	"time"
)

// Seat is one exclusively-occupiable slot within one screening's matrix.
// The occupied flag only ever moves from false to true.
type Seat struct {
	Row      string `json:"row" bson:"row"`
	Number   int    `json:"number" bson:"number"`
	Occupied bool   `json:"occupied" bson:"occupied"`
}

func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

// SeatRef identifies a seat within a screening's matrix by coordinates.
type SeatRef struct {
	Row    string `json:"row" validate:"required,len=1,uppercase"`
	Number int    `json:"number" validate:"required,min=1"`
}

func (r SeatRef) Label() string {
	return r.Row + strconv.Itoa(r.Number)
}

// Screening is one scheduled use of an auditorium for a fixed duration.
// It exclusively owns its seat matrix; screenings are appended, never
// deleted.
type Screening struct {
	ID           string    `json:"id" bson:"_id"`
	AuditoriumID string    `json:"auditorium_id" bson:"auditorium_id"`
	MovieID      string    `json:"movie_id" bson:"movie_id"`
	StartTime    time.Time `json:"start_time" bson:"start_time"`
	DurationMin  int       `json:"duration_min" bson:"duration_min"`
	Seats        []Seat    `json:"seats" bson:"seats"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (s *Screening) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMin) * time.Minute)
}

// Seat returns a pointer into the screening's matrix, or nil when the
// coordinates fall outside it.
func (s *Screening) Seat(ref SeatRef) *Seat {
	for i := range s.Seats {
		if s.Seats[i].Row == ref.Row && s.Seats[i].Number == ref.Number {
			return &s.Seats[i]
		}
	}
	return nil
}

// ScreeningID derives the screening identifier from the scheduling admin's
// initials, the start time, and the auditorium. Deterministic so tickets
// stay traceable without a separate counter.
func ScreeningID(initials string, start time.Time, auditoriumID string) string {
	return fmt.Sprintf("%s:%s:%s", initials, start.Format("20060102:1504"), auditoriumID)
}

// TicketID composes the globally-unique receipt identifier for one seat of
// one screening.
func TicketID(screeningID string, seat SeatRef) string {
	return screeningID + ":" + seat.Label()
}
