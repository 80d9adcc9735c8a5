package model

import "time"

type Movie struct {
	ID          string    `json:"id" bson:"_id" validate:"required,min=2,max=60"`
	Title       string    `json:"title" bson:"title" validate:"required,min=1,max=200"`
	Genre       string    `json:"genre" bson:"genre" validate:"required,min=2,max=100"`
	Synopsis    string    `json:"synopsis" bson:"synopsis" validate:"omitempty,max=2000"`
	DurationMin int       `json:"duration_min" bson:"duration_min" validate:"required,min=1,max=600"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
