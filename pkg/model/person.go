package model

import (
	"strings"
	"time"
)

// Role is a flat capability tag. Dispatch is done by matching on the tag,
// never by inspecting the concrete type of a record.
type Role string

const (
	RoleCustomer          Role = "customer"
	RoleAdministrator     Role = "administrator"
	RoleConcessionHandler Role = "concession_handler"
)

type Person struct {
	ID        string    `json:"id" bson:"_id" validate:"required,min=2,max=40"`
	FirstName string    `json:"first_name" bson:"first_name" validate:"required,min=1,max=60"`
	LastName  string    `json:"last_name" bson:"last_name" validate:"required,min=1,max=60"`
	Role      Role      `json:"role" bson:"role" validate:"required,oneof=customer administrator concession_handler"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Shift     string    `json:"shift,omitempty" bson:"shift,omitempty" validate:"omitempty,oneof=morning evening night"`
	RestDay   string    `json:"rest_day,omitempty" bson:"rest_day,omitempty" validate:"omitempty,max=20"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Initials returns the uppercase first letters of the person's first and
// last names. Used to derive screening identifiers and order keys.
func (p *Person) Initials() string {
	var b strings.Builder
	if len(p.FirstName) > 0 {
		b.WriteString(strings.ToUpper(p.FirstName[:1]))
	}
	if len(p.LastName) > 0 {
		b.WriteString(strings.ToUpper(p.LastName[:1]))
	}
	return b.String()
}
