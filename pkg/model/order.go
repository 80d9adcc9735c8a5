package model

import "time"

type OrderStatus string

const (
	OrderQueued    OrderStatus = "queued"
	OrderAssigned  OrderStatus = "assigned"
	OrderPreparing OrderStatus = "preparing"
	OrderFinishing OrderStatus = "finishing"
	OrderReady     OrderStatus = "ready"
)

// Order is one concession request. It is immutable after creation; its
// status is derived from the events the fulfillment pipeline writes, not
// stored here.
type Order struct {
	Key         string    `json:"key" bson:"_id"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	HandlerID   string    `json:"handler_id" bson:"handler_id"`
	Description string    `json:"description" bson:"description"`
	Total       float64   `json:"total" bson:"total"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// OrderKey derives a deterministic order key from the owner's initials and
// the creation time, stable to the minute.
func OrderKey(initials string, at time.Time) string {
	return initials + ":" + at.Format("20060102:1504")
}
