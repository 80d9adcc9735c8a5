// Package store exposes the durable key-addressed store the engine writes
// through: line streams for notifications, tickets, and audit history, and
// snapshot blobs for entity collections.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: key not found")

// Store is the durable-store contract. Implementations must be safe for
// concurrent use; the engine appends to streams from background tasks while
// request handlers read them.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	ReadLines(ctx context.Context, key string) ([]string, error)
	AppendLine(ctx context.Context, key, text string) error
	Overwrite(ctx context.Context, key, text string) error

	SaveSnapshot(ctx context.Context, key string, v any) error
	LoadSnapshot(ctx context.Context, key string, v any) error
}

// Stream key conventions shared by the box office and concession flows.
func TicketStreamKey(ownerID string) string {
	return "tickets_" + ownerID
}

func NotificationStreamKey(ownerID string) string {
	return "notifications_" + ownerID
}

func HistoryStreamKey(handlerID string) string {
	return "history_" + handlerID
}

// Snapshot keys for the persisted entity collections.
const (
	SnapshotScreenings  = "screenings"
	SnapshotMovies      = "movies"
	SnapshotAuditoriums = "auditoriums"
	SnapshotPeople      = "people"
	SnapshotOrders      = "orders"
)

// PriceListKey is the stream holding the concession price list, one
// "PRODUCT_SIZE : price" entry per line.
const PriceListKey = "product_prices"
