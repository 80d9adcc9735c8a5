package repository

import (
	"context"
	"errors"

	"cinehall/pkg/store"
)

// TicketRepository keeps each customer's ticket receipts as an append-only
// line stream.
type TicketRepository interface {
	Append(ctx context.Context, ownerID string, lines []string) error
	History(ctx context.Context, ownerID string) ([]string, error)
}

type ticketRepository struct {
	store store.Store
}

func NewTicketRepository(st store.Store) TicketRepository {
	return &ticketRepository{store: st}
}

func (r *ticketRepository) Append(ctx context.Context, ownerID string, lines []string) error {
	key := store.TicketStreamKey(ownerID)
	for _, line := range lines {
		if err := r.store.AppendLine(ctx, key, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *ticketRepository) History(ctx context.Context, ownerID string) ([]string, error) {
	lines, err := r.store.ReadLines(ctx, store.TicketStreamKey(ownerID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return lines, nil
}
