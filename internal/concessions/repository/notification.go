package repository

import (
	"context"
	"errors"

	"cinehall/pkg/store"
)

// NotificationRepository manages the two fulfillment write surfaces: the
// per-owner notification slot, which each status change replaces, and the
// per-handler audit history, which only ever grows.
type NotificationRepository interface {
	Replace(ctx context.Context, ownerID, text string) error
	Current(ctx context.Context, ownerID string) ([]string, error)

	AppendHistory(ctx context.Context, handlerID, text string) error
	History(ctx context.Context, handlerID string) ([]string, error)
}

type notificationRepository struct {
	store store.Store
}

func NewNotificationRepository(st store.Store) NotificationRepository {
	return &notificationRepository{store: st}
}

func (r *notificationRepository) Replace(ctx context.Context, ownerID, text string) error {
	return r.store.Overwrite(ctx, store.NotificationStreamKey(ownerID), text)
}

func (r *notificationRepository) Current(ctx context.Context, ownerID string) ([]string, error) {
	lines, err := r.store.ReadLines(ctx, store.NotificationStreamKey(ownerID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return lines, nil
}

func (r *notificationRepository) AppendHistory(ctx context.Context, handlerID, text string) error {
	return r.store.AppendLine(ctx, store.HistoryStreamKey(handlerID), text)
}

func (r *notificationRepository) History(ctx context.Context, handlerID string) ([]string, error) {
	lines, err := r.store.ReadLines(ctx, store.HistoryStreamKey(handlerID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return lines, nil
}
