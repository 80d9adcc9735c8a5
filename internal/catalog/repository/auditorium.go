package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	catalogerrors "cinehall/internal/catalog/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

type AuditoriumRepository interface {
	Create(ctx context.Context, auditorium *model.Auditorium) error
	FindByID(ctx context.Context, id string) (*model.Auditorium, error)
	FindAll(ctx context.Context) ([]*model.Auditorium, error)
	Count(ctx context.Context) (int, error)
}

type auditoriumRepository struct {
	mu          sync.RWMutex
	auditoriums map[string]*model.Auditorium
	store       store.Store
	log         *logger.Logger
}

func NewAuditoriumRepository(ctx context.Context, st store.Store, log *logger.Logger) (AuditoriumRepository, error) {
	r := &auditoriumRepository{
		auditoriums: make(map[string]*model.Auditorium),
		store:       st,
		log:         log,
	}

	var snapshot []*model.Auditorium
	if err := st.LoadSnapshot(ctx, store.SnapshotAuditoriums, &snapshot); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	for _, a := range snapshot {
		r.auditoriums[a.ID] = a
	}

	log.Info("Auditorium repository loaded", "count", len(r.auditoriums))
	return r, nil
}

func (r *auditoriumRepository) Create(ctx context.Context, auditorium *model.Auditorium) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.auditoriums[auditorium.ID]; exists {
		return catalogerrors.ErrDuplicateID
	}

	r.auditoriums[auditorium.ID] = auditorium

	r.persist(ctx)
	return nil
}

func (r *auditoriumRepository) FindByID(ctx context.Context, id string) (*model.Auditorium, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auditorium, ok := r.auditoriums[id]
	if !ok {
		return nil, catalogerrors.ErrAuditoriumNotFound
	}

	copied := *auditorium
	copied.Rows = append([]model.Row(nil), auditorium.Rows...)
	return &copied, nil
}

func (r *auditoriumRepository) FindAll(ctx context.Context) ([]*model.Auditorium, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Auditorium, 0, len(r.auditoriums))
	for _, a := range r.auditoriums {
		copied := *a
		copied.Rows = append([]model.Row(nil), a.Rows...)
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all, nil
}

func (r *auditoriumRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.auditoriums), nil
}

func (r *auditoriumRepository) persist(ctx context.Context) {
	all := make([]*model.Auditorium, 0, len(r.auditoriums))
	for _, a := range r.auditoriums {
		all = append(all, a)
	}

	if err := r.store.SaveSnapshot(ctx, store.SnapshotAuditoriums, all); err != nil {
		r.log.Error("Failed to persist auditorium snapshot", "error", err)
	}
}
