package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	schedulingerrors "cinehall/internal/scheduling/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

// ScreeningRepository is the calendar: every scheduled screening with its
// seat matrix. Upsert covers both placement and seat commits since the
// matrix lives inside the screening record.
type ScreeningRepository interface {
	FindByID(ctx context.Context, id string) (*model.Screening, error)
	FindByAuditorium(ctx context.Context, auditoriumID string) ([]*model.Screening, error)
	FindAll(ctx context.Context) ([]*model.Screening, error)
	Upsert(ctx context.Context, screening *model.Screening) error
}

type screeningRepository struct {
	mu         sync.RWMutex
	screenings map[string]*model.Screening
	store      store.Store
	log        *logger.Logger
}

func NewScreeningRepository(ctx context.Context, st store.Store, log *logger.Logger) (ScreeningRepository, error) {
	r := &screeningRepository{
		screenings: make(map[string]*model.Screening),
		store:      st,
		log:        log,
	}

	var snapshot []*model.Screening
	if err := st.LoadSnapshot(ctx, store.SnapshotScreenings, &snapshot); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	for _, s := range snapshot {
		r.screenings[s.ID] = s
	}

	log.Info("Screening repository loaded", "count", len(r.screenings))
	return r, nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id string) (*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	screening, ok := r.screenings[id]
	if !ok {
		return nil, schedulingerrors.ErrNotFound
	}
	return cloneScreening(screening), nil
}

func (r *screeningRepository) FindByAuditorium(ctx context.Context, auditoriumID string) ([]*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Screening
	for _, s := range r.screenings {
		if s.AuditoriumID == auditoriumID {
			out = append(out, cloneScreening(s))
		}
	}
	sortScreenings(out)
	return out, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Screening, 0, len(r.screenings))
	for _, s := range r.screenings {
		out = append(out, cloneScreening(s))
	}
	sortScreenings(out)
	return out, nil
}

func (r *screeningRepository) Upsert(ctx context.Context, screening *model.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screenings[screening.ID] = cloneScreening(screening)

	r.persist(ctx)
	return nil
}

func (r *screeningRepository) persist(ctx context.Context) {
	all := make([]*model.Screening, 0, len(r.screenings))
	for _, s := range r.screenings {
		all = append(all, s)
	}

	if err := r.store.SaveSnapshot(ctx, store.SnapshotScreenings, all); err != nil {
		r.log.Error("Failed to persist screening snapshot", "error", err)
	}
}

func cloneScreening(s *model.Screening) *model.Screening {
	copied := *s
	copied.Seats = append([]model.Seat(nil), s.Seats...)
	return &copied
}

func sortScreenings(list []*model.Screening) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartTime.Equal(list[j].StartTime) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartTime.Before(list[j].StartTime)
	})
}
