package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	catalogerrors "cinehall/internal/catalog/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

// MovieRepository holds the movie catalog in memory and snapshots it to the
// durable store after every mutation.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	FindByID(ctx context.Context, id string) (*model.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*model.Movie, int64, error)
}

type movieRepository struct {
	mu     sync.RWMutex
	movies map[string]*model.Movie
	store  store.Store
	log    *logger.Logger
}

func NewMovieRepository(ctx context.Context, st store.Store, log *logger.Logger) (MovieRepository, error) {
	r := &movieRepository{
		movies: make(map[string]*model.Movie),
		store:  st,
		log:    log,
	}

	var snapshot []*model.Movie
	if err := st.LoadSnapshot(ctx, store.SnapshotMovies, &snapshot); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	for _, m := range snapshot {
		r.movies[m.ID] = m
	}

	log.Info("Movie repository loaded", "count", len(r.movies))
	return r, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.movies[movie.ID]; exists {
		return catalogerrors.ErrDuplicateID
	}

	movie.CreatedAt = time.Now()
	r.movies[movie.ID] = movie

	r.persist(ctx)
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, catalogerrors.ErrMovieNotFound
	}

	copied := *movie
	return &copied, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*model.Movie, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		copied := *m
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return paginate(all, limit, offset), int64(len(all)), nil
}

// persist writes the current collection snapshot. A failed write is logged
// and the in-memory state is kept; the next successful mutation repairs the
// snapshot.
func (r *movieRepository) persist(ctx context.Context) {
	all := make([]*model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		all = append(all, m)
	}

	if err := r.store.SaveSnapshot(ctx, store.SnapshotMovies, all); err != nil {
		r.log.Error("Failed to persist movie snapshot", "error", err)
	}
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
