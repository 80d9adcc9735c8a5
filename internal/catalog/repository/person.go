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

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	FindByID(ctx context.Context, id string) (*model.Person, error)
	FindAll(ctx context.Context, limit, offset int) ([]*model.Person, int64, error)
	// FirstByRole returns the earliest-registered person holding the role.
	FirstByRole(ctx context.Context, role model.Role) (*model.Person, error)
}

type personRepository struct {
	mu     sync.RWMutex
	people map[string]*model.Person
	store  store.Store
	log    *logger.Logger
}

func NewPersonRepository(ctx context.Context, st store.Store, log *logger.Logger) (PersonRepository, error) {
	r := &personRepository{
		people: make(map[string]*model.Person),
		store:  st,
		log:    log,
	}

	var snapshot []*model.Person
	if err := st.LoadSnapshot(ctx, store.SnapshotPeople, &snapshot); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	for _, p := range snapshot {
		r.people[p.ID] = p
	}

	log.Info("Person repository loaded", "count", len(r.people))
	return r, nil
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.people[person.ID]; exists {
		return catalogerrors.ErrDuplicateID
	}

	person.CreatedAt = time.Now()
	r.people[person.ID] = person

	r.persist(ctx)
	return nil
}

func (r *personRepository) FindByID(ctx context.Context, id string) (*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	person, ok := r.people[id]
	if !ok {
		return nil, catalogerrors.ErrPersonNotFound
	}

	copied := *person
	return &copied, nil
}

func (r *personRepository) FindAll(ctx context.Context, limit, offset int) ([]*model.Person, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *personRepository) FirstByRole(ctx context.Context, role model.Role) (*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.sorted() {
		if p.Role == role {
			return p, nil
		}
	}
	return nil, catalogerrors.ErrPersonNotFound
}

func (r *personRepository) sorted() []*model.Person {
	all := make([]*model.Person, 0, len(r.people))
	for _, p := range r.people {
		copied := *p
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (r *personRepository) persist(ctx context.Context) {
	all := make([]*model.Person, 0, len(r.people))
	for _, p := range r.people {
		all = append(all, p)
	}

	if err := r.store.SaveSnapshot(ctx, store.SnapshotPeople, all); err != nil {
		r.log.Error("Failed to persist person snapshot", "error", err)
	}
}
