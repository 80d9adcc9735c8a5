package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	concessionserrors "cinehall/internal/concessions/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByKey(ctx context.Context, key string) (*model.Order, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Order, error)
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
	store  store.Store
	log    *logger.Logger
}

func NewOrderRepository(ctx context.Context, st store.Store, log *logger.Logger) (OrderRepository, error) {
	r := &orderRepository{
		orders: make(map[string]*model.Order),
		store:  st,
		log:    log,
	}

	var snapshot []*model.Order
	if err := st.LoadSnapshot(ctx, store.SnapshotOrders, &snapshot); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	for _, o := range snapshot {
		r.orders[o.Key] = o
	}

	log.Info("Order repository loaded", "count", len(r.orders))
	return r, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Key]; exists {
		return concessionserrors.ErrDuplicateOrder
	}

	r.orders[order.Key] = order

	r.persist(ctx)
	return nil
}

func (r *orderRepository) FindByKey(ctx context.Context, key string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[key]
	if !ok {
		return nil, concessionserrors.ErrOrderNotFound
	}

	copied := *order
	return &copied, nil
}

func (r *orderRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Order
	for _, o := range r.orders {
		if o.OwnerID == ownerID {
			copied := *o
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *orderRepository) persist(ctx context.Context) {
	all := make([]*model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, o)
	}

	if err := r.store.SaveSnapshot(ctx, store.SnapshotOrders, all); err != nil {
		r.log.Error("Failed to persist order snapshot", "error", err)
	}
}
