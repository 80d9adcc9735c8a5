package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cinehall/internal/concessions/repository"
	"cinehall/pkg/config"
	"cinehall/pkg/events"
	"cinehall/pkg/model"
)

const eventSource = "cinehall.concessions"

// Pipeline walks a submitted order through assignment, preparation and
// finishing on its own goroutine. Each stage waits out its configured delay
// window, replaces the owner's notification slot, and publishes a status
// event keyed by the order so consumers see transitions in order.
type Pipeline struct {
	notifications repository.NotificationRepository
	publisher     events.Publisher
	cfg           *config.Config

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPipeline(notifications repository.NotificationRepository, publisher events.Publisher, cfg *config.Config) *Pipeline {
	return &Pipeline{
		notifications: notifications,
		publisher:     publisher,
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type statusEvent struct {
	OrderKey  string            `json:"order_key"`
	OwnerID   string            `json:"owner_id"`
	HandlerID string            `json:"handler_id"`
	Status    model.OrderStatus `json:"status"`
	At        time.Time         `json:"at"`
}

// Run blocks until the order reaches ready. Callers dispatch it on a
// goroutine; failures along the way are logged and never abort the run.
func (p *Pipeline) Run(order *model.Order) {
	ctx := context.Background()

	p.wait(p.cfg.AssignDelayMin, p.cfg.AssignDelayMax)
	assignedAt := time.Now()
	p.transition(ctx, order, model.OrderAssigned,
		fmt.Sprintf("Order %s assigned to %s", order.Key, order.HandlerID))

	p.wait(p.cfg.PrepDelayMin, p.cfg.PrepDelayMax)
	prepStartedAt := time.Now()
	p.transition(ctx, order, model.OrderPreparing,
		fmt.Sprintf("Order %s is being prepared", order.Key))

	p.wait(p.cfg.FinishDelayMin, p.cfg.FinishDelayMax)
	finishedAt := time.Now()
	p.transition(ctx, order, model.OrderFinishing,
		fmt.Sprintf("Order %s is being packed", order.Key))

	p.transition(ctx, order, model.OrderReady,
		fmt.Sprintf("Order %s handled by %s is ready for pickup (%s)",
			order.Key, order.HandlerID, finishedAt.Format("20060102:1504")))

	audit := fmt.Sprintf("%s | created=%s assigned=%s prep_started=%s finished=%s",
		order.Key,
		order.CreatedAt.Format(time.RFC3339),
		assignedAt.Format(time.RFC3339),
		prepStartedAt.Format(time.RFC3339),
		finishedAt.Format(time.RFC3339),
	)
	if err := p.notifications.AppendHistory(ctx, order.HandlerID, audit); err != nil {
		p.cfg.Log.Error("Failed to append handler history",
			"order_key", order.Key,
			"handler_id", order.HandlerID,
			"error", err,
		)
	}

	p.cfg.Log.Info("Order fulfilled",
		"order_key", order.Key,
		"owner_id", order.OwnerID,
		"handler_id", order.HandlerID,
	)
}

// transition replaces the owner's notification slot and publishes the
// status event. Either side may fail independently; both are logged.
func (p *Pipeline) transition(ctx context.Context, order *model.Order, status model.OrderStatus, text string) {
	if err := p.notifications.Replace(ctx, order.OwnerID, text); err != nil {
		p.cfg.Log.Error("Failed to replace notification",
			"order_key", order.Key,
			"owner_id", order.OwnerID,
			"status", status,
			"error", err,
		)
	}

	msg := events.NewMessage().
		WithKey(order.Key).
		WithEventType(events.TypeOrderStatusChanged).
		WithSource(eventSource).
		WithValue(statusEvent{
			OrderKey:  order.Key,
			OwnerID:   order.OwnerID,
			HandlerID: order.HandlerID,
			Status:    status,
			At:        time.Now(),
		}).
		Build()

	if err := p.publisher.Publish(ctx, msg); err != nil {
		p.cfg.Log.Error("Failed to publish order status event",
			"order_key", order.Key,
			"status", status,
			"error", err,
		)
	}
}

func (p *Pipeline) wait(min, max time.Duration) {
	d := min
	if max > min {
		p.mu.Lock()
		d = min + time.Duration(p.rng.Int63n(int64(max-min)+1))
		p.mu.Unlock()
	}
	if d > 0 {
		time.Sleep(d)
	}
}
