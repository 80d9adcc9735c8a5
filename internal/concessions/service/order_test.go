package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrepo "cinehall/internal/catalog/repository"
	concessionserrors "cinehall/internal/concessions/errors"
	"cinehall/internal/concessions/repository"
	"cinehall/internal/concessions/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/events"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

type capturingPublisher struct {
	mu       sync.Mutex
	messages []events.Message
}

func (p *capturingPublisher) Publish(_ context.Context, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) statuses(t *testing.T) []model.OrderStatus {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []model.OrderStatus
	for _, msg := range p.messages {
		var ev statusEvent
		require.NoError(t, msg.DecodeValue(&ev))
		out = append(out, ev.Status)
	}
	return out
}

type fixture struct {
	svc           ConcessionsService
	pipeline      *Pipeline
	people        catalogrepo.PersonRepository
	notifications repository.NotificationRepository
	publisher     *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
	st := store.NewMemory()

	orders, err := repository.NewOrderRepository(ctx, st, log)
	require.NoError(t, err)
	people, err := catalogrepo.NewPersonRepository(ctx, st, log)
	require.NoError(t, err)

	prices := repository.NewPriceListRepository(st, log)
	require.NoError(t, prices.Seed(ctx))

	notifications := repository.NewNotificationRepository(st)
	publisher := &capturingPublisher{}

	cfg := &config.Config{Log: log} // zero delay windows
	pipeline := NewPipeline(notifications, publisher, cfg)
	svc := NewConcessionsService(orders, prices, notifications, people, pipeline, validator.NewOrderValidator(log), cfg)

	require.NoError(t, people.Create(ctx, &model.Person{
		ID: "carlos", FirstName: "Carlos", LastName: "Diaz", Role: model.RoleCustomer,
	}))

	return &fixture{
		svc:           svc,
		pipeline:      pipeline,
		people:        people,
		notifications: notifications,
		publisher:     publisher,
	}
}

func TestPriceListSeed(t *testing.T) {
	f := newFixture(t)

	prices, err := f.svc.PriceList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 180.00, prices["COMBO_A"])
	assert.Equal(t, 200.00, prices["COMBO_B"])
	assert.Equal(t, 230.00, prices["COMBO_C"])
	assert.Equal(t, 150.00, prices["COMBO_D"])
	assert.Equal(t, 50.00, prices["SODA_LARGE"])
}

func TestSubmitOrderQueuesAndPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.SubmitOrder(ctx, &validator.OrderRequest{
		OwnerID: "carlos",
		Items: []validator.OrderItem{
			{Key: "COMBO_A", Quantity: 2},
			{Key: "soda_large", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 410.00, order.Total)
	assert.Equal(t, "2x COMBO_A, 1x SODA_LARGE", order.Description)
	assert.True(t, strings.HasPrefix(order.Key, "CD:"))
	assert.Equal(t, syntheticHandlerID, order.HandlerID)

	got, err := f.svc.GetOrder(ctx, order.Key)
	require.NoError(t, err)
	assert.Equal(t, order.Key, got.Key)

	// the detached pipeline drives the order to ready
	require.Eventually(t, func() bool {
		lines, err := f.svc.Notifications(ctx, "carlos")
		return err == nil && len(lines) == 1 && strings.Contains(lines[0], "ready for pickup")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmitOrderAssignsFirstHandler(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.people.Create(ctx, &model.Person{
		ID: "maria", FirstName: "Maria", LastName: "Ruiz", Role: model.RoleConcessionHandler,
	}))
	require.NoError(t, f.people.Create(ctx, &model.Person{
		ID: "pedro", FirstName: "Pedro", LastName: "Sol", Role: model.RoleConcessionHandler,
	}))

	order, err := f.svc.SubmitOrder(ctx, &validator.OrderRequest{
		OwnerID: "carlos",
		Items:   []validator.OrderItem{{Key: "COMBO_D", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", order.HandlerID)
}

func TestSubmitOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitOrder(context.Background(), &validator.OrderRequest{
		OwnerID: "carlos",
		Items:   []validator.OrderItem{{Key: "SUSHI_BOAT", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidInput))
	assert.ErrorIs(t, err, concessionserrors.ErrUnknownProduct)
}

func TestSubmitOrderUnknownOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitOrder(context.Background(), &validator.OrderRequest{
		OwnerID: "ghost",
		Items:   []validator.OrderItem{{Key: "COMBO_A", Quantity: 1}},
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestPipelineRunOverwritesNotificationsAndAppendsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := &model.Order{
		Key:         "CD:20260912:1800",
		OwnerID:     "carlos",
		HandlerID:   "maria",
		Description: "1x COMBO_A",
		Total:       180.00,
		CreatedAt:   time.Now(),
	}

	f.pipeline.Run(order)

	// each stage replaced the previous notification; only the final one remains
	lines, err := f.notifications.Current(ctx, "carlos")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Order CD:20260912:1800 handled by maria is ready for pickup")
	assert.Regexp(t, `\(\d{8}:\d{4}\)$`, lines[0])

	// handler history only grows
	history, err := f.notifications.History(ctx, "maria")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Contains(t, history[0], "CD:20260912:1800 | created=")
	assert.Contains(t, history[0], "finished=")

	f.pipeline.Run(order)
	history, err = f.notifications.History(ctx, "maria")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPipelineCreditsDelaysToTheRightPhase(t *testing.T) {
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
	notifications := repository.NewNotificationRepository(store.NewMemory())
	publisher := &capturingPublisher{}
	cfg := &config.Config{
		Log:            log,
		PrepDelayMin:   60 * time.Millisecond,
		PrepDelayMax:   60 * time.Millisecond,
		FinishDelayMin: 30 * time.Millisecond,
		FinishDelayMax: 30 * time.Millisecond,
	}
	pipeline := NewPipeline(notifications, publisher, cfg)

	pipeline.Run(&model.Order{
		Key:       "CD:20260912:2000",
		OwnerID:   "carlos",
		HandlerID: "maria",
		CreatedAt: time.Now(),
	})

	at := map[model.OrderStatus]time.Time{}
	publisher.mu.Lock()
	for _, msg := range publisher.messages {
		var ev statusEvent
		require.NoError(t, msg.DecodeValue(&ev))
		at[ev.Status] = ev.At
	}
	publisher.mu.Unlock()

	// each delay window elapses before its transition is stamped
	assert.GreaterOrEqual(t, at[model.OrderPreparing].Sub(at[model.OrderAssigned]), cfg.PrepDelayMin)
	assert.GreaterOrEqual(t, at[model.OrderFinishing].Sub(at[model.OrderPreparing]), cfg.FinishDelayMin)
}

func TestPipelinePublishesOrderedTransitions(t *testing.T) {
	f := newFixture(t)

	order := &model.Order{
		Key:       "CD:20260912:1900",
		OwnerID:   "carlos",
		HandlerID: "maria",
		CreatedAt: time.Now(),
	}
	f.pipeline.Run(order)

	assert.Equal(t, []model.OrderStatus{
		model.OrderAssigned,
		model.OrderPreparing,
		model.OrderFinishing,
		model.OrderReady,
	}, f.publisher.statuses(t))

	for _, msg := range f.publisher.messages {
		assert.Equal(t, order.Key, msg.Key)
		eventType, ok := msg.GetHeader(events.HeaderEventType)
		assert.True(t, ok)
		assert.Equal(t, events.TypeOrderStatusChanged, eventType)
	}
}
