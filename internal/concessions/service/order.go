package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogerrors "cinehall/internal/catalog/errors"
	catalogrepo "cinehall/internal/catalog/repository"
	concessionserrors "cinehall/internal/concessions/errors"
	"cinehall/internal/concessions/repository"
	"cinehall/internal/concessions/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/model"
	"cinehall/pkg/sanitizer"
)

// syntheticHandlerID fulfills orders when no concession handler is on the
// payroll.
const syntheticHandlerID = "kitchen-bot"

type ConcessionsService interface {
	// SubmitOrder prices the items, queues the order, and detaches the
	// fulfillment pipeline. It returns as soon as the order is queued;
	// progress is observable through notifications and events.
	SubmitOrder(ctx context.Context, req *validator.OrderRequest) (*model.Order, error)

	GetOrder(ctx context.Context, key string) (*model.Order, error)
	OrdersByOwner(ctx context.Context, ownerID string) ([]*model.Order, error)
	Notifications(ctx context.Context, ownerID string) ([]string, error)
	HandlerHistory(ctx context.Context, handlerID string) ([]string, error)
	PriceList(ctx context.Context) (map[string]float64, error)
}

type concessionsService struct {
	orders        repository.OrderRepository
	prices        repository.PriceListRepository
	notifications repository.NotificationRepository
	people        catalogrepo.PersonRepository
	pipeline      *Pipeline
	validator     *validator.OrderValidator
	cfg           *config.Config
}

func NewConcessionsService(
	orders repository.OrderRepository,
	prices repository.PriceListRepository,
	notifications repository.NotificationRepository,
	people catalogrepo.PersonRepository,
	pipeline *Pipeline,
	validator *validator.OrderValidator,
	cfg *config.Config,
) ConcessionsService {
	return &concessionsService{
		orders:        orders,
		prices:        prices,
		notifications: notifications,
		people:        people,
		pipeline:      pipeline,
		validator:     validator,
		cfg:           cfg,
	}
}

func (s *concessionsService) SubmitOrder(ctx context.Context, req *validator.OrderRequest) (*model.Order, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	owner, err := s.people.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Person", req.OwnerID)
	}

	total, description, err := s.price(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	handlerID := s.assignHandler(ctx)

	now := time.Now()
	order := &model.Order{
		Key:         model.OrderKey(owner.Initials(), now),
		OwnerID:     owner.ID,
		HandlerID:   handlerID,
		Description: description,
		Total:       total,
		CreatedAt:   now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, concessionserrors.ErrDuplicateOrder) {
			return nil, apperrors.Conflict("An order with this key was already placed this minute")
		}
		return nil, apperrors.Internal("Failed to queue order", err)
	}

	s.pipeline.transition(ctx, order, model.OrderQueued,
		fmt.Sprintf("Order %s received and queued", order.Key))

	go s.pipeline.Run(order)

	s.cfg.Log.Info("Order queued",
		"order_key", order.Key,
		"owner_id", order.OwnerID,
		"handler_id", order.HandlerID,
		"total", order.Total,
	)
	return order, nil
}

// price resolves every item against the price list; one unknown key rejects
// the whole order.
func (s *concessionsService) price(ctx context.Context, items []validator.OrderItem) (float64, string, error) {
	prices, err := s.prices.Load(ctx)
	if err != nil {
		return 0, "", apperrors.Storage("Failed to load the price list", err)
	}

	var total float64
	parts := make([]string, 0, len(items))
	for _, item := range items {
		key := sanitizer.NormalizeProductKey(item.Key)
		unit, ok := prices[key]
		if !ok {
			return 0, "", apperrors.InvalidInput(fmt.Sprintf("%s is not on the price list", key)).
				WithCause(concessionserrors.ErrUnknownProduct)
		}
		total += unit * float64(item.Quantity)
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, key))
	}
	return total, strings.Join(parts, ", "), nil
}

// assignHandler picks the earliest-registered concession handler, or the
// synthetic one when nobody holds the role.
func (s *concessionsService) assignHandler(ctx context.Context) string {
	handler, err := s.people.FirstByRole(ctx, model.RoleConcessionHandler)
	if err != nil {
		if !errors.Is(err, catalogerrors.ErrPersonNotFound) {
			s.cfg.Log.Error("Failed to look up concession handlers", "error", err)
		}
		return syntheticHandlerID
	}
	return handler.ID
}

func (s *concessionsService) GetOrder(ctx context.Context, key string) (*model.Order, error) {
	if key == "" {
		return nil, apperrors.InvalidInput("Order key cannot be empty")
	}

	order, err := s.orders.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, concessionserrors.ErrOrderNotFound) {
			return nil, apperrors.NotFoundWithID("Order", key)
		}
		return nil, apperrors.Internal("Failed to retrieve order", err)
	}
	return order, nil
}

func (s *concessionsService) OrdersByOwner(ctx context.Context, ownerID string) ([]*model.Order, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	orders, err := s.orders.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list orders", err)
	}
	return orders, nil
}

func (s *concessionsService) Notifications(ctx context.Context, ownerID string) ([]string, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	lines, err := s.notifications.Current(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to read notifications", err)
	}
	return lines, nil
}

func (s *concessionsService) HandlerHistory(ctx context.Context, handlerID string) ([]string, error) {
	if handlerID == "" {
		return nil, apperrors.InvalidInput("Handler ID cannot be empty")
	}

	lines, err := s.notifications.History(ctx, handlerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to read handler history", err)
	}
	return lines, nil
}

func (s *concessionsService) PriceList(ctx context.Context) (map[string]float64, error) {
	prices, err := s.prices.Load(ctx)
	if err != nil {
		return nil, apperrors.Storage("Failed to load the price list", err)
	}
	return prices, nil
}
