package service

import (
	"context"
	"errors"
	"fmt"

	boxofficeerrors "cinehall/internal/boxoffice/errors"
	"cinehall/internal/boxoffice/repository"
	"cinehall/internal/boxoffice/validator"
	catalogrepo "cinehall/internal/catalog/repository"
	schedulingerrors "cinehall/internal/scheduling/errors"
	schedulingrepo "cinehall/internal/scheduling/repository"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/model"
)

// SettlementGate is the payment boundary a purchase must clear before its
// seats are committed.
type SettlementGate interface {
	Settle(ctx context.Context, amount float64) error
}

type Receipt struct {
	ScreeningID string   `json:"screening_id"`
	Tickets     []string `json:"tickets"`
	Total       float64  `json:"total"`
}

type BoxOfficeService interface {
	// Purchase runs the full reservation workflow: selection check,
	// settlement, seat commit, receipt emission. The screening is held
	// exclusively for the whole exchange, so a selection that passed
	// validation cannot be stolen while the gate is settling.
	Purchase(ctx context.Context, req *validator.PurchaseRequest) (*Receipt, error)

	History(ctx context.Context, ownerID string) ([]string, error)
}

type boxOfficeService struct {
	screenings schedulingrepo.ScreeningRepository
	movies     catalogrepo.MovieRepository
	people     catalogrepo.PersonRepository
	tickets    repository.TicketRepository
	locks      *repository.ScreeningLocks
	gate       SettlementGate
	validator  *validator.PurchaseValidator
	cfg        *config.Config
}

func NewBoxOfficeService(
	screenings schedulingrepo.ScreeningRepository,
	movies catalogrepo.MovieRepository,
	people catalogrepo.PersonRepository,
	tickets repository.TicketRepository,
	gate SettlementGate,
	validator *validator.PurchaseValidator,
	cfg *config.Config,
) BoxOfficeService {
	return &boxOfficeService{
		screenings: screenings,
		movies:     movies,
		people:     people,
		tickets:    tickets,
		locks:      repository.NewScreeningLocks(),
		gate:       gate,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *boxOfficeService) Purchase(ctx context.Context, req *validator.PurchaseRequest) (*Receipt, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	buyer, err := s.people.FindByID(ctx, req.BuyerID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Person", req.BuyerID)
	}

	lock := s.locks.For(req.ScreeningID)
	lock.Lock()
	defer lock.Unlock()

	screening, err := s.screenings.FindByID(ctx, req.ScreeningID)
	if err != nil {
		if errors.Is(err, schedulingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Screening", req.ScreeningID).
				WithCause(boxofficeerrors.ErrScreeningNotFound)
		}
		return nil, apperrors.Internal("Failed to retrieve screening", err)
	}

	if err := validateSelection(screening, req.Seats); err != nil {
		return nil, err
	}

	movie, err := s.movies.FindByID(ctx, screening.MovieID)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve the screening's movie", err)
	}

	total := s.cfg.TicketUnitPrice * float64(len(req.Seats))

	if err := s.gate.Settle(ctx, total); err != nil {
		s.cfg.Log.Warn("Settlement failed, selection released untouched",
			"screening_id", screening.ID,
			"buyer_id", buyer.ID,
			"total", total,
			"error", err,
		)
		return nil, apperrors.GateFailed(err)
	}

	// Settlement cleared: commit the whole selection as one batch.
	ticketIDs := make([]string, 0, len(req.Seats))
	receiptLines := make([]string, 0, len(req.Seats))
	for _, ref := range req.Seats {
		screening.Seat(ref).Occupied = true
		id := model.TicketID(screening.ID, ref)
		ticketIDs = append(ticketIDs, id)
		receiptLines = append(receiptLines, fmt.Sprintf("Ticket: %s | %s", id, movie.Title))
	}

	if err := s.screenings.Upsert(ctx, screening); err != nil {
		return nil, apperrors.Internal("Failed to commit seat matrix", err)
	}

	if err := s.tickets.Append(ctx, buyer.ID, receiptLines); err != nil {
		// Seats are committed; the receipt stream catches up on the next
		// successful append.
		s.cfg.Log.Error("Failed to append ticket receipts",
			"buyer_id", buyer.ID,
			"screening_id", screening.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Purchase completed",
		"screening_id", screening.ID,
		"buyer_id", buyer.ID,
		"seats", len(req.Seats),
		"total", total,
	)

	return &Receipt{
		ScreeningID: screening.ID,
		Tickets:     ticketIDs,
		Total:       total,
	}, nil
}

// validateSelection rejects the request wholesale on the first bad seat:
// unknown coordinates, an occupied seat, or the same seat picked twice.
func validateSelection(screening *model.Screening, refs []model.SeatRef) error {
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		label := ref.Label()
		if _, dup := seen[label]; dup {
			return apperrors.DuplicateSelection(label).WithCause(boxofficeerrors.ErrSelectionRejected)
		}
		seen[label] = struct{}{}

		seat := screening.Seat(ref)
		if seat == nil {
			return apperrors.SeatNotFound(label).WithCause(boxofficeerrors.ErrSelectionRejected)
		}
		if seat.Occupied {
			return apperrors.SeatOccupied(label).WithCause(boxofficeerrors.ErrSelectionRejected)
		}
	}
	return nil
}

func (s *boxOfficeService) History(ctx context.Context, ownerID string) ([]string, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	lines, err := s.tickets.History(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to read ticket history", err)
	}
	return lines, nil
}
