package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boxofficeerrors "cinehall/internal/boxoffice/errors"
	"cinehall/internal/boxoffice/repository"
	"cinehall/internal/boxoffice/validator"
	catalogrepo "cinehall/internal/catalog/repository"
	schedulingrepo "cinehall/internal/scheduling/repository"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

type stubGate struct {
	calls atomic.Int32
	err   error
}

func (g *stubGate) Settle(ctx context.Context, amount float64) error {
	g.calls.Add(1)
	return g.err
}

type fixture struct {
	svc        BoxOfficeService
	gate       *stubGate
	screenings schedulingrepo.ScreeningRepository
	screening  *model.Screening
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
	st := store.NewMemory()

	screenings, err := schedulingrepo.NewScreeningRepository(ctx, st, log)
	require.NoError(t, err)
	movies, err := catalogrepo.NewMovieRepository(ctx, st, log)
	require.NoError(t, err)
	people, err := catalogrepo.NewPersonRepository(ctx, st, log)
	require.NoError(t, err)

	require.NoError(t, movies.Create(ctx, &model.Movie{
		ID: "matrix", Title: "The Matrix", Genre: "Sci-Fi", DurationMin: 120,
	}))
	require.NoError(t, people.Create(ctx, &model.Person{
		ID: "carlos", FirstName: "Carlos", LastName: "Diaz", Role: model.RoleCustomer,
	}))

	auditorium := &model.Auditorium{ID: "SalaA", Name: "Hall A", Rows: model.StandardRows(2)}
	screening := &model.Screening{
		ID:           "AL:20260912:1400:SalaA",
		AuditoriumID: "SalaA",
		MovieID:      "matrix",
		StartTime:    time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
		DurationMin:  120,
		Seats:        auditorium.NewSeatMatrix(),
	}
	require.NoError(t, screenings.Upsert(ctx, screening))

	gate := &stubGate{}
	cfg := &config.Config{Log: log, TicketUnitPrice: 60.00}
	svc := NewBoxOfficeService(
		screenings, movies, people,
		repository.NewTicketRepository(st),
		gate,
		validator.NewPurchaseValidator(log),
		cfg,
	)
	return &fixture{svc: svc, gate: gate, screenings: screenings, screening: screening}
}

func seats(refs ...model.SeatRef) []model.SeatRef { return refs }

func TestPurchaseCommitsSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.svc.Purchase(ctx, &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}, model.SeatRef{Row: "A", Number: 2}),
	})
	require.NoError(t, err)

	assert.Equal(t, 120.00, receipt.Total)
	assert.Equal(t, []string{
		f.screening.ID + ":A1",
		f.screening.ID + ":A2",
	}, receipt.Tickets)

	updated, err := f.screenings.FindByID(ctx, f.screening.ID)
	require.NoError(t, err)
	assert.True(t, updated.Seat(model.SeatRef{Row: "A", Number: 1}).Occupied)
	assert.True(t, updated.Seat(model.SeatRef{Row: "A", Number: 2}).Occupied)
	assert.False(t, updated.Seat(model.SeatRef{Row: "B", Number: 1}).Occupied)

	history, err := f.svc.History(ctx, "carlos")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Ticket: "+f.screening.ID+":A1 | The Matrix", history[0])

	assert.Equal(t, int32(1), f.gate.calls.Load())
}

func TestPurchaseRejectsDuplicateBeforeSettlement(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Purchase(context.Background(), &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}, model.SeatRef{Row: "A", Number: 1}),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeDuplicateSelection))
	assert.ErrorIs(t, err, boxofficeerrors.ErrSelectionRejected)
	assert.Equal(t, int32(0), f.gate.calls.Load())
}

func TestPurchaseRejectsUnknownSeatWholesale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Purchase(ctx, &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}, model.SeatRef{Row: "Z", Number: 9}),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeSeatNotFound))
	assert.ErrorIs(t, err, boxofficeerrors.ErrSelectionRejected)
	assert.Equal(t, int32(0), f.gate.calls.Load())

	// the valid half of the selection must not have been taken
	current, err := f.screenings.FindByID(ctx, f.screening.ID)
	require.NoError(t, err)
	assert.False(t, current.Seat(model.SeatRef{Row: "A", Number: 1}).Occupied)
}

func TestPurchaseRejectsOccupiedSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Purchase(ctx, &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}),
	})
	require.NoError(t, err)

	_, err = f.svc.Purchase(ctx, &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeSeatOccupied))
	assert.ErrorIs(t, err, boxofficeerrors.ErrSelectionRejected)
}

func TestPurchaseReleasesSelectionOnGateFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gate.err = errors.New("card declined")

	_, err := f.svc.Purchase(ctx, &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: f.screening.ID,
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}, model.SeatRef{Row: "A", Number: 2}),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeGateFailed))

	current, err := f.screenings.FindByID(ctx, f.screening.ID)
	require.NoError(t, err)
	for _, seat := range current.Seats {
		assert.False(t, seat.Occupied)
	}

	history, err := f.svc.History(ctx, "carlos")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPurchaseUnknownScreening(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Purchase(context.Background(), &validator.PurchaseRequest{
		BuyerID:     "carlos",
		ScreeningID: "nope",
		Seats:       seats(model.SeatRef{Row: "A", Number: 1}),
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	assert.ErrorIs(t, err, boxofficeerrors.ErrScreeningNotFound)
}
