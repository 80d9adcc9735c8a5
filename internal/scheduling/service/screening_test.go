package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrepo "cinehall/internal/catalog/repository"
	schedulingerrors "cinehall/internal/scheduling/errors"
	"cinehall/internal/scheduling/repository"
	"cinehall/internal/scheduling/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

type fixture struct {
	svc SchedulingService
	cfg *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
	st := store.NewMemory()

	screenings, err := repository.NewScreeningRepository(ctx, st, log)
	require.NoError(t, err)
	movies, err := catalogrepo.NewMovieRepository(ctx, st, log)
	require.NoError(t, err)
	auditoriums, err := catalogrepo.NewAuditoriumRepository(ctx, st, log)
	require.NoError(t, err)
	people, err := catalogrepo.NewPersonRepository(ctx, st, log)
	require.NoError(t, err)

	require.NoError(t, people.Create(ctx, &model.Person{
		ID: "ana", FirstName: "Ana", LastName: "Lopez", Role: model.RoleAdministrator,
	}))
	require.NoError(t, movies.Create(ctx, &model.Movie{
		ID: "matrix", Title: "The Matrix", Genre: "Sci-Fi", DurationMin: 120,
	}))
	require.NoError(t, auditoriums.Create(ctx, &model.Auditorium{
		ID: "SalaA", Name: "Hall A", Rows: model.StandardRows(8),
	}))

	cfg := &config.Config{Log: log, TurnaroundBuffer: 30 * time.Minute}
	svc := NewSchedulingService(screenings, movies, auditoriums, people, validator.NewScreeningValidator(log), cfg)
	return &fixture{svc: svc, cfg: cfg}
}

func futureDay() time.Time {
	return time.Now().AddDate(0, 1, 0).Truncate(time.Minute)
}

func TestScheduleCreatesScreening(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := futureDay()

	screening, err := f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID:      "ana",
		MovieID:      "matrix",
		AuditoriumID: "SalaA",
		StartTime:    start,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScreeningID("AL", start, "SalaA"), screening.ID)
	assert.Equal(t, 120, screening.DurationMin)
	assert.Len(t, screening.Seats, 120)
	for _, seat := range screening.Seats {
		assert.False(t, seat.Occupied)
	}

	got, err := f.svc.GetByID(ctx, screening.ID)
	require.NoError(t, err)
	assert.Equal(t, screening.ID, got.ID)
}

func TestScheduleRejectsBufferedOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := futureDay()

	_, err := f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "ana", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: start,
	})
	require.NoError(t, err)

	// movie runs 2h; 2h25m later is still inside the 30m turnaround
	_, err = f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "ana", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: start.Add(2*time.Hour + 25*time.Minute),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.ErrorIs(t, err, schedulingerrors.ErrTimeConflict)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, model.ScreeningID("AL", start, "SalaA"), appErr.Details["conflicting_screening"])
}

func TestScheduleAdmitsBoundaryTouch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := futureDay()

	_, err := f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "ana", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: start,
	})
	require.NoError(t, err)

	// exactly at end + buffer
	_, err = f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "ana", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: start.Add(2*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
}

func TestCheckAvailabilitySeesScheduledScreenings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := futureDay()

	_, err := f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "ana", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: start,
	})
	require.NoError(t, err)

	err = f.svc.CheckAvailability(ctx, "SalaA", start.Add(time.Hour), 60)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestScheduleRequiresAdministrator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, &validator.ScheduleRequest{
		AdminID: "nobody", MovieID: "matrix", AuditoriumID: "SalaA", StartTime: futureDay(),
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCheckAvailabilityFreeWindow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.CheckAvailability(context.Background(), "SalaA", futureDay(), 90))
}
