package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehall/internal/catalog/repository"
	"cinehall/internal/catalog/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
	"cinehall/pkg/store"
)

func newTestService(t *testing.T) CatalogService {
	t.Helper()
	ctx := context.Background()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
	st := store.NewMemory()

	movies, err := repository.NewMovieRepository(ctx, st, log)
	require.NoError(t, err)
	auditoriums, err := repository.NewAuditoriumRepository(ctx, st, log)
	require.NoError(t, err)
	people, err := repository.NewPersonRepository(ctx, st, log)
	require.NoError(t, err)

	cfg := &config.Config{Log: log}
	return NewCatalogService(movies, auditoriums, people, validator.NewCatalogValidator(log), cfg)
}

func TestRegisterAndGetMovie(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	movie := &model.Movie{
		ID:          "matrix",
		Title:       "The Matrix",
		Genre:       "Sci-Fi",
		DurationMin: 136,
	}
	require.NoError(t, svc.RegisterMovie(ctx, movie))

	got, err := svc.GetMovie(ctx, "matrix")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", got.Title)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRegisterMovieDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	movie := &model.Movie{ID: "dune", Title: "Dune", Genre: "Sci-Fi", DurationMin: 155}
	require.NoError(t, svc.RegisterMovie(ctx, movie))

	err := svc.RegisterMovie(ctx, &model.Movie{ID: "dune", Title: "Dune", Genre: "Sci-Fi", DurationMin: 155})
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestRegisterMovieValidation(t *testing.T) {
	svc := newTestService(t)

	err := svc.RegisterMovie(context.Background(), &model.Movie{ID: "x"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestGetMovieNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetMovie(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestSeedDefaultAuditoriums(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaultAuditoriums(ctx))

	auditoriums, err := svc.GetAuditoriums(ctx)
	require.NoError(t, err)
	require.Len(t, auditoriums, 3)

	vip, err := svc.GetAuditorium(ctx, "SalaVIP")
	require.NoError(t, err)
	assert.Equal(t, 30, vip.SeatCount())

	standard, err := svc.GetAuditorium(ctx, "SalaA")
	require.NoError(t, err)
	assert.Equal(t, 120, standard.SeatCount())

	// seeding again must be a no-op
	require.NoError(t, svc.SeedDefaultAuditoriums(ctx))
	auditoriums, err = svc.GetAuditoriums(ctx)
	require.NoError(t, err)
	assert.Len(t, auditoriums, 3)
}

func TestRegisterPersonRoles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterPerson(ctx, &model.Person{
		ID:        "ana",
		FirstName: "Ana",
		LastName:  "Lopez",
		Role:      model.RoleAdministrator,
	}))

	err := svc.RegisterPerson(ctx, &model.Person{
		ID:        "bad",
		FirstName: "B",
		LastName:  "C",
		Role:      model.Role("janitor"),
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	got, err := svc.GetPerson(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "AL", got.Initials())
}
