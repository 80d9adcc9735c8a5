package service

import (
	"context"
	"errors"

	catalogerrors "cinehall/internal/catalog/errors"
	"cinehall/internal/catalog/repository"
	"cinehall/internal/catalog/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/model"
	"cinehall/pkg/sanitizer"
)

type CatalogService interface {
	RegisterMovie(ctx context.Context, movie *model.Movie) error
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	GetMovies(ctx context.Context, limit, offset int) ([]*model.Movie, int64, error)

	RegisterAuditorium(ctx context.Context, auditorium *model.Auditorium) error
	GetAuditorium(ctx context.Context, id string) (*model.Auditorium, error)
	GetAuditoriums(ctx context.Context) ([]*model.Auditorium, error)

	RegisterPerson(ctx context.Context, person *model.Person) error
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	GetPeople(ctx context.Context, limit, offset int) ([]*model.Person, int64, error)

	// SeedDefaultAuditoriums installs the stock room layouts on first boot.
	SeedDefaultAuditoriums(ctx context.Context) error
}

type catalogService struct {
	movies      repository.MovieRepository
	auditoriums repository.AuditoriumRepository
	people      repository.PersonRepository
	validator   *validator.CatalogValidator
	cfg         *config.Config
}

func NewCatalogService(
	movies repository.MovieRepository,
	auditoriums repository.AuditoriumRepository,
	people repository.PersonRepository,
	validator *validator.CatalogValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		movies:      movies,
		auditoriums: auditoriums,
		people:      people,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *catalogService) RegisterMovie(ctx context.Context, movie *model.Movie) error {
	movie.ID = sanitizer.NormalizeID(movie.ID)
	movie.Title = sanitizer.NormalizeTitle(movie.Title)
	movie.Genre = sanitizer.TrimAndNormalize(movie.Genre)

	if err := s.validator.ValidateMovie(movie); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		if errors.Is(err, catalogerrors.ErrDuplicateID) {
			return apperrors.Conflict("A movie with this ID already exists")
		}
		return apperrors.Internal("Failed to register movie", err)
	}

	s.cfg.Log.Info("Movie registered", "id", movie.ID, "title", movie.Title)
	return nil
}

func (s *catalogService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Movie ID cannot be empty")
	}

	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrMovieNotFound) {
			return nil, apperrors.NotFoundWithID("Movie", id)
		}
		return nil, apperrors.Internal("Failed to retrieve movie", err)
	}
	return movie, nil
}

func (s *catalogService) GetMovies(ctx context.Context, limit, offset int) ([]*model.Movie, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.movies.FindAll(ctx, limit, offset)
}

func (s *catalogService) RegisterAuditorium(ctx context.Context, auditorium *model.Auditorium) error {
	auditorium.ID = sanitizer.NormalizeID(auditorium.ID)
	auditorium.Name = sanitizer.NormalizeName(auditorium.Name)

	if err := s.validator.ValidateAuditorium(auditorium); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	if err := s.auditoriums.Create(ctx, auditorium); err != nil {
		if errors.Is(err, catalogerrors.ErrDuplicateID) {
			return apperrors.Conflict("An auditorium with this ID already exists")
		}
		return apperrors.Internal("Failed to register auditorium", err)
	}

	s.cfg.Log.Info("Auditorium registered",
		"id", auditorium.ID,
		"name", auditorium.Name,
		"seats", auditorium.SeatCount(),
	)
	return nil
}

func (s *catalogService) GetAuditorium(ctx context.Context, id string) (*model.Auditorium, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Auditorium ID cannot be empty")
	}

	auditorium, err := s.auditoriums.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrAuditoriumNotFound) {
			return nil, apperrors.NotFoundWithID("Auditorium", id)
		}
		return nil, apperrors.Internal("Failed to retrieve auditorium", err)
	}
	return auditorium, nil
}

func (s *catalogService) GetAuditoriums(ctx context.Context) ([]*model.Auditorium, error) {
	auditoriums, err := s.auditoriums.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list auditoriums", err)
	}
	return auditoriums, nil
}

func (s *catalogService) RegisterPerson(ctx context.Context, person *model.Person) error {
	person.ID = sanitizer.NormalizeID(person.ID)
	person.FirstName = sanitizer.NormalizeName(person.FirstName)
	person.LastName = sanitizer.NormalizeName(person.LastName)

	if err := s.validator.ValidatePerson(person); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	if err := s.people.Create(ctx, person); err != nil {
		if errors.Is(err, catalogerrors.ErrDuplicateID) {
			return apperrors.Conflict("A person with this ID already exists")
		}
		return apperrors.Internal("Failed to register person", err)
	}

	s.cfg.Log.Info("Person registered", "id", person.ID, "role", person.Role)
	return nil
}

func (s *catalogService) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Person ID cannot be empty")
	}

	person, err := s.people.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrPersonNotFound) {
			return nil, apperrors.NotFoundWithID("Person", id)
		}
		return nil, apperrors.Internal("Failed to retrieve person", err)
	}
	return person, nil
}

func (s *catalogService) GetPeople(ctx context.Context, limit, offset int) ([]*model.Person, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.people.FindAll(ctx, limit, offset)
}

func (s *catalogService) SeedDefaultAuditoriums(ctx context.Context) error {
	count, err := s.auditoriums.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to inspect auditorium catalog", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []*model.Auditorium{
		{ID: "SalaA", Name: "Hall A", Rows: model.StandardRows(8)},
		{ID: "SalaB", Name: "Hall B", Rows: model.StandardRows(8)},
		{ID: "SalaVIP", Name: "VIP Hall", Rows: model.VIPRows(5)},
	}

	for _, a := range defaults {
		if err := s.auditoriums.Create(ctx, a); err != nil {
			return apperrors.Internal("Failed to seed default auditoriums", err)
		}
	}

	s.cfg.Log.Info("Default auditoriums seeded", "count", len(defaults))
	return nil
}
