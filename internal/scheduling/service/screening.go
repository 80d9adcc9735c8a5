package service

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogrepo "cinehall/internal/catalog/repository"
	schedulingerrors "cinehall/internal/scheduling/errors"
	"cinehall/internal/scheduling/repository"
	"cinehall/internal/scheduling/validator"
	"cinehall/pkg/config"
	apperrors "cinehall/pkg/errors"
	"cinehall/pkg/model"
)

type SchedulingService interface {
	// Schedule validates the requested window against the auditorium
	// calendar and, when clear, places the screening with a fresh seat
	// matrix. Validation and insertion happen under one calendar lock.
	Schedule(ctx context.Context, req *validator.ScheduleRequest) (*model.Screening, error)

	// CheckAvailability runs the same conflict scan without inserting.
	CheckAvailability(ctx context.Context, auditoriumID string, start time.Time, durationMin int) error

	GetByID(ctx context.Context, id string) (*model.Screening, error)
	GetAll(ctx context.Context) ([]*model.Screening, error)
	GetByAuditorium(ctx context.Context, auditoriumID string) ([]*model.Screening, error)
}

type schedulingService struct {
	repo        repository.ScreeningRepository
	movies      catalogrepo.MovieRepository
	auditoriums catalogrepo.AuditoriumRepository
	people      catalogrepo.PersonRepository
	validator   *validator.ScreeningValidator
	cfg         *config.Config

	// calendar serializes conflict scan and insertion so two concurrent
	// requests cannot both pass validation for the same window.
	calendar sync.Mutex
}

func NewSchedulingService(
	repo repository.ScreeningRepository,
	movies catalogrepo.MovieRepository,
	auditoriums catalogrepo.AuditoriumRepository,
	people catalogrepo.PersonRepository,
	validator *validator.ScreeningValidator,
	cfg *config.Config,
) SchedulingService {
	return &schedulingService{
		repo:        repo,
		movies:      movies,
		auditoriums: auditoriums,
		people:      people,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *schedulingService) Schedule(ctx context.Context, req *validator.ScheduleRequest) (*model.Screening, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	admin, err := s.people.FindByID(ctx, req.AdminID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Person", req.AdminID)
	}
	if admin.Role != model.RoleAdministrator {
		return nil, apperrors.InvalidInput("Only administrators can schedule screenings")
	}

	movie, err := s.movies.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Movie", req.MovieID)
	}

	auditorium, err := s.auditoriums.FindByID(ctx, req.AuditoriumID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Auditorium", req.AuditoriumID)
	}

	start := req.StartTime
	end := start.Add(time.Duration(movie.DurationMin) * time.Minute)

	s.calendar.Lock()
	defer s.calendar.Unlock()

	if err := s.scanForConflict(ctx, auditorium.ID, start, end); err != nil {
		return nil, err
	}

	screening := &model.Screening{
		ID:           model.ScreeningID(admin.Initials(), start, auditorium.ID),
		AuditoriumID: auditorium.ID,
		MovieID:      movie.ID,
		StartTime:    start,
		DurationMin:  movie.DurationMin,
		Seats:        auditorium.NewSeatMatrix(),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Upsert(ctx, screening); err != nil {
		return nil, apperrors.Internal("Failed to place screening", err)
	}

	s.cfg.Log.Info("Screening scheduled",
		"id", screening.ID,
		"auditorium_id", screening.AuditoriumID,
		"movie_id", screening.MovieID,
		"start_time", screening.StartTime,
		"end_time", screening.EndTime(),
	)
	return screening, nil
}

func (s *schedulingService) CheckAvailability(ctx context.Context, auditoriumID string, start time.Time, durationMin int) error {
	if auditoriumID == "" {
		return apperrors.InvalidInput("Auditorium ID cannot be empty")
	}
	if durationMin < 1 {
		return apperrors.InvalidInput("Duration must be at least one minute")
	}

	if _, err := s.auditoriums.FindByID(ctx, auditoriumID); err != nil {
		return apperrors.NotFoundWithID("Auditorium", auditoriumID)
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	s.calendar.Lock()
	defer s.calendar.Unlock()
	return s.scanForConflict(ctx, auditoriumID, start, end)
}

// scanForConflict walks the auditorium calendar and rejects the window on
// the first buffered overlap. Caller holds the calendar lock.
func (s *schedulingService) scanForConflict(ctx context.Context, auditoriumID string, start, end time.Time) error {
	existing, err := s.repo.FindByAuditorium(ctx, auditoriumID)
	if err != nil {
		return apperrors.Internal("Failed to read the auditorium calendar", err)
	}

	for _, other := range existing {
		if validator.Conflicts(start, end, other.StartTime, other.EndTime(), s.cfg.TurnaroundBuffer) {
			return apperrors.Conflict("Requested window collides with an existing screening").
				WithCause(schedulingerrors.ErrTimeConflict).
				WithDetails(map[string]any{
					"conflicting_screening": other.ID,
					"occupied_from":         other.StartTime.Add(-s.cfg.TurnaroundBuffer),
					"occupied_until":        other.EndTime().Add(s.cfg.TurnaroundBuffer),
				})
		}
	}
	return nil
}

func (s *schedulingService) GetByID(ctx context.Context, id string) (*model.Screening, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Screening ID cannot be empty")
	}

	screening, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, schedulingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Screening", id)
		}
		return nil, apperrors.Internal("Failed to retrieve screening", err)
	}
	return screening, nil
}

func (s *schedulingService) GetAll(ctx context.Context) ([]*model.Screening, error) {
	screenings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list screenings", err)
	}
	return screenings, nil
}

func (s *schedulingService) GetByAuditorium(ctx context.Context, auditoriumID string) ([]*model.Screening, error) {
	if auditoriumID == "" {
		return nil, apperrors.InvalidInput("Auditorium ID cannot be empty")
	}

	screenings, err := s.repo.FindByAuditorium(ctx, auditoriumID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list screenings", err)
	}
	return screenings, nil
}
