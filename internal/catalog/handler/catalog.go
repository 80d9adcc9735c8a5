package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"cinehall/internal/catalog/service"
	apperrors "cinehall/pkg/errors"
	httputil "cinehall/pkg/http"
	"cinehall/pkg/logger"
	"cinehall/pkg/model"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// AuditoriumRequest admits either a stock layout (kind standard|vip with a
// row count) or an explicit custom row list.
type AuditoriumRequest struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	RowCount int         `json:"row_count"`
	Rows     []model.Row `json:"rows"`
}

func (h *CatalogHandler) CreateMovie(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var movie model.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateMovie", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.RegisterMovie(r.Context(), &movie); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateMovie", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, movie); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateMovie", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) GetMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movie, err := h.service.GetMovie(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetMovie", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "GetMovie", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) GetMovies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := paginationParams(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetMovies", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	movies, total, err := h.service.GetMovies(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetMovies", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, movies, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetMovies", "operation", "WritePaginated", "error", err)
	}
}

func (h *CatalogHandler) CreateAuditorium(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AuditoriumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateAuditorium", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	auditorium := model.Auditorium{ID: req.ID, Name: req.Name}
	switch req.Kind {
	case "standard":
		auditorium.Rows = model.StandardRows(req.RowCount)
	case "vip":
		auditorium.Rows = model.VIPRows(req.RowCount)
	case "", "custom":
		auditorium.Rows = req.Rows
	default:
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("unknown auditorium kind: %s", req.Kind))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateAuditorium", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.RegisterAuditorium(r.Context(), &auditorium); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateAuditorium", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, auditorium); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateAuditorium", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) GetAuditorium(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	auditorium, err := h.service.GetAuditorium(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAuditorium", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, auditorium); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAuditorium", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) GetAuditoriums(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	auditoriums, err := h.service.GetAuditoriums(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAuditoriums", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, auditoriums); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAuditoriums", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) CreatePerson(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var person model.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreatePerson", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.RegisterPerson(r.Context(), &person); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreatePerson", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, person); err != nil {
		h.log.Error("failed to write created response", "handler", "CreatePerson", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) GetPerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	person, err := h.service.GetPerson(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPerson", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, person); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPerson", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) GetPeople(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := paginationParams(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPeople", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	people, total, err := h.service.GetPeople(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPeople", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, people, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetPeople", "operation", "WritePaginated", "error", err)
	}
}

func paginationParams(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))
		}
	}

	offset := 0
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))
		}
	}

	return limit, offset, nil
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/movies", h.CreateMovie)
	router.GET("/api/v1/movies", h.GetMovies)
	router.GET("/api/v1/movies/id/:id", h.GetMovie)

	router.POST("/api/v1/auditoriums", h.CreateAuditorium)
	router.GET("/api/v1/auditoriums", h.GetAuditoriums)
	router.GET("/api/v1/auditoriums/id/:id", h.GetAuditorium)

	router.POST("/api/v1/people", h.CreatePerson)
	router.GET("/api/v1/people", h.GetPeople)
	router.GET("/api/v1/people/id/:id", h.GetPerson)
}
