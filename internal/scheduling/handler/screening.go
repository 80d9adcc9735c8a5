package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"cinehall/internal/scheduling/service"
	"cinehall/internal/scheduling/validator"
	apperrors "cinehall/pkg/errors"
	httputil "cinehall/pkg/http"
	"cinehall/pkg/logger"
)

type ScreeningHandler struct {
	service service.SchedulingService
	log     *logger.Logger
}

func NewScreeningHandler(service service.SchedulingService, log *logger.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log,
	}
}

func (h *ScreeningHandler) Schedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Schedule", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	screening, err := h.service.Schedule(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Schedule", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, screening); err != nil {
		h.log.Error("failed to write created response", "handler", "Schedule", "operation", "WriteCreated", "error", err)
	}
}

func (h *ScreeningHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	auditoriumID := query.Get("auditorium_id")
	startStr := query.Get("start_time")
	durationStr := query.Get("duration_min")

	if auditoriumID == "" || startStr == "" || durationStr == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'auditorium_id', 'start_time' and 'duration_min' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid start_time format, must be RFC3339")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid duration_min parameter")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.CheckAvailability(r.Context(), auditoriumID, start, duration); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"available": true}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScreeningHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	screening, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, screening); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScreeningHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if auditoriumID := r.URL.Query().Get("auditorium_id"); auditoriumID != "" {
		screenings, err := h.service.GetByAuditorium(r.Context(), auditoriumID)
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if err := httputil.WriteSuccess(w, screenings); err != nil {
			h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	screenings, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, screenings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScreeningHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/screenings", h.Schedule)
	router.GET("/api/v1/screenings", h.GetAll)
	router.GET("/api/v1/screenings/id/:id", h.GetByID)
	router.GET("/api/v1/screenings/availability", h.CheckAvailability)
}
