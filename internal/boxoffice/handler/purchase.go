package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cinehall/internal/boxoffice/service"
	"cinehall/internal/boxoffice/validator"
	httputil "cinehall/pkg/http"
	"cinehall/pkg/logger"
)

type PurchaseHandler struct {
	service service.BoxOfficeService
	log     *logger.Logger
}

func NewPurchaseHandler(service service.BoxOfficeService, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log,
	}
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Purchase", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	receipt, err := h.service.Purchase(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Purchase", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, receipt); err != nil {
		h.log.Error("failed to write created response", "handler", "Purchase", "operation", "WriteCreated", "error", err)
	}
}

func (h *PurchaseHandler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	lines, err := h.service.History(r.Context(), ps.ByName("owner_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "History", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, lines); err != nil {
		h.log.Error("failed to write success response", "handler", "History", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PurchaseHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/purchases", h.Purchase)
	router.GET("/api/v1/purchases/history/:owner_id", h.History)
}
