package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cinehall/internal/concessions/service"
	"cinehall/internal/concessions/validator"
	httputil "cinehall/pkg/http"
	"cinehall/pkg/logger"
)

type OrderHandler struct {
	service service.ConcessionsService
	log     *logger.Logger
}

func NewOrderHandler(service service.ConcessionsService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	order, err := h.service.SubmitOrder(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	// fulfillment continues in the background
	if err := httputil.WriteAccepted(w, order); err != nil {
		h.log.Error("failed to write accepted response", "handler", "Submit", "operation", "WriteAccepted", "error", err)
	}
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, err := h.service.GetOrder(r.Context(), ps.ByName("key"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOrder", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, order); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOrder", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) OrdersByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orders, err := h.service.OrdersByOwner(r.Context(), ps.ByName("owner_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "OrdersByOwner", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, orders); err != nil {
		h.log.Error("failed to write success response", "handler", "OrdersByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) Notifications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	lines, err := h.service.Notifications(r.Context(), ps.ByName("owner_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Notifications", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, lines); err != nil {
		h.log.Error("failed to write success response", "handler", "Notifications", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) HandlerHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	lines, err := h.service.HandlerHistory(r.Context(), ps.ByName("handler_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "HandlerHistory", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, lines); err != nil {
		h.log.Error("failed to write success response", "handler", "HandlerHistory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) PriceList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	prices, err := h.service.PriceList(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "PriceList", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, prices); err != nil {
		h.log.Error("failed to write success response", "handler", "PriceList", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/orders", h.Submit)
	router.GET("/api/v1/orders/key/:key", h.GetOrder)
	router.GET("/api/v1/orders/owner/:owner_id", h.OrdersByOwner)
	router.GET("/api/v1/notifications/:owner_id", h.Notifications)
	router.GET("/api/v1/handlers/:handler_id/history", h.HandlerHistory)
	router.GET("/api/v1/prices", h.PriceList)
}
