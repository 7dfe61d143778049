package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
)

type OrderHandler interface {
	OpenSession(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
	ListOpenSessions(w http.ResponseWriter, r *http.Request)
	AddLineItem(w http.ResponseWriter, r *http.Request)
	ListSessionItems(w http.ResponseWriter, r *http.Request)
	VoidLineItem(w http.ResponseWriter, r *http.Request)
	CreateMenuItem(w http.ResponseWriter, r *http.Request)
	UpdateMenuItem(w http.ResponseWriter, r *http.Request)
	ListMenu(w http.ResponseWriter, r *http.Request)
}

type OrderHandlerImpl struct {
	orderService order.OrderService
}

// OpenSession implements OrderHandler.
func (o *OrderHandlerImpl) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req order.OpenSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OpenSession decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	sessionResponse, err := o.orderService.OpenSession(r.Context(), req)
	if err != nil {
		slog.Error("OpenSession service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session opened successfully", sessionResponse)
}

// CloseSession implements OrderHandler.
func (o *OrderHandlerImpl) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	closeResponse, err := o.orderService.CloseSession(r.Context(), sessionID)
	if err != nil {
		slog.Error("CloseSession service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session closed successfully", closeResponse)
}

// ListOpenSessions implements OrderHandler.
func (o *OrderHandlerImpl) ListOpenSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := o.orderService.ListOpenSessions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessions)
}

// AddLineItem implements OrderHandler.
func (o *OrderHandlerImpl) AddLineItem(w http.ResponseWriter, r *http.Request) {
	var req order.AddLineItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddLineItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SessionID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	itemResponse, err := o.orderService.AddLineItem(r.Context(), req)
	if err != nil {
		slog.Error("AddLineItem service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Item added successfully", itemResponse)
}

// ListSessionItems implements OrderHandler.
func (o *OrderHandlerImpl) ListSessionItems(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	items, err := o.orderService.ListSessionItems(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// VoidLineItem implements OrderHandler.
func (o *OrderHandlerImpl) VoidLineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")

	if err := o.orderService.VoidLineItem(r.Context(), id); err != nil {
		slog.Error("VoidLineItem service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item voided successfully", nil)
}

// CreateMenuItem implements OrderHandler.
func (o *OrderHandlerImpl) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req order.CreateMenuItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMenuItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	itemResponse, err := o.orderService.CreateMenuItem(r.Context(), req)
	if err != nil {
		slog.Error("CreateMenuItem service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Menu item created successfully", itemResponse)
}

// UpdateMenuItem implements OrderHandler.
func (o *OrderHandlerImpl) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req order.UpdateMenuItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMenuItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	itemResponse, err := o.orderService.UpdateMenuItem(r.Context(), req)
	if err != nil {
		slog.Error("UpdateMenuItem service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Menu item updated successfully", itemResponse)
}

// ListMenu implements OrderHandler.
func (o *OrderHandlerImpl) ListMenu(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	items, err := o.orderService.ListMenu(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

func NewOrderHandler(orderService order.OrderService) OrderHandler {
	return &OrderHandlerImpl{orderService: orderService}
}
