package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

type CreateOrderRequest struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

type RejectionResponse struct {
	Status  string                   `json:"status"`
	Reasons []domain.RejectionReason `json:"reasons"`
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.create)
	mux.HandleFunc("GET /api/orders", h.list)
	mux.HandleFunc("GET /api/orders/{id}", h.get)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.updateStatus)
	mux.HandleFunc("DELETE /api/orders/{id}", h.delete)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || len(req.ProductIDs) == 0 {
		writeError(w, http.StatusBadRequest, "user_id and product_ids are required")
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			writeJSON(w, http.StatusUnprocessableEntity, RejectionResponse{
				Status:  "REJECTED",
				Reasons: rejection.Reasons,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
