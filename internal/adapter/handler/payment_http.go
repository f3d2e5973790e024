package handler

import (
	"encoding/json"
	"net/http"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/core/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/payments", h.create)
	mux.HandleFunc("GET /api/payments", h.list)
	mux.HandleFunc("GET /api/payments/{id}", h.get)
	mux.HandleFunc("PUT /api/payments", h.update)
	mux.HandleFunc("DELETE /api/payments/{id}", h.delete)
}

func (h *PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payment.OrderID == "" {
		writeError(w, http.StatusBadRequest, "order_id is required")
		return
	}
	if err := h.payments.CreatePayment(r.Context(), &payment); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) list(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if payment == nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) update(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payment.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := h.payments.UpdatePayment(r.Context(), &payment); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.DeletePayment(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
