package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/core/service"
)

type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/inventory", h.create)
	mux.HandleFunc("GET /api/inventory", h.list)
	mux.HandleFunc("GET /api/inventory/{id}", h.get)
	mux.HandleFunc("GET /api/inventory/product/{productId}", h.getByProduct)
	mux.HandleFunc("GET /api/inventory/product/{productId}/in-stock", h.inStock)
	mux.HandleFunc("PUT /api/inventory", h.update)
	mux.HandleFunc("DELETE /api/inventory/{id}", h.delete)
}

func (h *InventoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var inv domain.Inventory
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if inv.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	err := h.inventory.CreateInventory(r.Context(), &inv)
	switch {
	case errors.Is(err, service.ErrUnknownProduct):
		writeError(w, http.StatusUnprocessableEntity, "product does not exist")
	case errors.Is(err, service.ErrProductUnverifiable):
		writeError(w, http.StatusBadGateway, "product service unreachable")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusCreated, inv)
	}
}

func (h *InventoryHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.inventory.ListInventories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []domain.Inventory{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *InventoryHandler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.inventory.GetInventory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if inv == nil {
		writeError(w, http.StatusNotFound, "inventory record not found")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) getByProduct(w http.ResponseWriter, r *http.Request) {
	inv, err := h.inventory.GetInventoryByProductID(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if inv == nil {
		writeError(w, http.StatusNotFound, "inventory record not found")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// inStock answers the stock-check capability with a bare boolean; unknown
// products answer false rather than 404, matching the contract the order
// service relies on.
func (h *InventoryHandler) inStock(w http.ResponseWriter, r *http.Request) {
	inStock, err := h.inventory.IsInStock(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, inStock)
}

func (h *InventoryHandler) update(w http.ResponseWriter, r *http.Request) {
	var inv domain.Inventory
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if inv.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := h.inventory.UpdateInventory(r.Context(), &inv); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteInventory(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
