package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yoga28042005/carekart-server/internal/inventory/application"
	"github.com/yoga28042005/carekart-server/internal/inventory/domain"
	"github.com/yoga28042005/carekart-server/pkg/httpapi"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/update-stock", h.updateStock)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

type updateStockRequest struct {
	ProductID         int `json:"productId"`
	QuantityPurchased int `json:"quantityPurchased"`
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}

	err := h.service.RecordPurchase(r.Context(), req.ProductID, req.QuantityPurchased)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid product ID or quantity")
		case errors.Is(err, domain.ErrInsufficientStock):
			httpapi.WriteError(w, http.StatusBadRequest, "insufficient_stock", "not enough stock")
		case errors.Is(err, domain.ErrProductNotFound):
			httpapi.WriteError(w, http.StatusNotFound, "not_found", "product not found")
		default:
			h.log.Error("stock update failed", "product_id", req.ProductID, "err", err)
			httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "update failed")
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Stock updated successfully"})
}
