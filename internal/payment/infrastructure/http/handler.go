package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yoga28042005/carekart-server/internal/payment/application"
	"github.com/yoga28042005/carekart-server/internal/payment/domain"
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
	r.Post("/api/create-order", h.createOrder)
	r.Post("/api/generate-upi-link", h.generateUPILink)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}

	order, err := h.service.CreateOrder(req.Amount, req.Currency, req.Receipt)
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "a positive amount is required")
	case errors.Is(err, domain.ErrAmountTooLarge):
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "amount exceeds the gateway limit")
	case err != nil:
		h.log.Error("create gateway order failed", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to create order")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"order":   order,
		})
	}
}

type upiLinkRequest struct {
	Amount  float64 `json:"amount"`
	OrderID string  `json:"orderId"`
}

func (h *Handler) generateUPILink(w http.ResponseWriter, r *http.Request) {
	var req upiLinkRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if req.Amount <= 0 || req.OrderID == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "Amount and Order ID required")
		return
	}

	link, err := h.service.GenerateUPILink(req.Amount, req.OrderID)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "Amount and Order ID required")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{
		"upiLink": link.Link,
		"qrData":  link.QRData,
	})
}
