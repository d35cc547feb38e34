package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yoga28042005/carekart-server/internal/order/application"
	"github.com/yoga28042005/carekart-server/internal/order/domain"
	"github.com/yoga28042005/carekart-server/pkg/httpapi"
	"github.com/yoga28042005/carekart-server/pkg/middleware"
)

// ReplayGuard claims Idempotency-Key values for the lifetime of a placement.
// A key is only kept when placement commits; failed attempts release it so
// the client can retry with the same key.
type ReplayGuard interface {
	Key(operation string, userID int, clientKey string) string
	Seen(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Handler struct {
	log      *slog.Logger
	service  *application.Service
	idem     ReplayGuard
	validate *validator.Validate
	tracer   trace.Tracer
}

// NewHandler wires the checkout endpoints. idem may be nil when redis is not
// configured; placement then runs without replay protection.
func NewHandler(log *slog.Logger, service *application.Service, idem ReplayGuard) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		idem:     idem,
		validate: validator.New(),
		tracer:   otel.Tracer("order-http"),
	}
}

// Register mounts the public checkout route; RegisterAccount mounts the
// routes that require a logged-in session.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/place-order", h.placeOrder)
}

func (h *Handler) RegisterAccount(r chi.Router) {
	r.Get("/api/order-history/{userId}", h.orderHistory)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterAccount(r)
	return r
}

// The storefront sends cart lines either flat or wrapped in a product object;
// both shapes are accepted.
type itemPayload struct {
	Product  *productPayload `json:"product"`
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
}

type productPayload struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (p itemPayload) toDomain() domain.OrderItem {
	item := domain.OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    p.Quantity,
	}
	if p.Product != nil {
		item.ProductID = p.Product.ID
		item.ProductName = p.Product.Name
		item.UnitPrice = p.Product.Price
	}
	return item
}

type userDetailsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

type placeOrderRequest struct {
	Items         []itemPayload      `json:"items" validate:"required,min=1"`
	TotalPrice    float64            `json:"totalPrice" validate:"gte=0"`
	UserDetails   userDetailsPayload `json:"userDetails"`
	UserID        int                `json:"userId"`
	PaymentMethod string             `json:"paymentMethod"`
	TransactionID *string            `json:"transactionId"`
}

type placeOrderResponse struct {
	Success       bool    `json:"success"`
	OrderID       string  `json:"orderId"`
	TrackingID    string  `json:"trackingId"`
	TransactionID *string `json:"transactionId"`
	Message       string  `json:"message"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	var req placeOrderRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if req.UserID <= 0 {
		req.UserID = 1
	}

	// Claiming the key up front collapses concurrent retries into one
	// placement. The claim only sticks when the order commits; any failure
	// below releases it again.
	var idemKey string
	if key := r.Header.Get("Idempotency-Key"); key != "" && h.idem != nil {
		k := h.idem.Key("place-order", req.UserID, key)
		seen, err := h.idem.Seen(ctx, k)
		if err != nil {
			h.log.Error("idempotency check failed", "err", err)
		} else if seen {
			httpapi.WriteError(w, http.StatusConflict, "duplicate_request", "an order with this idempotency key was already placed")
			return
		} else {
			idemKey = k
		}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, p := range req.Items {
		items = append(items, p.toDomain())
	}

	placed, err := h.service.PlaceOrder(ctx, application.PlaceOrderCommand{
		UserID:        req.UserID,
		Items:         items,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		TransactionID: req.TransactionID,
		Customer: domain.Customer{
			Name:    req.UserDetails.Name,
			Address: req.UserDetails.Address,
			City:    req.UserDetails.City,
			Phone:   req.UserDetails.Phone,
		},
	})
	if err != nil {
		if idemKey != "" {
			if relErr := h.idem.Release(ctx, idemKey); relErr != nil {
				h.log.Error("idempotency release failed", "key", idemKey, "err", relErr)
			}
		}
		switch {
		case errors.Is(err, domain.ErrNoItems), errors.Is(err, domain.ErrMissingTransactionID):
			httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, domain.ErrInsufficientStock):
			httpapi.WriteError(w, http.StatusBadRequest, "insufficient_stock", err.Error())
		case errors.Is(err, domain.ErrProductNotFound):
			httpapi.WriteError(w, http.StatusNotFound, "not_found", err.Error())
		default:
			h.log.Error("order save error", "err", err)
			httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, placeOrderResponse{
		Success:       true,
		OrderID:       placed.OrderID,
		TrackingID:    placed.TrackingID,
		TransactionID: placed.TransactionID,
		Message:       "Order saved successfully",
	})
}

type historyOrder struct {
	OrderID         string  `json:"order_id"`
	TrackingID      string  `json:"tracking_id"`
	TotalAmount     float64 `json:"total_amount"`
	PaymentMethod   string  `json:"payment_method"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	CustomerCity    string  `json:"customer_city"`
	CustomerPhone   string  `json:"customer_phone"`
	CreatedAt       string  `json:"created_at"`
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil || userID <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}
	if !middleware.Owns(r.Context(), userID) {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "order history belongs to another user")
		return
	}

	orders, err := h.service.History(r.Context(), userID)
	if err != nil {
		h.log.Error("order history failed", "user_id", userID, "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to fetch order history")
		return
	}

	out := make([]historyOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, historyOrder{
			OrderID:         o.OrderID,
			TrackingID:      o.TrackingID,
			TotalAmount:     o.TotalAmount,
			PaymentMethod:   string(o.PaymentMethod),
			Status:          string(o.Status),
			CustomerName:    o.Customer.Name,
			CustomerAddress: o.Customer.Address,
			CustomerCity:    o.Customer.City,
			CustomerPhone:   o.Customer.Phone,
			CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "orders": out})
}
