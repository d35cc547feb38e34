package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/yoga28042005/carekart-server/internal/user/application"
	"github.com/yoga28042005/carekart-server/internal/user/domain"
	"github.com/yoga28042005/carekart-server/pkg/httpapi"
	"github.com/yoga28042005/carekart-server/pkg/middleware"
)

type Handler struct {
	log      *slog.Logger
	service  *application.Service
	validate *validator.Validate
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register mounts the profile and address routes. All of them are
// account-scoped and sit behind the auth middleware in the server wiring.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/user-profile/{userId}", h.profile)
	r.Put("/api/update-user/{userId}", h.updateProfile)
	r.Get("/api/user-addresses/{userId}", h.addresses)
	r.Post("/api/add-address", h.addAddress)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "User not found")
	case err != nil:
		h.log.Error("fetch profile failed", "user_id", userID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch user")
	default:
		httpapi.WriteJSON(w, http.StatusOK, profile)
	}
}

type updateProfileRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CustomerCity    string `json:"customer_city"`
	CustomerPhone   string `json:"customer_phone"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "a valid email is required")
		return
	}

	err := h.service.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		Email:           req.Email,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerPhone:   req.CustomerPhone,
	})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "User not found")
	case err != nil:
		h.log.Error("update profile failed", "user_id", userID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "update failed")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Profile updated successfully",
		})
	}
}

func (h *Handler) addresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.Addresses(r.Context(), userID)
	if err != nil {
		h.log.Error("fetch addresses failed", "user_id", userID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch addresses")
		return
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}

type addAddressRequest struct {
	UserID    int    `json:"userId" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	var req addAddressRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "userId, name, address, city and phone are required")
		return
	}
	if !middleware.Owns(r.Context(), req.UserID) {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "cannot add an address for another user")
		return
	}

	saved, err := h.service.AddAddress(r.Context(), domain.Address{
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.log.Error("add address failed", "user_id", req.UserID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to add address")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"address": saved})
}

// pathUserID parses the {userId} segment and rejects requests whose bearer
// token was issued to a different user.
func pathUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil || id <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid user ID")
		return 0, false
	}
	if !middleware.Owns(r.Context(), id) {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "cannot access another user's account")
		return 0, false
	}
	return id, true
}
