package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/yoga28042005/carekart-server/internal/auth/application"
	"github.com/yoga28042005/carekart-server/internal/auth/domain"
	"github.com/yoga28042005/carekart-server/pkg/httpapi"
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

func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/api/get-user-by-name", h.userByName)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "Missing fields")
		return
	}

	err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "User already exists")
	case err != nil:
		h.log.Error("signup failed", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Signup error")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "username and password are required")
		return
	}

	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
	case err != nil:
		h.log.Error("login failed", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Login failed")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   session.Token,
			"userId":  session.UserID,
		})
	}
}

func (h *Handler) userByName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if req.Name == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "Name is required")
		return
	}

	id, err := h.service.UserIDByName(r.Context(), req.Name)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "User not found")
	case err != nil:
		h.log.Error("user lookup failed", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to get user")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]int{"userId": id})
	}
}
