package wishlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yoga28042005/carekart-server/pkg/httpapi"
	"github.com/yoga28042005/carekart-server/pkg/middleware"
)

type Store interface {
	Add(ctx context.Context, userID, productID int) error
	ByUser(ctx context.Context, userID int) ([]Item, error)
	// Remove deletes row id. A nonzero ownerID restricts the delete to that
	// user's rows.
	Remove(ctx context.Context, id, ownerID int) error
}

type Handler struct {
	log   *slog.Logger
	store Store
}

func NewHandler(log *slog.Logger, store Store) *Handler {
	return &Handler{log: log, store: store}
}

// Register mounts the wishlist routes. The {id} segment is the user id on
// GET and the wishlist row id on DELETE, mirroring the storefront client.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/wishlist", h.add)
	r.Get("/api/wishlist/{id}", h.list)
	r.Delete("/api/wishlist/{id}", h.remove)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int `json:"user_id"`
		ProductID int `json:"product_id"`
	}
	if ok := httpapi.Decode(w, r, &req); !ok {
		return
	}
	if req.UserID <= 0 || req.ProductID <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "user_id and product_id are required")
		return
	}
	if !middleware.Owns(r.Context(), req.UserID) {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "cannot modify another user's wishlist")
		return
	}

	err := h.store.Add(r.Context(), req.UserID, req.ProductID)
	switch {
	case errors.Is(err, ErrDuplicateItem):
		httpapi.WriteError(w, http.StatusConflict, "conflict", "Product already in wishlist")
	case err != nil:
		h.log.Error("wishlist add failed", "user_id", req.UserID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to add to wishlist")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Added to wishlist"})
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid user ID")
		return
	}
	if !middleware.Owns(r.Context(), userID) {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "cannot read another user's wishlist")
		return
	}

	items, err := h.store.ByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("wishlist list failed", "user_id", userID, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to fetch wishlist")
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpapi.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid wishlist ID")
		return
	}

	// Scoping the delete to the authenticated user means a row belonging to
	// someone else looks like a missing row.
	err = h.store.Remove(r.Context(), id, middleware.AuthUserID(r.Context()))
	switch {
	case errors.Is(err, ErrItemNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "wishlist item not found")
	case err != nil:
		h.log.Error("wishlist remove failed", "wishlist_id", id, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to remove from wishlist")
	default:
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
	}
}
