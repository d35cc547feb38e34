package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yoga28042005/carekart-server/internal/catalog/application"
	"github.com/yoga28042005/carekart-server/internal/catalog/domain"
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
	r.Get("/api/categories", h.categories)
	r.Get("/api/products/{category}", h.productsByCategory)
	r.Get("/api/product/{id}", h.productByID)
	r.Get("/api/image-base64/{filename}", h.imageBase64)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	httpapi.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	listings, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		h.log.Error("list products failed", "category", category, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to fetch products")
		return
	}
	if len(listings) == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "no products found in this category")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) productByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid product ID")
		return
	}

	product, err := h.service.Product(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "Product not found")
	case err != nil:
		h.log.Error("fetch product failed", "product_id", id, "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
	default:
		httpapi.WriteJSON(w, http.StatusOK, product)
	}
}

func (h *Handler) imageBase64(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	data, err := h.service.Image(filename)
	if err != nil {
		httpapi.WriteError(w, http.StatusNotFound, "not_found", "Image not found")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"image": data})
}
