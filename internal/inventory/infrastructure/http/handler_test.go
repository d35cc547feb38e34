package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yoga28042005/carekart-server/internal/inventory/application"
	"github.com/yoga28042005/carekart-server/internal/inventory/domain"
)

type stubStockRepo struct {
	err   error
	calls int
}

func (s *stubStockRepo) Decrement(ctx context.Context, productID, quantity int) error {
	s.calls++
	return s.err
}

func newTestHandler(repo *stubStockRepo) http.Handler {
	log := slog.New(slog.DiscardHandler)
	return NewHandler(log, application.NewService(log, repo)).Routes()
}

func TestUpdateStock(t *testing.T) {
	repo := &stubStockRepo{}
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/update-stock",
		strings.NewReader(`{"productId":1,"quantityPurchased":2}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stock updated successfully")
	assert.Equal(t, 1, repo.calls)
}

func TestUpdateStockErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"invalid quantity", `{"productId":1,"quantityPurchased":0}`, nil, http.StatusBadRequest},
		{"insufficient stock", `{"productId":1,"quantityPurchased":5}`, domain.ErrInsufficientStock, http.StatusBadRequest},
		{"unknown product", `{"productId":99,"quantityPurchased":1}`, domain.ErrProductNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubStockRepo{err: tt.err})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/update-stock",
				strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
