package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoga28042005/carekart-server/internal/payment/application"
)

func newTestHandler() http.Handler {
	log := slog.New(slog.DiscardHandler)
	svc := application.NewService(log, application.Config{
		KeyID:    "rzp_test_key",
		MaxPaise: 50_000_00,
		UPIVPA:   "carekart@axl",
		UPIPayee: "CareKart",
	})
	return NewHandler(log, svc).Routes()
}

func TestCreateOrder(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create-order",
		strings.NewReader(`{"amount":499.99,"receipt":"rcpt-1"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Success bool `json:"success"`
		Order   struct {
			ID       string `json:"id"`
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, int64(49999), got.Order.Amount)
	assert.Equal(t, "INR", got.Order.Currency)
	assert.True(t, strings.HasPrefix(got.Order.ID, "order_"))
}

func TestCreateOrderRejectsOverLimit(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create-order",
		strings.NewReader(`{"amount":99999}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateUPILink(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-upi-link",
		strings.NewReader(`{"amount":250.5,"orderId":"ORD-1712000000000"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, strings.HasPrefix(got["upiLink"], "upi://pay?"))
	assert.Equal(t, got["upiLink"], got["qrData"])
	assert.Contains(t, got["upiLink"], "pa=carekart%40axl")
}

func TestGenerateUPILinkRequiresFields(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-upi-link",
		strings.NewReader(`{"amount":100}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amount and Order ID required")
}
