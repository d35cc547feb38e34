package application

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/yoga28042005/carekart-server/internal/payment/domain"
)

// Config carries the gateway identity and limits, injected from env.
type Config struct {
	KeyID    string
	MaxPaise int64
	UPIVPA   string
	UPIPayee string
}

type UPILink struct {
	Link   string
	QRData string
}

// Service simulates a hosted payment provider: it mints gateway orders and
// builds UPI deep links without calling out to a real gateway.
type Service struct {
	log *slog.Logger
	cfg Config
}

func NewService(log *slog.Logger, cfg Config) *Service {
	return &Service{log: log, cfg: cfg}
}

// CreateOrder registers a payment intent with the simulated gateway. Amount
// arrives in rupees and is stored in paise, matching provider conventions.
func (s *Service) CreateOrder(amount float64, currency, receipt string) (domain.GatewayOrder, error) {
	if amount <= 0 {
		return domain.GatewayOrder{}, domain.ErrInvalidAmount
	}
	paise := domain.ToMinorUnits(amount)
	if s.cfg.MaxPaise > 0 && paise > s.cfg.MaxPaise {
		return domain.GatewayOrder{}, domain.ErrAmountTooLarge
	}
	if currency == "" {
		currency = "INR"
	}

	order := domain.GatewayOrder{
		ID:        "order_" + newGatewayID(),
		Amount:    paise,
		AmountDue: paise,
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: time.Now().UTC(),
	}
	s.log.Info("gateway order created", "gateway_order_id", order.ID, "amount_paise", paise)
	return order, nil
}

// GenerateUPILink builds a upi://pay deep link for the given order. The VPA
// and payee name come from config, never from the request.
func (s *Service) GenerateUPILink(amount float64, orderID string) (UPILink, error) {
	if amount <= 0 {
		return UPILink{}, domain.ErrInvalidAmount
	}
	if orderID == "" {
		return UPILink{}, fmt.Errorf("order id required")
	}

	q := url.Values{}
	q.Set("pa", s.cfg.UPIVPA)
	q.Set("pn", s.cfg.UPIPayee)
	q.Set("am", strconv.FormatFloat(amount, 'f', 2, 64))
	q.Set("tn", orderID)
	q.Set("cu", "INR")
	link := "upi://pay?" + q.Encode()

	return UPILink{Link: link, QRData: link}, nil
}

func newGatewayID() string {
	var b [9]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b[:])
}
