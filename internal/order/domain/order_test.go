package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewOrderComputesLineTotals(t *testing.T) {
	o, lines, err := NewOrder("ORD-1", "TRK-AAAAAAAA", 1, 200, MethodCash, nil, Customer{Name: "Ram"}, []OrderItem{
		{ProductID: 1, ProductName: "Thermometer", Quantity: 2, UnitPrice: 100},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, 200.0, o.TotalAmount)
	assert.Equal(t, 200.0, lines[0].TotalPrice)
	assert.Equal(t, StatusProcessing, o.Status)
	assert.Nil(t, o.TransactionID)
}

func TestNewOrderDefaultsQuantityToOne(t *testing.T) {
	_, lines, err := NewOrder("ORD-1", "TRK-AAAAAAAA", 1, 59.99, MethodCard, nil, Customer{}, []OrderItem{
		{ProductID: 7, ProductName: "Bandage", UnitPrice: 59.99},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 59.99, lines[0].TotalPrice)
}

func TestNewOrderRoundsLineTotals(t *testing.T) {
	_, lines, err := NewOrder("ORD-1", "TRK-AAAAAAAA", 1, 0, MethodCash, nil, Customer{}, []OrderItem{
		{ProductID: 3, ProductName: "Gauze", Quantity: 3, UnitPrice: 33.335},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.01, lines[0].TotalPrice)
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, _, err := NewOrder("ORD-1", "TRK-AAAAAAAA", 1, 0, MethodCash, nil, Customer{}, nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestNewOrderTransactionIDRules(t *testing.T) {
	tests := []struct {
		name    string
		method  PaymentMethod
		txnID   *string
		wantErr error
		wantTxn bool
	}{
		{"upi with txn id", MethodUPI, strPtr("UPI123"), nil, true},
		{"upi without txn id", MethodUPI, nil, ErrMissingTransactionID, false},
		{"upi with empty txn id", MethodUPI, strPtr(""), ErrMissingTransactionID, false},
		{"razorpay drops txn id", MethodRazorpay, strPtr("rzp999"), nil, false},
		{"cash drops txn id", MethodCash, strPtr("whatever"), nil, false},
	}

	items := []OrderItem{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 10}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _, err := NewOrder("ORD-1", "TRK-AAAAAAAA", 1, 10, tt.method, tt.txnID, Customer{}, items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantTxn {
				require.NotNil(t, o.TransactionID)
				assert.Equal(t, *tt.txnID, *o.TransactionID)
			} else {
				assert.Nil(t, o.TransactionID)
			}
		})
	}
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, StatusPaid, PaymentStatusFor(MethodUPI))
	assert.Equal(t, StatusPaid, PaymentStatusFor(MethodRazorpay))
	assert.Equal(t, StatusProcessing, PaymentStatusFor(MethodCash))
	assert.Equal(t, StatusProcessing, PaymentStatusFor(MethodCard))
}
