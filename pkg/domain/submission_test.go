package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

func TestNewSubmission(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := domain.NewSession("42", now)
	sess.Trade.Name = "Jane Doe"

	sub := domain.NewSubmission(sess, 1000, now)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "42", sub.UserID)
	assert.Equal(t, now, sub.SubmittedAt)
	assert.Equal(t, "Jane Doe", sub.Trade.Name)

	other := domain.NewSubmission(sess, 1000, now)
	assert.NotEqual(t, sub.ID, other.ID, "every submission gets a fresh ID")
}

func TestSubmission_Render(t *testing.T) {
	sub := domain.Submission{
		ID:         "req-1",
		UserID:     "42",
		MinimumUSD: 1000,
		Trade: domain.TradeRequest{
			Name:          "Jane Doe",
			Email:         "jane@x.com",
			Contact:       "Not provided",
			Location:      "India",
			BuySell:       "Buy",
			Crypto:        "USDT",
			FiatCurrency:  "INR",
			AmountRaw:     "1000 USDT",
			USDEquiv:      999.5,
			PaymentMethod: "UPI",
			Timeline:      "Immediate",
			KYCStatus:     "Yes - Ready for KYC",
		},
	}

	out := sub.Render()

	require.Contains(t, out, "🚨 NEW P2P TRADE REQUEST 🚨")
	assert.Contains(t, out, "Section A — Contact Info")
	assert.Contains(t, out, "Name: Jane Doe")
	assert.Contains(t, out, "Contact: Not provided")
	assert.Contains(t, out, "Amount: 1000 USDT")
	assert.Contains(t, out, "USD Equivalent: $999.50")
	assert.Contains(t, out, "KYC Status: Yes - Ready for KYC")
	assert.Contains(t, out, "Request ID: req-1")
	assert.Contains(t, out, "Minimum trade size: USD $1000")
}
