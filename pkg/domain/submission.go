package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Submission is the finished intake record handed to the operator channel.
type Submission struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	SubmittedAt time.Time    `json:"submitted_at"`
	MinimumUSD  float64      `json:"minimum_usd"`
	Trade       TradeRequest `json:"trade"`
}

// NewSubmission assembles the terminal record for a completed session.
func NewSubmission(s *Session, minimumUSD float64, now time.Time) Submission {
	return Submission{
		ID:          uuid.NewString(),
		UserID:      s.UserID,
		SubmittedAt: now,
		MinimumUSD:  minimumUSD,
		Trade:       s.Trade,
	}
}

// Render formats the submission for the operator destination.
func (s Submission) Render() string {
	t := s.Trade
	return fmt.Sprintf(
		"🚨 NEW P2P TRADE REQUEST 🚨\n\n"+
			"Section A — Contact Info\n"+
			"Name: %s\nEmail: %s\nContact: %s\nLocation: %s\n\n"+
			"Section B — Transaction Details\n"+
			"Buy/Sell: %s\nCrypto: %s\nAgainst: %s\n"+
			"Amount: %s\nUSD Equivalent: $%.2f\nPayment Method: %s\n"+
			"Timeline: %s\n\n"+
			"Section C — Compliance\n"+
			"KYC Status: %s\n\n"+
			"Notes: %s\n\n"+
			"Request ID: %s\n"+
			"⚠️ Minimum trade size: USD $%.0f",
		t.Name, t.Email, t.Contact, t.Location,
		t.BuySell, t.Crypto, t.FiatCurrency,
		t.AmountRaw, t.USDEquiv, t.PaymentMethod,
		t.Timeline,
		t.KYCStatus,
		t.Notes,
		s.ID,
		s.MinimumUSD,
	)
}
