package domain

import "time"

// TradeRequest is the fixed-shape record collected by the questionnaire.
// Slots are populated progressively; a slot is guaranteed non-zero once the
// step that writes it has been completed.
type TradeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Contact       string  `json:"contact"`
	Location      string  `json:"location"`
	BuySell       string  `json:"buy_sell"`
	Crypto        string  `json:"crypto"`
	FiatCurrency  string  `json:"fiat_currency"`
	AmountRaw     string  `json:"amount_raw"`
	USDEquiv      float64 `json:"usd_equiv"`
	PaymentMethod string  `json:"payment_method"`
	Timeline      string  `json:"timeline"`
	KYCStatus     string  `json:"kyc_status"`
	Notes         string  `json:"notes"`
}

// Session is the per-user conversation state. It is owned exclusively by the
// session store; callers must not retain references across transitions.
type Session struct {
	UserID         string       `json:"user_id"`
	Step           Step         `json:"step"`
	Trade          TradeRequest `json:"trade"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}

// NewSession creates a fresh session positioned at the first question.
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:         userID,
		Step:           StepName,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Touch refreshes the inactivity clock. Both accepted and rejected input
// count as activity.
func (s *Session) Touch(now time.Time) {
	s.LastActivityAt = now
}

// Expired reports whether the session has been idle longer than timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivityAt) > timeout
}

// Clone returns an independent copy, used by stores to isolate their
// internal state from callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
