package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksecure/tradedesk/pkg/domain"
	"github.com/blocksecure/tradedesk/pkg/flow"
)

// happyPath drives the machine through a full traversal and returns the
// collected trade.
func happyPath(t *testing.T, m *flow.Machine, usdInput string) domain.TradeRequest {
	t.Helper()

	inputs := []struct {
		step domain.Step
		text string
		next domain.Step
	}{
		{domain.StepName, "Jane Doe", domain.StepEmail},
		{domain.StepEmail, "jane@x.com", domain.StepContact},
		{domain.StepContact, "skip", domain.StepLocation},
		{domain.StepLocation, "India", domain.StepBuySell},
		{domain.StepBuySell, "Buy", domain.StepCrypto},
		{domain.StepCrypto, "USDT", domain.StepFiatCurrency},
		{domain.StepFiatCurrency, "INR", domain.StepAmountRaw},
		{domain.StepAmountRaw, "1000 USDT", domain.StepUSDEquiv},
		{domain.StepUSDEquiv, usdInput, domain.StepPaymentMethod},
		{domain.StepPaymentMethod, "UPI", domain.StepTimeline},
		{domain.StepTimeline, "Immediate", domain.StepKYC},
		{domain.StepKYC, "Yes", domain.StepNotes},
	}

	var trade domain.TradeRequest
	for _, in := range inputs {
		res := m.Transition(in.step, in.text, trade)
		require.Equal(t, flow.Accepted, res.Outcome, "step %s input %q", in.step, in.text)
		require.Equal(t, in.next, res.Next, "step %s", in.step)
		trade = res.Trade
	}

	res := m.Transition(domain.StepNotes, "skip", trade)
	require.Equal(t, flow.Completed, res.Outcome)
	require.Equal(t, domain.StepSubmitted, res.Next)
	return res.Trade
}

func TestMachine_HappyPath(t *testing.T) {
	m := flow.New()
	trade := happyPath(t, m, "1200")

	assert.Equal(t, "Jane Doe", trade.Name)
	assert.Equal(t, "jane@x.com", trade.Email)
	assert.Equal(t, "Not provided", trade.Contact, "skip maps to the fixed sentinel")
	assert.Equal(t, "India", trade.Location)
	assert.Equal(t, "Buy", trade.BuySell)
	assert.Equal(t, "USDT", trade.Crypto)
	assert.Equal(t, "INR", trade.FiatCurrency)
	assert.Equal(t, "1000 USDT", trade.AmountRaw, "amount is stored verbatim, not parsed")
	assert.Equal(t, 1200.0, trade.USDEquiv)
	assert.Equal(t, "UPI", trade.PaymentMethod)
	assert.Equal(t, "Immediate", trade.Timeline)
	assert.Equal(t, "Yes - Ready for KYC", trade.KYCStatus)
	assert.Equal(t, "", trade.Notes, "skip maps to empty notes")
}

func TestMachine_RejectionLeavesStateUnchanged(t *testing.T) {
	m := flow.New()

	cases := []struct {
		step  domain.Step
		input string
	}{
		{domain.StepName, "ab"},
		{domain.StepEmail, "not-an-email"},
		{domain.StepLocation, "   "},
		{domain.StepUSDEquiv, "a lot"},
		{domain.StepKYC, "maybe"},
		{domain.StepNotes, ""},
	}

	for _, tc := range cases {
		t.Run(string(tc.step), func(t *testing.T) {
			trade := domain.TradeRequest{Name: "Jane Doe"}
			res := m.Transition(tc.step, tc.input, trade)

			assert.Equal(t, flow.Rejected, res.Outcome)
			assert.Equal(t, tc.step, res.Next, "rejection must not change the step")
			assert.Equal(t, trade, res.Trade, "rejection must not mutate fields")
			require.Len(t, res.Prompts, 1, "rejection re-prompts")
		})
	}
}

func TestMachine_USDEquivBranch(t *testing.T) {
	m := flow.New()

	t.Run("at or above minimum goes straight to payment", func(t *testing.T) {
		res := m.Transition(domain.StepUSDEquiv, "1500", domain.TradeRequest{})
		require.Equal(t, flow.Accepted, res.Outcome)
		assert.Equal(t, 1500.0, res.Trade.USDEquiv)
		assert.Equal(t, domain.StepPaymentMethod, res.Next)
		require.Len(t, res.Prompts, 1)
		assert.Contains(t, res.Prompts[0].Text, "payment method")
		assert.NotEmpty(t, res.Prompts[0].Options, "normal mode offers payment choices")
	})

	t.Run("currency symbols are stripped before parsing", func(t *testing.T) {
		res := m.Transition(domain.StepUSDEquiv, "$999.50", domain.TradeRequest{})
		require.Equal(t, flow.Accepted, res.Outcome)
		assert.Equal(t, 999.50, res.Trade.USDEquiv)
		assert.Equal(t, domain.StepConfirmMin, res.Next)
		require.Len(t, res.Prompts, 1)
		assert.Equal(t, [][]string{{"Proceed", "Cancel Request"}}, res.Prompts[0].Options)
	})

	t.Run("custom threshold", func(t *testing.T) {
		m := flow.New(flow.WithMinimumUSD(100))
		res := m.Transition(domain.StepUSDEquiv, "150", domain.TradeRequest{})
		assert.Equal(t, domain.StepPaymentMethod, res.Next)
	})
}

func TestMachine_BelowMinimumCancel(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepUSDEquiv, "500", domain.TradeRequest{})
	require.Equal(t, domain.StepConfirmMin, res.Next)

	res = m.Transition(domain.StepConfirmMin, "Cancel Request", res.Trade)
	assert.Equal(t, flow.Cancelled, res.Outcome)
	assert.Equal(t, domain.StepCancelled, res.Next)
	require.Len(t, res.Prompts, 1)
	assert.Contains(t, res.Prompts[0].Text, "cancelled")
}

func TestMachine_BelowMinimumProceed(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepUSDEquiv, "500", domain.TradeRequest{})
	require.Equal(t, domain.StepConfirmMin, res.Next)

	res = m.Transition(domain.StepConfirmMin, "Proceed", res.Trade)
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, domain.StepPaymentMethod, res.Next)
	assert.Empty(t, res.Trade.PaymentMethod, "proceeding is not a payment answer")

	res = m.Transition(domain.StepPaymentMethod, "Bank Transfer", res.Trade)
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, "Bank Transfer", res.Trade.PaymentMethod)
	assert.Equal(t, domain.StepTimeline, res.Next)
}

func TestMachine_ConfirmRejectsOtherInput(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepUSDEquiv, "500", domain.TradeRequest{})
	require.Equal(t, domain.StepConfirmMin, res.Next)

	res = m.Transition(domain.StepConfirmMin, "Bank Transfer", res.Trade)
	assert.Equal(t, flow.Rejected, res.Outcome)
	assert.Equal(t, domain.StepConfirmMin, res.Next)
	require.Len(t, res.Prompts, 1)
	assert.Equal(t, [][]string{{"Proceed", "Cancel Request"}}, res.Prompts[0].Options)
}

func TestMachine_ControlTokensAreOrdinaryTextInNormalMode(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepPaymentMethod, "Proceed", domain.TradeRequest{})
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, "Proceed", res.Trade.PaymentMethod)
	assert.Equal(t, domain.StepTimeline, res.Next)
}

func TestMachine_KYCRecordsLabelledStatus(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepKYC, "no", domain.TradeRequest{})
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, "No - Not ready for KYC", res.Trade.KYCStatus)
	assert.Equal(t, domain.StepNotes, res.Next, "yes and no advance identically")

	res = m.Transition(domain.StepKYC, "YES", domain.TradeRequest{})
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, "Yes - Ready for KYC", res.Trade.KYCStatus)
}

func TestMachine_ContactKeepsProvidedValue(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepContact, "@janedoe", domain.TradeRequest{})
	require.Equal(t, flow.Accepted, res.Outcome)
	assert.Equal(t, "@janedoe", res.Trade.Contact)
}

func TestMachine_NotesKeepsProvidedValue(t *testing.T) {
	m := flow.New()

	res := m.Transition(domain.StepNotes, "call me first", domain.TradeRequest{})
	require.Equal(t, flow.Completed, res.Outcome)
	assert.Equal(t, "call me first", res.Trade.Notes)
}
