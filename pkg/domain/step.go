package domain

// Step identifies a position in the intake questionnaire.
type Step string

const (
	StepName          Step = "name"
	StepEmail         Step = "email"
	StepContact       Step = "contact"
	StepLocation      Step = "location"
	StepBuySell       Step = "buy_sell"
	StepCrypto        Step = "crypto"
	StepFiatCurrency  Step = "fiat_currency"
	StepAmountRaw     Step = "amount_raw"
	StepUSDEquiv      Step = "usd_equiv"
	StepConfirmMin    Step = "confirm_minimum"
	StepPaymentMethod Step = "payment_method"
	StepTimeline      Step = "timeline"
	StepKYC           Step = "kyc_done"
	StepNotes         Step = "notes"

	// Sink steps. A session never persists in either: the engine removes it
	// on the same transition that reaches them.
	StepSubmitted Step = "submitted"
	StepCancelled Step = "cancelled"
)

// Terminal reports whether the step is a sink state.
func (s Step) Terminal() bool {
	return s == StepSubmitted || s == StepCancelled
}

// Order is the fixed traversal order of the questionnaire. StepConfirmMin is
// not part of it; it is only reachable through the below-minimum branch after
// StepUSDEquiv.
var Order = []Step{
	StepName, StepEmail, StepContact, StepLocation,
	StepBuySell, StepCrypto, StepFiatCurrency, StepAmountRaw,
	StepUSDEquiv, StepPaymentMethod, StepTimeline, StepKYC, StepNotes,
}
