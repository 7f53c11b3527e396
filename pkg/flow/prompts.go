package flow

import (
	"fmt"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Keyboard rows offered with choice prompts. Free typing is always allowed;
// the rows are suggestions, not an enumeration.
var (
	buySellRows  = [][]string{{"Buy", "Sell"}}
	cryptoRows   = [][]string{{"USDT", "USDC", "BTC"}, {"ETH", "Other"}}
	fiatRows     = [][]string{{"INR", "AED", "EURO", "USD"}}
	paymentRows  = [][]string{{"Bank Transfer", "UPI"}, {"Cash in Person", "Other"}}
	timelineRows = [][]string{{"Immediate", "Within 1 Hour"}, {"Same Day"}}
	yesNoRows    = [][]string{{"Yes", "No"}}
	confirmRows  = [][]string{{"Proceed", "Cancel Request"}}
)

// Welcome returns the greeting shown on the start signal.
func (m *Machine) Welcome() domain.Prompt {
	return domain.ChoicePrompt(
		"🚀 Welcome to BlockSecure P2P Trade Desk!\n\n"+
			"We handle USDT, USDC, BTC, ETH vs INR / AED / EURO.\n"+
			fmt.Sprintf("Minimum trade size: USD $%.0f. KYC required for first-time users.\n\n", m.minimumUSD)+
			"Press 'Start Trade Request' to begin or /cancel at any time.",
		[]string{"Start Trade Request"},
	)
}

// Question returns the prompt that opens the given step.
func (m *Machine) Question(step domain.Step) domain.Prompt {
	switch step {
	case domain.StepName:
		return domain.TextPrompt("Section A — Basic Contact Info\n\n1) Full Name (must match KYC):")
	case domain.StepEmail:
		return domain.TextPrompt("2) Email address (for transaction confirmation):")
	case domain.StepContact:
		return domain.TextPrompt("3) Telegram / WhatsApp number (optional). Type 'skip' to omit:")
	case domain.StepLocation:
		return domain.TextPrompt("4) Location / Country:")
	case domain.StepBuySell:
		return domain.ChoicePrompt("Section B — Transaction Details\n\n5) Are you buying or selling crypto?", buySellRows...)
	case domain.StepCrypto:
		return domain.ChoicePrompt("6) Which cryptocurrency? (choose or type 'Other')", cryptoRows...)
	case domain.StepFiatCurrency:
		return domain.ChoicePrompt("7) Which fiat currency will you trade against? (INR / AED / EURO / USD)", fiatRows...)
	case domain.StepAmountRaw:
		return domain.TextPrompt("8) Amount in crypto or fiat (please specify clearly, e.g. '1500 USD' or '0.05 BTC')")
	case domain.StepUSDEquiv:
		return domain.TextPrompt(fmt.Sprintf(
			"To enforce the minimum trade size (USD $%.0f), please provide the USD equivalent of this trade.\n"+
				"Enter USD equivalent as a number (e.g., '1500'):", m.minimumUSD))
	case domain.StepPaymentMethod:
		return domain.ChoicePrompt("9) Preferred payment method:", paymentRows...)
	case domain.StepTimeline:
		return domain.ChoicePrompt("10) Expected timeline for payment/settlement:", timelineRows...)
	case domain.StepKYC:
		return domain.ChoicePrompt("Section C — Compliance\n\n11) Are you ready to do KYC with us? (Yes / No)", yesNoRows...)
	case domain.StepNotes:
		return domain.TextPrompt("12) Any special instructions or notes for this trade? (optional)\nType 'skip' to omit.")
	}
	return domain.Prompt{}
}

func (m *Machine) belowMinimumPrompt(usd float64) domain.Prompt {
	return domain.ChoicePrompt(fmt.Sprintf(
		"⚠️ The USD equivalent you entered ($%.2f) is below the minimum trade size of $%.0f.\n"+
			"You can either cancel or confirm that you want to proceed (subject to review).",
		usd, m.minimumUSD), confirmRows...)
}

// rejection hints, fixed per step.
func rejectionPrompt(step domain.Step) domain.Prompt {
	switch step {
	case domain.StepName:
		return domain.TextPrompt("Please enter your full name (at least 3 characters).")
	case domain.StepEmail:
		return domain.TextPrompt("Please enter a valid email (e.g., name@example.com).")
	case domain.StepUSDEquiv:
		return domain.TextPrompt("Please enter a numeric USD equivalent (e.g., 1500).")
	case domain.StepKYC:
		return domain.ChoicePrompt("Please reply 'Yes' or 'No' — Are you ready to do KYC with us?", yesNoRows...)
	}
	return domain.TextPrompt("Please enter a value.")
}
