package flow

import (
	"strings"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// DefaultMinimumUSD is the trade-size threshold enforced after the USD
// equivalent question.
const DefaultMinimumUSD = 1000.0

// Outcome classifies the result of a transition.
type Outcome int

const (
	// Rejected means the input failed the step's validation. Step and trade
	// are unchanged; the prompts re-ask the same question.
	Rejected Outcome = iota
	// Accepted means the input was recorded and the flow advanced.
	Accepted
	// Completed means the final answer was recorded; the caller must build
	// the submission and terminate the session.
	Completed
	// Cancelled means the user abandoned the request from the below-minimum
	// confirmation; the caller must discard the session.
	Cancelled
)

// Result is the value returned by Transition. Trade carries the (possibly
// updated) field set; it equals the input trade when Outcome is Rejected.
type Result struct {
	Outcome Outcome
	Next    domain.Step
	Trade   domain.TradeRequest
	Prompts []domain.Prompt
}

// Machine is the transition table of the questionnaire. It is stateless and
// safe for concurrent use.
type Machine struct {
	minimumUSD float64
}

// Option configures the Machine.
type Option func(*Machine)

// WithMinimumUSD overrides the trade-size threshold.
func WithMinimumUSD(v float64) Option {
	return func(m *Machine) {
		m.minimumUSD = v
	}
}

// New creates a questionnaire machine.
func New(opts ...Option) *Machine {
	m := &Machine{minimumUSD: DefaultMinimumUSD}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MinimumUSD returns the configured threshold.
func (m *Machine) MinimumUSD() float64 {
	return m.minimumUSD
}

// Transition runs one step of the questionnaire. Input is expected trimmed;
// blank input never validates. The returned Result fully describes the
// effects: the caller applies Trade/Next to the session and sends Prompts.
func (m *Machine) Transition(step domain.Step, input string, trade domain.TradeRequest) Result {
	input = strings.TrimSpace(input)

	switch step {
	case domain.StepName:
		if !validName(input) {
			return m.reject(step, trade)
		}
		trade.Name = input
		return m.accept(domain.StepEmail, trade)

	case domain.StepEmail:
		if !validEmail(input) {
			return m.reject(step, trade)
		}
		trade.Email = input
		return m.accept(domain.StepContact, trade)

	case domain.StepContact:
		if input == "" {
			return m.reject(step, trade)
		}
		if isSkip(input) {
			trade.Contact = "Not provided"
		} else {
			trade.Contact = input
		}
		return m.accept(domain.StepLocation, trade)

	case domain.StepLocation:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.Location = input
		return m.accept(domain.StepBuySell, trade)

	case domain.StepBuySell:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.BuySell = input
		return m.accept(domain.StepCrypto, trade)

	case domain.StepCrypto:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.Crypto = input
		return m.accept(domain.StepFiatCurrency, trade)

	case domain.StepFiatCurrency:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.FiatCurrency = input
		return m.accept(domain.StepAmountRaw, trade)

	case domain.StepAmountRaw:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.AmountRaw = input
		return m.accept(domain.StepUSDEquiv, trade)

	case domain.StepUSDEquiv:
		val, ok := parseUSD(input)
		if !ok {
			return m.reject(step, trade)
		}
		trade.USDEquiv = val
		if val < m.minimumUSD {
			return Result{
				Outcome: Accepted,
				Next:    domain.StepConfirmMin,
				Trade:   trade,
				Prompts: []domain.Prompt{m.belowMinimumPrompt(val)},
			}
		}
		return m.accept(domain.StepPaymentMethod, trade)

	case domain.StepConfirmMin:
		return m.transitionConfirm(input, trade)

	case domain.StepPaymentMethod:
		if input == "" {
			return m.reject(step, trade)
		}
		// Control tokens are only special inside the confirmation step;
		// here they are an ordinary payment-method answer.
		trade.PaymentMethod = input
		return m.accept(domain.StepTimeline, trade)

	case domain.StepTimeline:
		if input == "" {
			return m.reject(step, trade)
		}
		trade.Timeline = input
		return m.accept(domain.StepKYC, trade)

	case domain.StepKYC:
		yes, ok := parseYesNo(input)
		if !ok {
			return m.reject(step, trade)
		}
		if yes {
			trade.KYCStatus = "Yes - Ready for KYC"
		} else {
			trade.KYCStatus = "No - Not ready for KYC"
		}
		return m.accept(domain.StepNotes, trade)

	case domain.StepNotes:
		if input == "" {
			return m.reject(step, trade)
		}
		if isSkip(input) {
			trade.Notes = ""
		} else {
			trade.Notes = input
		}
		return Result{
			Outcome: Completed,
			Next:    domain.StepSubmitted,
			Trade:   trade,
		}
	}

	// Unknown or terminal step: nothing to do. The engine removes terminal
	// sessions before further input can reach them.
	return Result{Outcome: Rejected, Next: step, Trade: trade}
}

// transitionConfirm handles the below-minimum sub-step: only the two control
// tokens are accepted.
func (m *Machine) transitionConfirm(input string, trade domain.TradeRequest) Result {
	switch strings.ToLower(input) {
	case "proceed":
		return Result{
			Outcome: Accepted,
			Next:    domain.StepPaymentMethod,
			Trade:   trade,
			Prompts: []domain.Prompt{
				domain.ChoicePrompt(
					"Understood — proceeding despite below-minimum amount. Please select preferred payment method:",
					paymentRows...),
			},
		}
	case "cancel", "cancel request":
		return Result{
			Outcome: Cancelled,
			Next:    domain.StepCancelled,
			Trade:   trade,
			Prompts: []domain.Prompt{
				domain.TextPrompt("Request cancelled due to below-minimum amount. You can start a new request with /start."),
			},
		}
	}
	return Result{
		Outcome: Rejected,
		Next:    domain.StepConfirmMin,
		Trade:   trade,
		Prompts: []domain.Prompt{m.belowMinimumPrompt(trade.USDEquiv)},
	}
}

func (m *Machine) accept(next domain.Step, trade domain.TradeRequest) Result {
	return Result{
		Outcome: Accepted,
		Next:    next,
		Trade:   trade,
		Prompts: []domain.Prompt{m.Question(next)},
	}
}

func (m *Machine) reject(step domain.Step, trade domain.TradeRequest) Result {
	return Result{
		Outcome: Rejected,
		Next:    step,
		Trade:   trade,
		Prompts: []domain.Prompt{rejectionPrompt(step)},
	}
}
