// Package flow implements the intake questionnaire as a pure state machine.
// Transition is a value-returning function of (step, input, trade); it never
// touches a store or a transport, which keeps the whole flow unit-testable.
package flow
