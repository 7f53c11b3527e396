package tradedesk_test

import (
	"context"
	"fmt"
	"log"

	"github.com/blocksecure/tradedesk"
)

// ExampleNew drives the first questions of the intake flow against the
// embedded in-memory engine. Transports normally do this wiring; embedding
// the engine directly is handy for tests and custom frontends.
func ExampleNew() {
	engine := tradedesk.New()
	ctx := context.Background()

	// The start button text skips the greeting and opens the questionnaire.
	prompts, err := engine.Handle(ctx, "demo", "Start Trade Request")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(prompts[0].Text)

	prompts, err = engine.Handle(ctx, "demo", "Jane Doe")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(prompts[0].Text)
	// Output:
	// Section A — Basic Contact Info
	//
	// 1) Full Name (must match KYC):
	// 2) Email address (for transaction confirmation):
}
