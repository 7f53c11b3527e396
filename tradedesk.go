// Package tradedesk is the BlockSecure P2P trade-desk intake bot: a guided
// questionnaire over chat transports that validates each answer, enforces a
// minimum trade size, and forwards finished requests to the operator desk.
package tradedesk

import (
	"github.com/blocksecure/tradedesk/internal/runtime"
	"github.com/blocksecure/tradedesk/pkg/adapters/memory"
	"github.com/blocksecure/tradedesk/pkg/flow"
	"github.com/blocksecure/tradedesk/pkg/session"
)

// Version is the released version of tradedesk.
const Version = "0.2.0"

// New builds a conversation engine with in-memory sessions and default flow
// parameters. Handy for embedding and for tests; the serve command wires its
// own stores and transports.
func New(opts ...runtime.Option) *runtime.Engine {
	manager := session.NewManager(memory.NewStore())
	return runtime.New(manager, flow.New(), opts...)
}
