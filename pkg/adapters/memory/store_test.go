package memory_test

import (
	"testing"

	"github.com/blocksecure/tradedesk/pkg/adapters/memory"
	"github.com/blocksecure/tradedesk/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}
