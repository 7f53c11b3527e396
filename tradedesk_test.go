package tradedesk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksecure/tradedesk"
)

func TestNew(t *testing.T) {
	engine := tradedesk.New()

	prompts, err := engine.Handle(context.Background(), "42", "/start")
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0].Text, "Welcome")

	ids, err := engine.ActiveSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ids)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, tradedesk.Version)
}
