package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/pkg/config"
	"github.com/jhoicas/stockops/pkg/logger"
)

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "stockops", Store: "memory"}}

	c, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.NotNil(t, c.ValidateOperation)
	assert.NotNil(t, c.CreateAdjustment)
	assert.Same(t, c.TxRunner, c.Idempotency)
	assert.Empty(t, c.Checks)

	deps := c.RouterDeps("stockops")
	assert.NotNil(t, deps.Health)
	assert.NotNil(t, deps.Dashboard)
}
