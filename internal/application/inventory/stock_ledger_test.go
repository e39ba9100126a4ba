package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/internal/infrastructure/memory"
)

func TestStockLedger_ApplyDelta(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 5)

	err := store.Run(context.Background(), func(p repository.ProductRepository, _ repository.OperationRepository, _ repository.StockMoveRepository) error {
		ledger := inventory.NewStockLedger(p)

		next, err := ledger.ApplyDelta(context.Background(), "p1", d(-2))
		require.NoError(t, err)
		assert.True(t, next.Equal(d(3)))

		next, err = ledger.ApplyDelta(context.Background(), "p1", decimal.RequireFromString("0.5"))
		require.NoError(t, err)
		assert.Equal(t, "3.5", next.String())

		_, err = ledger.ApplyDelta(context.Background(), "p1", d(-4))
		var neg *domain.NegativeStockError
		require.True(t, errors.As(err, &neg))
		assert.Equal(t, "p1", neg.ProductID)
		assert.ErrorIs(t, err, domain.ErrNegativeResultingStock)
		assert.Equal(t, "Resulting stock cannot be negative", domain.Reason(err))

		_, err = ledger.ApplyDelta(context.Background(), "zz", d(1))
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "3.5", stockOf(t, store, "p1").String())
}
