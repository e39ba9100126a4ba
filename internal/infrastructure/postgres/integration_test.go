//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/pkg/config"
	"github.com/jhoicas/stockops/pkg/logger"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("stockops_test"),
		tcPostgres.WithUsername("stockops"),
		tcPostgres.WithPassword("stockops"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := Migrate(ctx, pool)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	again, err := Migrate(ctx, pool)
	require.NoError(t, err)
	require.Empty(t, again)
	return pool
}

func seed(t *testing.T, pool *pgxpool.Pool, productID string, stock int64, ops ...*entity.Operation) {
	t.Helper()
	ctx := context.Background()
	p, err := entity.NewProduct(productID, "Producto "+productID, "SKU-"+productID, decimal.Zero, decimal.NewFromInt(stock), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, NewProductRepository(pool).Create(ctx, p))
	for _, op := range ops {
		require.NoError(t, NewOperationRepository(pool).Create(ctx, op))
	}
}

func outgoing(t *testing.T, id, productID string, qty int64) *entity.Operation {
	t.Helper()
	op, err := entity.NewOperation(id, entity.OperationOutgoing, entity.StatusReady, "Cliente", "WH/Stock", "Customers", time.Now())
	require.NoError(t, err)
	op.Reference = "REF-" + id
	require.NoError(t, op.AddItem(id+"-1", productID, decimal.NewFromInt(qty), decimal.Zero))
	return op
}

func TestIntegration_ValidateAndAdjust(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seed(t, pool, "p1", 10, outgoing(t, "op1", "p1", 4))

	runner := NewTxRunner(pool, 2*time.Second, 5*time.Second)
	validate := inventory.NewValidateOperationUseCase(runner, logger.Nop())

	require.NoError(t, validate.Execute(ctx, "op1"))
	err := validate.Execute(ctx, "op1")
	assert.ErrorIs(t, err, domain.ErrOperationNotReady)

	p, err := NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(6)))

	op, err := NewOperationRepository(pool).GetByID(ctx, "op1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, op.Status)
	assert.True(t, op.Items[0].DoneQty.Equal(decimal.NewFromInt(4)))

	adjust := inventory.NewCreateAdjustmentUseCase(runner, nil, logger.Nop())
	id, err := adjust.CreateAdjustment(ctx, inventory.AdjustmentInput{ProductID: "p1", Location: "WH/Stock", CountedQty: decimal.NewFromInt(2)})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	p, err = NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(2)))

	moves, err := NewStockMoveRepository(pool).List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "Adjustment for Producto p1", moves[0].ReferenceDoc)

	byLoc, err := NewStockMoveRepository(pool).SumByDestination(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byLoc, 2)
	assert.Equal(t, "Customers", byLoc[0].Location)

	n, err := NewOperationRepository(pool).CountByTypeAndStatus(ctx, entity.OperationAdjustment, entity.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIntegration_ConcurrentValidationsNeverOversell(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	const n = 8
	ops := make([]*entity.Operation, 0, n)
	for i := 0; i < n; i++ {
		ops = append(ops, outgoing(t, fmt.Sprintf("out%02d", i), "p1", 1))
	}
	seed(t, pool, "p1", 3, ops...)

	validate := inventory.NewValidateOperationUseCase(NewTxRunner(pool, 5*time.Second, 10*time.Second), logger.Nop())

	var ok atomic.Int32
	var g errgroup.Group
	for _, op := range ops {
		id := op.ID
		g.Go(func() error {
			err := validate.Execute(ctx, id)
			switch {
			case err == nil:
				ok.Add(1)
				return nil
			case errors.Is(err, domain.ErrInvariantViolation):
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 3, ok.Load())
	p, err := NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.IsZero())
}

func TestIntegration_LockTimeoutIsTransient(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seed(t, pool, "p1", 5, outgoing(t, "op1", "p1", 1))

	holder, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()
	_, err = holder.Exec(ctx, `SELECT id FROM operations WHERE id = 'op1' FOR UPDATE`)
	require.NoError(t, err)

	validate := inventory.NewValidateOperationUseCase(NewTxRunner(pool, 200*time.Millisecond, 0), logger.Nop())
	err = validate.Execute(ctx, "op1")
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, "Temporary storage failure, retry later", domain.Reason(err))
}
