package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

func newProduct(t *testing.T, id, sku string, stock int64) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(id, "Producto "+id, sku, decimal.Zero, decimal.NewFromInt(stock), decimal.Zero)
	require.NoError(t, err)
	return p
}

func TestRun_RollbackDescartaElClon(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, newProduct(t, "p1", "A", 5)))

	boom := errors.New("boom")
	err := s.Run(ctx, func(p repository.ProductRepository, _ repository.OperationRepository, _ repository.StockMoveRepository) error {
		require.NoError(t, p.UpdateStock(ctx, "p1", decimal.NewFromInt(99)))
		got, err := p.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "99", got.CurrentStock.String())
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "5", got.CurrentStock.String())
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, newProduct(t, "p1", "A", 5)))

	err := s.Run(ctx, func(p repository.ProductRepository, _ repository.OperationRepository, m repository.StockMoveRepository) error {
		if err := p.UpdateStock(ctx, "p1", decimal.NewFromInt(7)); err != nil {
			return err
		}
		mv, err := entity.NewStockMove("m1", "p1", decimal.NewFromInt(2), "A", "B", "ref", entity.StatusDone, time.Now())
		if err != nil {
			return err
		}
		return m.Create(ctx, mv)
	})
	require.NoError(t, err)

	got, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, "7", got.CurrentStock.String())
	moves, _ := s.Moves().List(ctx, 10, 0)
	require.Len(t, moves, 1)
	assert.Equal(t, "Producto p1", moves[0].ProductName)
}

func TestProducts_SKUDuplicadoYOrdenDeBloqueo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, newProduct(t, "b", "SKU-B", 1)))
	require.NoError(t, s.Products().Create(ctx, newProduct(t, "a", "SKU-A", 1)))
	assert.ErrorIs(t, s.Products().Create(ctx, newProduct(t, "c", "SKU-A", 1)), domain.ErrDuplicate)

	locked, err := s.Products().GetManyForUpdate(ctx, []string{"b", "zz", "a"})
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "a", locked[0].ID)
	assert.Equal(t, "b", locked[1].ID)
}

func TestOperations_CopiasAisladas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	op, err := entity.NewOperation("op1", entity.OperationIncoming, entity.StatusReady, "", "A", "B", time.Now())
	require.NoError(t, err)
	require.NoError(t, op.AddItem("i1", "p1", decimal.NewFromInt(3), decimal.Zero))
	require.NoError(t, s.Operations().Create(ctx, op))

	got, err := s.Operations().GetByID(ctx, "op1")
	require.NoError(t, err)
	got.Items[0].DoneQty = decimal.NewFromInt(100)
	got.Status = entity.StatusCanceled

	again, _ := s.Operations().GetByID(ctx, "op1")
	assert.True(t, again.Items[0].DoneQty.IsZero())
	assert.Equal(t, entity.StatusReady, again.Status)

	n, err := s.Operations().CountByTypeAndStatus(ctx, entity.OperationIncoming, entity.StatusWaiting, entity.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing, err := s.Operations().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotency_ReservaCompletaYLibera(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, claimed, err := s.Claim(ctx, "k", "t1")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, id)

	id, claimed, err = s.Claim(ctx, "k", "t2")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Empty(t, id, "reservada y sin ID todavía")

	assert.Error(t, s.Complete(ctx, "k", "t2", "op-2"))
	require.NoError(t, s.Complete(ctx, "k", "t1", "op-1"))
	require.NoError(t, s.Release(ctx, "k", "t1"))

	id, claimed, err = s.Claim(ctx, "k", "t3")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "op-1", id)

	_, claimed, _ = s.Claim(ctx, "otra", "t1")
	require.True(t, claimed)
	require.NoError(t, s.Release(ctx, "otra", "t1"))
	_, claimed, _ = s.Claim(ctx, "otra", "t4")
	assert.True(t, claimed)
}
