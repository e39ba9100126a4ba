package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/infrastructure/memory"
	"github.com/jhoicas/stockops/pkg/logger"
)

func newQueries(store *memory.Store) *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(store.Products(), store.Operations(), store.Moves())
}

func TestQueries_ListOperationsFiltraYPagina(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10)
	seedOperation(t, store, "in1", entity.OperationIncoming, entity.StatusReady, "A", "B", line{"p1", 1, 0})
	seedOperation(t, store, "in2", entity.OperationIncoming, entity.StatusDraft, "A", "B", line{"p1", 1, 0})
	seedOperation(t, store, "out1", entity.OperationOutgoing, entity.StatusReady, "B", "C", line{"p1", 1, 0})
	q := newQueries(store)
	ctx := context.Background()

	all, err := q.ListOperations(ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 20, all.Page.Limit)
	assert.Equal(t, "out1", all.Items[0].ID)
	assert.Empty(t, all.Items[0].Items)

	incoming, err := q.ListOperations(ctx, "incoming", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, incoming.Items, 2)

	ready, err := q.ListOperations(ctx, "INCOMING", "READY", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, ready.Items, 1)
	assert.Equal(t, "in1", ready.Items[0].ID)

	page, err := q.ListOperations(ctx, "", "", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "in2", page.Items[0].ID)

	unknown, err := q.ListOperations(ctx, "BOGUS", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, unknown.Items, 3)
}

func TestQueries_GetOperation(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10)
	seedOperation(t, store, "op1", entity.OperationIncoming, entity.StatusReady, "A", "B", line{"p1", 2, 0}, line{"p1", 3, 1})
	q := newQueries(store)

	out, err := q.GetOperation(context.Background(), "op1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "op1-a", out.Items[0].ID)
	assert.True(t, out.Items[1].DoneQty.Equal(d(1)))

	_, err = q.GetOperation(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrOperationNotFound)
}

func TestQueries_ListMovesYStockByLocation(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 0)
	seedOperation(t, store, "in1", entity.OperationIncoming, entity.StatusReady, "Vendors", "WH/A", line{"p1", 4, 0})
	seedOperation(t, store, "in2", entity.OperationIncoming, entity.StatusReady, "Vendors", "WH/B", line{"p1", 6, 0})
	seedOperation(t, store, "in3", entity.OperationIncoming, entity.StatusReady, "Vendors", "WH/A", line{"p1", 1, 0})
	validate := inventory.NewValidateOperationUseCase(store, logger.Nop())
	for _, id := range []string{"in1", "in2", "in3"} {
		require.NoError(t, validate.Execute(context.Background(), id))
	}
	q := newQueries(store)

	moves, err := q.ListMoves(context.Background(), dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, moves.Items, 2)
	assert.Equal(t, "REF-in3", moves.Items[0].ReferenceDoc)
	assert.Equal(t, "Producto p1", moves.Items[0].ProductName)

	rows, err := q.StockByLocation(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "WH/A", rows[0].Location)
	assert.True(t, rows[0].Quantity.Equal(d(5)))
	assert.Equal(t, "WH/B", rows[1].Location)
	assert.True(t, rows[1].Quantity.Equal(d(6)))

	_, err = q.StockByLocation(context.Background(), "zz")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
