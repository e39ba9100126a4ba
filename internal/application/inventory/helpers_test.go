package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/internal/infrastructure/memory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedProduct(t *testing.T, store *memory.Store, id string, stock int64) {
	t.Helper()
	p, err := entity.NewProduct(id, "Producto "+id, "SKU-"+id, decimal.Zero, d(stock), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, store.Products().Create(context.Background(), p))
}

type line struct {
	productID string
	qty, done int64
}

func seedOperation(t *testing.T, store *memory.Store, id string, typ entity.OperationType, status entity.OperationStatus, src, dst string, lines ...line) {
	t.Helper()
	op, err := entity.NewOperation(id, typ, status, "Contraparte", src, dst, time.Now())
	require.NoError(t, err)
	op.Reference = "REF-" + id
	for i, l := range lines {
		require.NoError(t, op.AddItem(id+"-"+string(rune('a'+i)), l.productID, d(l.qty), d(l.done)))
	}
	require.NoError(t, store.Operations().Create(context.Background(), op))
}

func stockOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func statusOf(t *testing.T, store *memory.Store, id string) entity.OperationStatus {
	t.Helper()
	op, err := store.Operations().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, op)
	return op.Status
}

func movesOf(t *testing.T, store *memory.Store) []*entity.StockMove {
	t.Helper()
	moves, err := store.Moves().List(context.Background(), 1000, 0)
	require.NoError(t, err)
	return moves
}

// failingRunner delega en el Store pero hace fallar la inserción de movimientos tras n llamadas.
type failingRunner struct {
	store *memory.Store
	after int
	err   error
}

func (r *failingRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	moveRepo repository.StockMoveRepository,
) error) error {
	return r.store.Run(ctx, func(p repository.ProductRepository, o repository.OperationRepository, m repository.StockMoveRepository) error {
		return fn(p, o, &failingMoves{StockMoveRepository: m, after: r.after, err: r.err})
	})
}

type failingMoves struct {
	repository.StockMoveRepository
	after int
	calls int
	err   error
}

func (m *failingMoves) Create(ctx context.Context, move *entity.StockMove) error {
	m.calls++
	if m.calls > m.after {
		return m.err
	}
	return m.StockMoveRepository.Create(ctx, move)
}

var errConnReset = errors.New("conn reset by peer")
