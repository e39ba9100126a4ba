package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/inventory"
)

func readyOp(typ entity.OperationType) *entity.Operation {
	return &entity.Operation{
		ID:                  "op-1",
		Type:                typ,
		Status:              entity.StatusReady,
		SourceLocation:      "WH/Stock",
		DestinationLocation: "WH/Stock",
	}
}

func item(id, productID string, qty, done int64) entity.OperationItem {
	return entity.OperationItem{ID: id, ProductID: productID, Qty: d(qty), DoneQty: d(done)}
}

func TestValidate_Rechazos(t *testing.T) {
	stock := map[string]decimal.Decimal{"p1": d(5)}

	draft := readyOp(entity.OperationIncoming)
	draft.Status = entity.StatusDraft
	done := readyOp(entity.OperationIncoming)
	done.Status = entity.StatusDone
	canceled := readyOp(entity.OperationIncoming)
	canceled.Status = entity.StatusCanceled

	cases := []struct {
		name  string
		op    *entity.Operation
		items []entity.OperationItem
		want  error
	}{
		{"operación inexistente", nil, nil, domain.ErrOperationNotFound},
		{"draft", draft, []entity.OperationItem{item("i1", "p1", 1, 0)}, domain.ErrOperationNotReady},
		{"done", done, []entity.OperationItem{item("i1", "p1", 1, 0)}, domain.ErrOperationNotReady},
		{"cancelada", canceled, []entity.OperationItem{item("i1", "p1", 1, 0)}, domain.ErrOperationNotReady},
		{"sin items", readyOp(entity.OperationIncoming), nil, domain.ErrNoItems},
		{"qty negativa", readyOp(entity.OperationIncoming), []entity.OperationItem{item("i1", "p1", -1, 0)}, domain.ErrNegativeQuantity},
		{"qty negativa en segunda línea", readyOp(entity.OperationOutgoing), []entity.OperationItem{item("i1", "p1", 1, 0), item("i2", "p1", -2, 0)}, domain.ErrNegativeQuantity},
		{"done_qty negativa", readyOp(entity.OperationIncoming), []entity.OperationItem{item("i1", "p1", 5, -1)}, domain.ErrNegativeQuantity},
		{"stock insuficiente", readyOp(entity.OperationOutgoing), []entity.OperationItem{item("i1", "p1", 10, 0)}, domain.ErrInsufficientStock},
		{"producto sin stock registrado", readyOp(entity.OperationOutgoing), []entity.OperationItem{item("i1", "px", 1, 0)}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := inventory.Validate(tc.op, tc.items, stock)
			assert.Nil(t, plan)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.want.Error(), domain.Reason(err))
		})
	}
}

func TestValidate_OrdenDeComprobaciones(t *testing.T) {
	// Una operación DRAFT con cantidades negativas informa primero el estado.
	op := readyOp(entity.OperationOutgoing)
	op.Status = entity.StatusDraft
	_, err := inventory.Validate(op, []entity.OperationItem{item("i1", "p1", -1, 0)}, nil)
	require.ErrorIs(t, err, domain.ErrOperationNotReady)

	// Cantidad negativa se detecta antes que stock insuficiente.
	op = readyOp(entity.OperationOutgoing)
	_, err = inventory.Validate(op, []entity.OperationItem{item("i1", "p1", 100, 0), item("i2", "p1", -1, 0)}, map[string]decimal.Decimal{"p1": d(1)})
	require.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestValidate_IncomingSuma(t *testing.T) {
	plan, err := inventory.Validate(readyOp(entity.OperationIncoming),
		[]entity.OperationItem{item("i1", "p1", 10, 0)},
		map[string]decimal.Decimal{"p1": d(5)})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 1)
	assert.True(t, d(10).Equal(plan.Lines[0].Quantity))
	assert.True(t, d(10).Equal(plan.Deltas["p1"]))
	assert.True(t, d(15).Equal(plan.Resulting["p1"]))
}

func TestValidate_OutgoingUsaDoneQty(t *testing.T) {
	plan, err := inventory.Validate(readyOp(entity.OperationOutgoing),
		[]entity.OperationItem{item("i1", "p1", 10, 4)},
		map[string]decimal.Decimal{"p1": d(5)})
	require.NoError(t, err)
	assert.True(t, d(4).Equal(plan.Lines[0].Quantity))
	assert.True(t, d(1).Equal(plan.Resulting["p1"]))
}

// Dos líneas del mismo producto, cada una igual al stock total: cada una pasa contra la
// instantánea pero la segunda dejaría el saldo acumulado en negativo.
func TestValidate_SaldoAcumuladoEntreLineas(t *testing.T) {
	_, err := inventory.Validate(readyOp(entity.OperationOutgoing),
		[]entity.OperationItem{item("i1", "p1", 10, 0), item("i2", "p1", 10, 0)},
		map[string]decimal.Decimal{"p1": d(10)})
	require.ErrorIs(t, err, domain.ErrNegativeResultingStock)
	assert.Equal(t, "Resulting stock cannot be negative", domain.Reason(err))
}

func TestValidate_AdjustmentConUbicacionDistintaResta(t *testing.T) {
	op := readyOp(entity.OperationAdjustment)
	op.DestinationLocation = "Scrap"

	_, err := inventory.Validate(op, []entity.OperationItem{item("i1", "p1", 6, 0)}, map[string]decimal.Decimal{"p1": d(5)})
	require.ErrorIs(t, err, domain.ErrNegativeResultingStock)

	plan, err := inventory.Validate(op, []entity.OperationItem{item("i1", "p1", 3, 0)}, map[string]decimal.Decimal{"p1": d(5)})
	require.NoError(t, err)
	assert.True(t, d(2).Equal(plan.Resulting["p1"]))
}

func TestValidate_InternalNoCambiaStock(t *testing.T) {
	op := readyOp(entity.OperationInternal)
	op.DestinationLocation = "WH/Shelf-2"
	plan, err := inventory.Validate(op, []entity.OperationItem{item("i1", "p1", 50, 0)}, map[string]decimal.Decimal{"p1": d(5)})
	require.NoError(t, err)
	assert.True(t, plan.Deltas["p1"].IsZero())
	assert.True(t, d(5).Equal(plan.Resulting["p1"]))
	assert.True(t, d(50).Equal(plan.Lines[0].Quantity))
}

func TestValidate_DeltasAcumuladosPorProducto(t *testing.T) {
	plan, err := inventory.Validate(readyOp(entity.OperationIncoming),
		[]entity.OperationItem{item("i1", "p1", 2, 0), item("i2", "p2", 3, 0), item("i3", "p1", 4, 0)},
		map[string]decimal.Decimal{"p1": d(1)})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 3)
	assert.Equal(t, []string{"i1", "i2", "i3"}, []string{plan.Lines[0].ItemID, plan.Lines[1].ItemID, plan.Lines[2].ItemID})
	assert.True(t, d(6).Equal(plan.Deltas["p1"]))
	assert.True(t, d(7).Equal(plan.Resulting["p1"]))
	assert.True(t, d(3).Equal(plan.Resulting["p2"]))
}
