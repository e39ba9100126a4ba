package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain/entity"
)

func TestGenerateOperationVoucher(t *testing.T) {
	op := &entity.Operation{
		ID:                  "0b7c6c3e-2a51-4c55-9a3b-5e1f7d1f0a01",
		Reference:           "WH/IN/0001",
		Type:                entity.OperationIncoming,
		Partner:             "Proveedor Andino",
		ScheduleDate:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		SourceLocation:      "Vendors",
		DestinationLocation: "WH/Stock",
		Status:              entity.StatusDone,
	}
	lines := []inventory.VoucherLine{
		{SKU: "A-1", ProductName: "Tornillo", UnitMeasure: "UND", Requested: decimal.NewFromInt(10), Done: decimal.NewFromInt(8)},
		{SKU: "B-2", ProductName: "Tuerca", UnitMeasure: "UND", Requested: decimal.RequireFromString("2.5"), Done: decimal.RequireFromString("2.5")},
	}

	out, err := NewMarotoVoucherGenerator("StockOps").GenerateOperationVoucher(context.Background(), op, lines)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "10.5", formatQty(decimal.RequireFromString("10.5000")))
	assert.Equal(t, "3", formatQty(decimal.RequireFromString("3.0000")))
}
