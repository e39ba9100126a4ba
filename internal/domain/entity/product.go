package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
)

// Product representa un producto del catálogo con su stock actual (modelo de una sola ubicación).
// CurrentStock solo lo modifica la primitiva de mutación de stock (StockLedger.ApplyDelta).
type Product struct {
	ID            string
	Name          string
	SKU           string // clave humana, única
	Category      string
	UnitMeasure   string
	MinStockLevel decimal.Decimal
	CurrentStock  decimal.Decimal
	UnitCost      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct valida los campos obligatorios y los mínimos (>= 0) antes de persistir.
func NewProduct(id, name, sku string, minStock, currentStock, unitCost decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	if id == "" || name == "" || sku == "" {
		return nil, domain.ErrInvalidInput
	}
	if minStock.IsNegative() || currentStock.IsNegative() || unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	return &Product{
		ID:            id,
		Name:          name,
		SKU:           sku,
		MinStockLevel: minStock,
		CurrentStock:  currentStock,
		UnitCost:      unitCost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockLevel)
}
