package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

// StockLedger es la primitiva de mutación de stock: el único código que escribe current_stock.
// Debe construirse con el ProductRepository de la transacción en curso.
type StockLedger struct {
	products repository.ProductRepository
}

// NewStockLedger construye la primitiva sobre el repositorio de la tx.
func NewStockLedger(products repository.ProductRepository) *StockLedger {
	return &StockLedger{products: products}
}

// ApplyDelta bloquea la fila del producto, suma delta y persiste el nuevo stock.
// Devuelve *domain.NegativeStockError si el resultado sería negativo (sin escribir nada).
// Cada llamada relee la fila, así que varios deltas encadenados sobre el mismo producto
// dentro de una tx ven el valor ya actualizado.
func (l *StockLedger) ApplyDelta(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	product, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrProductNotFound
	}
	next := product.CurrentStock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, &domain.NegativeStockError{
			ProductID: productID,
			Current:   product.CurrentStock.String(),
			Delta:     delta.String(),
		}
	}
	if err := l.products.UpdateStock(ctx, productID, next); err != nil {
		return decimal.Zero, err
	}
	return next, nil
}
