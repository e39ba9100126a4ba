package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetManyForUpdate bloquea varias filas en orden ascendente de ID (evita deadlocks).
	// Los IDs inexistentes simplemente no aparecen en el resultado.
	GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error)
	// UpdateStock escribe current_stock. Solo debe llamarlo StockLedger.
	UpdateStock(ctx context.Context, id string, newStock decimal.Decimal) error
	// ListStockLevels devuelve todos los productos (para KPIs del dashboard).
	ListStockLevels(ctx context.Context) ([]*entity.Product, error)
}
