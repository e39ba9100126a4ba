package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain/entity"
)

// LocationStock cantidad acumulada de un producto por ubicación destino.
type LocationStock struct {
	Location    string
	Quantity    decimal.Decimal
	LastUpdated time.Time
}

// StockMoveRepository puerto del libro de movimientos (solo inserción y lectura).
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	// List devuelve los movimientos más recientes primero, con el nombre del producto.
	List(ctx context.Context, limit, offset int) ([]*entity.StockMove, error)
	SumByDestination(ctx context.Context, productID string) ([]LocationStock, error)
}
