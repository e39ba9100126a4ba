package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
)

// StockMove registro inmutable del libro de movimientos. Qty es magnitud (>= 0);
// la dirección se deduce del tipo de operación y de las ubicaciones.
type StockMove struct {
	ID           string
	Date         time.Time
	ProductID    string
	ProductName  string // solo lectura (join), no se persiste
	Qty          decimal.Decimal
	FromLocation string
	ToLocation   string
	ReferenceDoc string
	Status       OperationStatus
}

// NewStockMove valida magnitud y producto antes de insertar en el libro.
func NewStockMove(id, productID string, qty decimal.Decimal, from, to, reference string, status OperationStatus, date time.Time) (*StockMove, error) {
	if id == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if qty.IsNegative() {
		return nil, domain.ErrNegativeQuantity
	}
	if _, err := ParseOperationStatus(string(status)); err != nil {
		return nil, err
	}
	return &StockMove{
		ID:           id,
		Date:         date,
		ProductID:    productID,
		Qty:          qty,
		FromLocation: from,
		ToLocation:   to,
		ReferenceDoc: reference,
		Status:       status,
	}, nil
}
