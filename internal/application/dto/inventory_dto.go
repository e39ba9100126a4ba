package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidateOperationResult respuesta de POST /api/operations/{id}/validate.
// Error lleva el motivo literal del rechazo (enumeración cerrada).
type ValidateOperationResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// CreateAdjustmentRequest body de POST /api/adjustments.
type CreateAdjustmentRequest struct {
	ProductID  string           `json:"productId" validate:"required"`
	Location   string           `json:"location" validate:"required"`
	CountedQty *decimal.Decimal `json:"countedQty" validate:"required"`
	Reason     string           `json:"reason,omitempty" validate:"max=255"`
}

// CreateAdjustmentResult respuesta de POST /api/adjustments: ID vacío cuando hay Error.
type CreateAdjustmentResult struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// StockMoveResponse movimiento del libro para GET /api/moves.
type StockMoveResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Qty          decimal.Decimal `json:"qty"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	ReferenceDoc string          `json:"reference_doc"`
	Status       string          `json:"status"`
}

// StockMoveListResponse listado paginado de movimientos.
type StockMoveListResponse struct {
	Items []StockMoveResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockByLocationResponse stock acumulado por ubicación destino.
type StockByLocationResponse struct {
	Location    string          `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated time.Time       `json:"last_updated"`
}
