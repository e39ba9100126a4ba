package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOperationItemRequest línea de una operación nueva.
type CreateOperationItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Qty       decimal.Decimal `json:"qty"`
}

// CreateOperationRequest body de POST /api/operations.
// Status opcional: DRAFT (por defecto) o WAITING.
type CreateOperationRequest struct {
	Reference           string                       `json:"reference,omitempty"`
	Type                string                       `json:"type" validate:"required,oneof=INCOMING OUTGOING INTERNAL"`
	Partner             string                       `json:"partner"`
	ScheduleDate        *time.Time                   `json:"schedule_date,omitempty"`
	SourceLocation      string                       `json:"source_location" validate:"required"`
	DestinationLocation string                       `json:"destination_location" validate:"required"`
	Status              string                       `json:"status,omitempty" validate:"omitempty,oneof=DRAFT WAITING"`
	Items               []CreateOperationItemRequest `json:"items" validate:"dive"`
}

// OperationItemResponse línea de operación.
type OperationItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
	DoneQty   decimal.Decimal `json:"done_qty"`
}

// OperationResponse cabecera con sus líneas.
type OperationResponse struct {
	ID                  string                  `json:"id"`
	Reference           string                  `json:"reference,omitempty"`
	Type                string                  `json:"type"`
	Partner             string                  `json:"partner"`
	ScheduleDate        time.Time               `json:"schedule_date"`
	SourceLocation      string                  `json:"source_location"`
	DestinationLocation string                  `json:"destination_location"`
	Status              string                  `json:"status"`
	Items               []OperationItemResponse `json:"items,omitempty"`
}

// OperationListResponse listado paginado de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
