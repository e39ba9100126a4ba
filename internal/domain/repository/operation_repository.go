package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain/entity"
)

// OperationFilter filtros opcionales para listar operaciones.
type OperationFilter struct {
	Type   entity.OperationType   // vacío = todos
	Status entity.OperationStatus // vacío = todos
	Limit  int
	Offset int
}

// OperationRepository define el puerto de persistencia para operaciones y sus líneas.
// GetByID y GetForUpdate cargan también los items en el orden en que fueron creados.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	// GetForUpdate bloquea la cabecera: dos validaciones concurrentes de la misma operación se serializan.
	GetForUpdate(ctx context.Context, id string) (*entity.Operation, error)
	UpdateItemDoneQty(ctx context.Context, itemID string, doneQty decimal.Decimal) error
	UpdateStatus(ctx context.Context, id string, status entity.OperationStatus) error
	List(ctx context.Context, filter OperationFilter) ([]*entity.Operation, error)
	// CountByTypeAndStatus cuenta operaciones de un tipo en cualquiera de los estados indicados.
	CountByTypeAndStatus(ctx context.Context, typ entity.OperationType, statuses ...entity.OperationStatus) (int, error)
}
