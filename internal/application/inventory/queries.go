package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

// QueryUseCase lecturas sin bloqueo sobre operaciones y el libro de movimientos.
type QueryUseCase struct {
	productRepo   repository.ProductRepository
	operationRepo repository.OperationRepository
	moveRepo      repository.StockMoveRepository
}

// NewQueryUseCase construye el caso de uso con repositorios sobre el pool.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	moveRepo repository.StockMoveRepository,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, operationRepo: operationRepo, moveRepo: moveRepo}
}

// ListOperations filtra por tipo y estado; valores vacíos o desconocidos no filtran.
func (uc *QueryUseCase) ListOperations(ctx context.Context, typ, status string, page dto.PageRequest) (*dto.OperationListResponse, error) {
	page = page.Normalize()
	filter := repository.OperationFilter{Limit: page.Limit, Offset: page.Offset}
	if strings.TrimSpace(typ) != "" {
		if t, err := entity.ParseOperationType(typ); err == nil {
			filter.Type = t
		}
	}
	if strings.TrimSpace(status) != "" {
		if s, err := entity.ParseOperationStatus(status); err == nil {
			filter.Status = s
		}
	}
	list, err := uc.operationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		items = append(items, ToOperationResponse(op, false))
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetOperation devuelve la cabecera con sus líneas.
func (uc *QueryUseCase) GetOperation(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrOperationNotFound
	}
	out := ToOperationResponse(op, true)
	return &out, nil
}

// ListMoves lista el libro de movimientos, más recientes primero.
func (uc *QueryUseCase) ListMoves(ctx context.Context, page dto.PageRequest) (*dto.StockMoveListResponse, error) {
	page = page.Normalize()
	list, err := uc.moveRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMoveResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMoveResponse{
			ID:           m.ID,
			Date:         m.Date,
			ProductID:    m.ProductID,
			ProductName:  m.ProductName,
			Qty:          m.Qty,
			FromLocation: m.FromLocation,
			ToLocation:   m.ToLocation,
			ReferenceDoc: m.ReferenceDoc,
			Status:       string(m.Status),
		})
	}
	return &dto.StockMoveListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// StockByLocation aproxima el stock por ubicación sumando los movimientos por destino.
// No es un saldo real por ubicación: el modelo solo guarda current_stock global.
func (uc *QueryUseCase) StockByLocation(ctx context.Context, productID string) ([]dto.StockByLocationResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	rows, err := uc.moveRepo.SumByDestination(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockByLocationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockByLocationResponse{
			Location:    r.Location,
			Quantity:    r.Quantity,
			LastUpdated: r.LastUpdated,
		})
	}
	return out, nil
}

// ToOperationResponse mapea la entidad al DTO; withItems incluye las líneas.
func ToOperationResponse(op *entity.Operation, withItems bool) dto.OperationResponse {
	out := dto.OperationResponse{
		ID:                  op.ID,
		Reference:           op.Reference,
		Type:                string(op.Type),
		Partner:             op.Partner,
		ScheduleDate:        op.ScheduleDate,
		SourceLocation:      op.SourceLocation,
		DestinationLocation: op.DestinationLocation,
		Status:              string(op.Status),
	}
	if withItems {
		out.Items = make([]dto.OperationItemResponse, 0, len(op.Items))
		for _, it := range op.Items {
			out.Items = append(out.Items, dto.OperationItemResponse{
				ID:        it.ID,
				ProductID: it.ProductID,
				Qty:       it.Qty,
				DoneQty:   it.DoneQty,
			})
		}
	}
	return out
}
