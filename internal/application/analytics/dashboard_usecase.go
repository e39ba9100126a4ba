// Package analytics contiene los casos de uso de lectura para el dashboard de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

var pendingStatuses = []entity.OperationStatus{entity.StatusWaiting, entity.StatusReady}

// DashboardUseCase calcula los KPIs del tablero a partir de productos y operaciones.
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	operationRepo repository.OperationRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, operationRepo repository.OperationRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, operationRepo: operationRepo}
}

// GetKPIs lanza las cuatro consultas en paralelo:
//  1. ListStockLevels        → total, bajo mínimo, agotados
//  2. INCOMING pendientes    → PendingReceipts
//  3. OUTGOING pendientes    → PendingDeliveries
//  4. INTERNAL pendientes    → InternalTransfersScheduled
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.KPIResponse, error) {
	var (
		out      dto.KPIResponse
		products []*entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.productRepo.ListStockLevels(gctx)
		return err
	})
	count := func(typ entity.OperationType, dst *int) func() error {
		return func() error {
			n, err := uc.operationRepo.CountByTypeAndStatus(gctx, typ, pendingStatuses...)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}
	g.Go(count(entity.OperationIncoming, &out.PendingReceipts))
	g.Go(count(entity.OperationOutgoing, &out.PendingDeliveries))
	g.Go(count(entity.OperationInternal, &out.InternalTransfersScheduled))
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	out.TotalProductsQty = decimal.Zero
	for _, p := range products {
		out.TotalProductsQty = out.TotalProductsQty.Add(p.CurrentStock)
		if p.IsLowStock() {
			out.LowStockCount++
		}
		if p.CurrentStock.IsZero() {
			out.OutOfStockCount++
		}
	}
	return &out, nil
}
