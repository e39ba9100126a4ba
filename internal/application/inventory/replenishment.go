package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

// idealStockFactor stock objetivo de reposición = mínimo × 1.5.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase lecturas de nivel de stock por producto y lista de reposición.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// ProductStock devuelve el nivel de stock de un producto o domain.ErrProductNotFound.
func (uc *ReplenishmentUseCase) ProductStock(ctx context.Context, id string) (*dto.ProductStockResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	out := toProductStockResponse(p)
	return &out, nil
}

// Suggestions lista los productos en o bajo su mínimo con la cantidad a pedir para
// llegar a mínimo × 1.5. Prioridad 1 = mayor déficit respecto del mínimo.
func (uc *ReplenishmentUseCase) Suggestions(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	products, err := uc.productRepo.ListStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentSuggestion, 0)
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		ideal := p.MinStockLevel.Mul(idealStockFactor)
		qty := ideal.Sub(p.CurrentStock)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		out = append(out, dto.ReplenishmentSuggestion{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.CurrentStock,
			MinStockLevel:      p.MinStockLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.UnitCost,
			EstimatedOrderCost: qty.Mul(p.UnitCost),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		defI := out[i].MinStockLevel.Sub(out[i].CurrentStock)
		defJ := out[j].MinStockLevel.Sub(out[j].CurrentStock)
		if !defI.Equal(defJ) {
			return defI.GreaterThan(defJ)
		}
		return out[i].SKU < out[j].SKU
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

func toProductStockResponse(p *entity.Product) dto.ProductStockResponse {
	return dto.ProductStockResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		UnitMeasure:   p.UnitMeasure,
		MinStockLevel: p.MinStockLevel,
		CurrentStock:  p.CurrentStock,
		UnitCost:      p.UnitCost,
		LowStock:      p.IsLowStock(),
		UpdatedAt:     p.UpdatedAt,
	}
}
