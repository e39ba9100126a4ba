package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
)

// Line resultado del validador para una línea: cantidad normalizada y delta con signo.
type Line struct {
	ItemID    string
	ProductID string
	Quantity  decimal.Decimal
	Delta     decimal.Decimal
}

// Plan decisión de aceptación: líneas en el orden original, deltas acumulados por
// producto y stock resultante esperado.
type Plan struct {
	Lines     []Line
	Deltas    map[string]decimal.Decimal
	Resulting map[string]decimal.Decimal
}

// Validate decide si una operación puede pasar a DONE. Es una función pura sobre una
// instantánea: op (nil = no existe), sus líneas y el stock actual por producto.
// Un producto ausente del mapa cuenta como stock cero.
//
// Las comprobaciones se hacen en este orden y cortan en el primer fallo:
// existencia, estado READY, al menos una línea, cantidades >= 0 (la normalizada y también
// done_qty aunque no se use), stock suficiente (solo OUTGOING, contra la instantánea) y
// stock resultante >= 0 (contra el saldo acumulado de las líneas anteriores).
func Validate(op *entity.Operation, items []entity.OperationItem, stock map[string]decimal.Decimal) (*Plan, error) {
	if op == nil {
		return nil, domain.ErrOperationNotFound
	}
	if op.Status != entity.StatusReady {
		return nil, domain.ErrOperationNotReady
	}
	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}

	quantities := make([]decimal.Decimal, len(items))
	for i, it := range items {
		q := NormalizeQuantity(it)
		if q.IsNegative() || it.DoneQty.IsNegative() {
			return nil, domain.ErrNegativeQuantity
		}
		quantities[i] = q
	}

	if op.Type == entity.OperationOutgoing {
		for i, it := range items {
			if stock[it.ProductID].LessThan(quantities[i]) {
				return nil, domain.ErrInsufficientStock
			}
		}
	}

	plan := &Plan{
		Lines:     make([]Line, 0, len(items)),
		Deltas:    make(map[string]decimal.Decimal, len(items)),
		Resulting: make(map[string]decimal.Decimal, len(items)),
	}
	for i, it := range items {
		delta := Delta(op, quantities[i])
		running, seen := plan.Resulting[it.ProductID]
		if !seen {
			running = stock[it.ProductID]
		}
		next := running.Add(delta)
		if next.IsNegative() {
			return nil, domain.ErrNegativeResultingStock
		}
		plan.Resulting[it.ProductID] = next
		plan.Deltas[it.ProductID] = plan.Deltas[it.ProductID].Add(delta)
		plan.Lines = append(plan.Lines, Line{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  quantities[i],
			Delta:     delta,
		})
	}
	return plan, nil
}
