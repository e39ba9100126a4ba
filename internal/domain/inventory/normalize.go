package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain/entity"
)

// NormalizeQuantity devuelve la cantidad que se aplica al stock de una línea.
// Precedencia: DoneQty si es > 0; en otro caso Qty (incluido el caso DoneQty == 0 o negativo).
func NormalizeQuantity(item entity.OperationItem) decimal.Decimal {
	if item.DoneQty.GreaterThan(decimal.Zero) {
		return item.DoneQty
	}
	return item.Qty
}

// Delta calcula la variación con signo de current_stock para una cantidad normalizada q.
//   - INCOMING: +q
//   - OUTGOING: -q
//   - ADJUSTMENT: +q si origen == destino, -q en otro caso
//   - INTERNAL: 0 (el modelo de stock es de una sola ubicación; solo se registra el movimiento)
func Delta(op *entity.Operation, q decimal.Decimal) decimal.Decimal {
	switch op.Type {
	case entity.OperationIncoming:
		return q
	case entity.OperationOutgoing:
		return q.Neg()
	case entity.OperationAdjustment:
		if op.SameLocation() {
			return q
		}
		return q.Neg()
	}
	return decimal.Zero
}

// MoveStatus estado con que se registra el movimiento de una operación validada.
// INTERNAL replica el estado de la operación en vez de forzar DONE (comportamiento
// heredado, pendiente de aclaración funcional).
func MoveStatus(op *entity.Operation) entity.OperationStatus {
	if op.Type == entity.OperationInternal {
		return op.Status
	}
	return entity.StatusDone
}
