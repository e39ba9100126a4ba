package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
)

// Las cantidades se guardan como NUMERIC(18,4).
const (
	QuantityScale         = 4
	quantityIntegerDigits = 14
)

var quantityLimit = decimal.New(1, quantityIntegerDigits)

// CheckQuantityPrecision rechaza cantidades que el almacén redondearía (más de 4 decimales)
// o que no caben en la columna.
func CheckQuantityPrecision(q decimal.Decimal) error {
	if !q.Equal(q.Truncate(QuantityScale)) {
		return fmt.Errorf("%w: la cantidad %s admite como máximo %d decimales", domain.ErrInvalidInput, q.String(), QuantityScale)
	}
	if q.Abs().GreaterThanOrEqual(quantityLimit) {
		return fmt.Errorf("%w: la cantidad %s excede el máximo admitido", domain.ErrInvalidInput, q.String())
	}
	return nil
}
