package domain

import (
	"errors"
	"fmt"
)

// Clases de error del motor de inventario (sin dependencias externas).
// Los handlers deciden el código HTTP con errors.Is sobre estas clases.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrInvariantViolation = errors.New("violación de invariante de stock")
	ErrTransient          = errors.New("fallo transitorio del almacén de datos")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
)

// RejectionError es un rechazo con motivo literal. Reason es parte del contrato con
// los clientes: se devuelve tal cual en las respuestas y no debe traducirse.
type RejectionError struct {
	Kind   error
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

// Unwrap permite errors.Is(err, domain.ErrNotFound) y similares.
func (e *RejectionError) Unwrap() error { return e.Kind }

func reject(kind error, reason string) *RejectionError {
	return &RejectionError{Kind: kind, Reason: reason}
}

// Motivos de rechazo (enumeración cerrada).
var (
	ErrOperationNotFound      = reject(ErrNotFound, "Operation not found")
	ErrProductNotFound        = reject(ErrNotFound, "Product not found")
	ErrOperationNotReady      = reject(ErrInvalidState, "Operation must be in READY state to validate")
	ErrNoItems                = reject(ErrInvalidState, "No items to validate for this operation")
	ErrNegativeQuantity       = reject(ErrInvariantViolation, "Quantities must be non-negative")
	ErrInsufficientStock      = reject(ErrInvariantViolation, "Insufficient stock for one or more items")
	ErrNegativeResultingStock = reject(ErrInvariantViolation, "Resulting stock cannot be negative")
)

// Motivos del ciclo de vida (fuera de la ruta de validación).
var (
	ErrOperationNotPending    = reject(ErrInvalidState, "Operation must be in DRAFT or WAITING state to mark ready")
	ErrOperationNotCancelable = reject(ErrInvalidState, "Operation cannot be canceled in its current state")
	ErrOperationNotDone       = reject(ErrInvalidState, "Operation must be DONE to print a voucher")
)

// ErrAdjustmentInProgress otro ajuste con la misma Idempotency-Key no terminó a tiempo.
var ErrAdjustmentInProgress = reject(ErrTransient, "An adjustment with this Idempotency-Key is still in progress")

// NegativeStockError lo devuelve la primitiva de mutación cuando el stock resultante sería < 0.
type NegativeStockError struct {
	ProductID string
	Current   string
	Delta     string
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock negativo para producto %s: actual %s, delta %s", e.ProductID, e.Current, e.Delta)
}

// Unwrap expone el motivo de rechazo público.
func (e *NegativeStockError) Unwrap() error { return ErrNegativeResultingStock }

// Transient marca err como reintentable por el caller. nil se devuelve tal cual.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// Reason devuelve el motivo literal de un rechazo o un mensaje genérico para
// errores de infraestructura (no se filtran detalles internos).
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	if errors.Is(err, ErrTransient) {
		return "Temporary storage failure, retry later"
	}
	if errors.Is(err, ErrInvalidInput) {
		return err.Error()
	}
	if errors.Is(err, ErrDuplicate) {
		return "Resource already exists"
	}
	return "Internal error"
}
