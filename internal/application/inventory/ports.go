package inventory

import (
	"context"

	"github.com/jhoicas/stockops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura aplicada (rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		moveRepo repository.StockMoveRepository,
	) error) error
}

// IdempotencyStore reserva claves de idempotencia de ajustes y recuerda el ID creado.
// Una clave pasa por dos estados: reservada por un token (ajuste en curso) y completada con
// el ID de la operación.
type IdempotencyStore interface {
	// Claim reserva la clave para token de forma atómica. Si ya estaba tomada devuelve
	// (id, false, nil); id vacío indica que otro ajuste con esa clave sigue en curso.
	Claim(ctx context.Context, key, token string) (string, bool, error)
	// Complete reemplaza la reserva de token por el ID de la operación.
	Complete(ctx context.Context, key, token, operationID string) error
	// Release libera la reserva de token; no toca claves ya completadas ni reservas ajenas.
	Release(ctx context.Context, key, token string) error
}
