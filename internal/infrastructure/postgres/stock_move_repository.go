package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo libro de movimientos sobre PostgreSQL (solo INSERT y SELECT).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_moves (id, date, product_id, qty, from_location, to_location, reference_doc, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Date, m.ProductID, m.Qty, m.FromLocation, m.ToLocation, m.ReferenceDoc, string(m.Status),
	)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// List devuelve los movimientos más recientes primero con el nombre del producto.
func (r *StockMoveRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.date, m.product_id, p.name, m.qty, m.from_location, m.to_location, m.reference_doc, m.status
		FROM stock_moves m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.date DESC, m.seq DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		var m entity.StockMove
		var status string
		if err := rows.Scan(&m.ID, &m.Date, &m.ProductID, &m.ProductName, &m.Qty,
			&m.FromLocation, &m.ToLocation, &m.ReferenceDoc, &status); err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		m.Status = entity.OperationStatus(status)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByDestination agrupa cantidades por ubicación destino.
func (r *StockMoveRepo) SumByDestination(ctx context.Context, productID string) ([]repository.LocationStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT to_location, COALESCE(SUM(qty), 0), MAX(date)
		FROM stock_moves
		WHERE product_id = $1
		GROUP BY to_location
		ORDER BY to_location COLLATE "C"`, productID)
	if err != nil {
		return nil, fmt.Errorf("stock by location: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationStock
	for rows.Next() {
		var ls repository.LocationStock
		if err := rows.Scan(&ls.Location, &ls.Quantity, &ls.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		list = append(list, ls)
	}
	return list, rows.Err()
}
