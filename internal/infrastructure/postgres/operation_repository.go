package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationColumns = `id, reference, type, partner, schedule_date, source_location, destination_location, status, created_at`

// OperationRepo implementación de OperationRepository sobre PostgreSQL (usable con pool o tx).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var op entity.Operation
	var typ, status string
	err := row.Scan(&op.ID, &op.Reference, &typ, &op.Partner, &op.ScheduleDate,
		&op.SourceLocation, &op.DestinationLocation, &status, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	op.Type = entity.OperationType(typ)
	op.Status = entity.OperationStatus(status)
	return &op, nil
}

// Create inserta cabecera y líneas; line_no conserva el orden de creación.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO operations (`+operationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		op.ID, op.Reference, string(op.Type), op.Partner, op.ScheduleDate,
		op.SourceLocation, op.DestinationLocation, string(op.Status), op.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	for i, it := range op.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO operation_items (id, operation_id, product_id, qty, done_qty, line_no)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, op.ID, it.ProductID, it.Qty, it.DoneQty, i,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert operation item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la operación con sus líneas.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	return r.get(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)
}

// GetForUpdate obtiene la operación bloqueando la cabecera (SELECT FOR UPDATE).
func (r *OperationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return r.get(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1 FOR UPDATE`, id)
}

func (r *OperationRepo) get(ctx context.Context, query, id string) (*entity.Operation, error) {
	op, err := scanOperation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	if op.Items, err = r.items(ctx, op.ID); err != nil {
		return nil, err
	}
	return op, nil
}

func (r *OperationRepo) items(ctx context.Context, operationID string) ([]entity.OperationItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, operation_id, product_id, qty, done_qty
		FROM operation_items WHERE operation_id = $1 ORDER BY line_no`, operationID)
	if err != nil {
		return nil, fmt.Errorf("list operation items: %w", err)
	}
	defer rows.Close()
	var list []entity.OperationItem
	for rows.Next() {
		var it entity.OperationItem
		if err := rows.Scan(&it.ID, &it.OperationID, &it.ProductID, &it.Qty, &it.DoneQty); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateItemDoneQty persiste la cantidad efectivamente aplicada de una línea.
func (r *OperationRepo) UpdateItemDoneQty(ctx context.Context, itemID string, doneQty decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE operation_items SET done_qty = $2 WHERE id = $1`, itemID, doneQty)
	if err != nil {
		return fmt.Errorf("update item done_qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la cabecera.
func (r *OperationRepo) UpdateStatus(ctx context.Context, id string, status entity.OperationStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE operations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update operation status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOperationNotFound
	}
	return nil
}

// List devuelve cabeceras (sin líneas), más recientes primero.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + operationColumns + ` FROM operations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
	}
	return list, rows.Err()
}

// CountByTypeAndStatus cuenta operaciones de un tipo en cualquiera de los estados.
func (r *OperationRepo) CountByTypeAndStatus(ctx context.Context, typ entity.OperationType, statuses ...entity.OperationStatus) (int, error) {
	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM operations WHERE type = $1 AND status = ANY($2)`,
		string(typ), st,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}
