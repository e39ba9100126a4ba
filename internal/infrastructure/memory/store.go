// Package memory implementa los puertos de persistencia en memoria. Las transacciones se
// serializan con un mutex y trabajan sobre un clon del estado que solo se publica si fn
// termina sin error, así que el rollback es descartar el clon.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

var (
	_ inventory.TxRunner             = (*Store)(nil)
	_ inventory.IdempotencyStore     = (*Store)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.OperationRepository = (*OperationRepo)(nil)
	_ repository.StockMoveRepository = (*StockMoveRepo)(nil)
)

type state struct {
	products   map[string]entity.Product
	operations map[string]entity.Operation
	opOrder    []string
	itemOwner  map[string]string // item ID → operation ID
	moves      []entity.StockMove
}

func newState() state {
	return state{
		products:   map[string]entity.Product{},
		operations: map[string]entity.Operation{},
		itemOwner:  map[string]string{},
	}
}

func (s state) clone() state {
	c := state{
		products:   make(map[string]entity.Product, len(s.products)),
		operations: make(map[string]entity.Operation, len(s.operations)),
		opOrder:    append([]string(nil), s.opOrder...),
		itemOwner:  make(map[string]string, len(s.itemOwner)),
		moves:      append([]entity.StockMove(nil), s.moves...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.operations {
		c.operations[k] = cloneOperation(v)
	}
	for k, v := range s.itemOwner {
		c.itemOwner[k] = v
	}
	return c
}

func cloneOperation(op entity.Operation) entity.Operation {
	op.Items = append([]entity.OperationItem(nil), op.Items...)
	return op
}

// Store almacén en memoria; implementa inventory.TxRunner e inventory.IdempotencyStore.
type Store struct {
	mu sync.RWMutex
	st state

	idemMu sync.Mutex
	idem   map[string]idemEntry
}

// idemEntry reserva (token) o clave completada (operationID).
type idemEntry struct {
	token       string
	operationID string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), idem: map[string]idemEntry{}}
}

// Run ejecuta fn sobre un clon del estado y lo publica solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	moveRepo repository.StockMoveRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Transient(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	a := access{tx: &tx}
	if err := fn(&ProductRepo{a}, &OperationRepo{a}, &StockMoveRepo{a}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.Transient(err)
	}
	s.st = tx
	return nil
}

// Products repositorio fuera de transacción (lecturas y altas de catálogo).
func (s *Store) Products() *ProductRepo { return &ProductRepo{access{store: s}} }

// Operations repositorio fuera de transacción.
func (s *Store) Operations() *OperationRepo { return &OperationRepo{access{store: s}} }

// Moves repositorio fuera de transacción.
func (s *Store) Moves() *StockMoveRepo { return &StockMoveRepo{access{store: s}} }

// Claim implementa inventory.IdempotencyStore.
func (s *Store) Claim(_ context.Context, key, token string) (string, bool, error) {
	s.idemMu.Lock()
	defer s.idemMu.Unlock()
	if e, ok := s.idem[key]; ok {
		return e.operationID, false, nil
	}
	s.idem[key] = idemEntry{token: token}
	return "", true, nil
}

// Complete implementa inventory.IdempotencyStore.
func (s *Store) Complete(_ context.Context, key, token, operationID string) error {
	s.idemMu.Lock()
	defer s.idemMu.Unlock()
	e, ok := s.idem[key]
	if !ok || e.token != token || e.operationID != "" {
		return fmt.Errorf("idempotency complete: la clave %q no está reservada por este ajuste", key)
	}
	s.idem[key] = idemEntry{operationID: operationID}
	return nil
}

// Release implementa inventory.IdempotencyStore.
func (s *Store) Release(_ context.Context, key, token string) error {
	s.idemMu.Lock()
	defer s.idemMu.Unlock()
	if e, ok := s.idem[key]; ok && e.operationID == "" && e.token == token {
		delete(s.idem, key)
	}
	return nil
}

// access resuelve el estado: el clon de la tx (ya bajo lock) o el del Store con lock propio.
type access struct {
	store *Store
	tx    *state
}

func (a access) read(fn func(st *state)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	fn(&a.store.st)
}

func (a access) write(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(&a.store.st)
}

// ── Productos ────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ access }

// Create inserta un producto; SKU duplicado → domain.ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

// GetByID devuelve una copia o nil.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: el Store ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetManyForUpdate devuelve los existentes en orden ascendente de ID.
func (r *ProductRepo) GetManyForUpdate(_ context.Context, ids []string) ([]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	var out []*entity.Product
	r.read(func(st *state) {
		for _, id := range sorted {
			if p, ok := st.products[id]; ok {
				p := p
				out = append(out, &p)
			}
		}
	})
	return out, nil
}

// UpdateStock escribe current_stock.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, newStock decimal.Decimal) error {
	return r.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		p.CurrentStock = newStock
		st.products[id] = p
		return nil
	})
}

// ListStockLevels devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) ListStockLevels(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.read(func(st *state) {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ── Operaciones ──────────────────────────────────────────────────────────────

// OperationRepo implementación en memoria de repository.OperationRepository.
type OperationRepo struct{ access }

// Create inserta cabecera y líneas.
func (r *OperationRepo) Create(_ context.Context, op *entity.Operation) error {
	return r.write(func(st *state) error {
		if _, ok := st.operations[op.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, it := range op.Items {
			if _, ok := st.itemOwner[it.ID]; ok {
				return domain.ErrDuplicate
			}
		}
		stored := cloneOperation(*op)
		for i := range stored.Items {
			stored.Items[i].OperationID = op.ID
			st.itemOwner[stored.Items[i].ID] = op.ID
		}
		st.operations[op.ID] = stored
		st.opOrder = append(st.opOrder, op.ID)
		return nil
	})
}

// GetByID devuelve una copia con sus líneas o nil.
func (r *OperationRepo) GetByID(_ context.Context, id string) (*entity.Operation, error) {
	var out *entity.Operation
	r.read(func(st *state) {
		if op, ok := st.operations[id]; ok {
			c := cloneOperation(op)
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID dentro de una tx serializada.
func (r *OperationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return r.GetByID(ctx, id)
}

// UpdateItemDoneQty persiste done_qty de una línea.
func (r *OperationRepo) UpdateItemDoneQty(_ context.Context, itemID string, doneQty decimal.Decimal) error {
	return r.write(func(st *state) error {
		opID, ok := st.itemOwner[itemID]
		if !ok {
			return domain.ErrNotFound
		}
		op := st.operations[opID]
		for i := range op.Items {
			if op.Items[i].ID == itemID {
				op.Items[i].DoneQty = doneQty
			}
		}
		st.operations[opID] = op
		return nil
	})
}

// UpdateStatus cambia el estado de la cabecera.
func (r *OperationRepo) UpdateStatus(_ context.Context, id string, status entity.OperationStatus) error {
	return r.write(func(st *state) error {
		op, ok := st.operations[id]
		if !ok {
			return domain.ErrOperationNotFound
		}
		op.Status = status
		st.operations[id] = op
		return nil
	})
}

// List devuelve las operaciones más recientes primero (sin líneas).
func (r *OperationRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var out []*entity.Operation
	r.read(func(st *state) {
		for i := len(st.opOrder) - 1; i >= 0; i-- {
			op := st.operations[st.opOrder[i]]
			if f.Type != "" && op.Type != f.Type {
				continue
			}
			if f.Status != "" && op.Status != f.Status {
				continue
			}
			op.Items = nil
			out = append(out, &op)
		}
	})
	return paginate(out, f.Limit, f.Offset), nil
}

// CountByTypeAndStatus cuenta operaciones del tipo en cualquiera de los estados.
func (r *OperationRepo) CountByTypeAndStatus(_ context.Context, typ entity.OperationType, statuses ...entity.OperationStatus) (int, error) {
	n := 0
	r.read(func(st *state) {
		for _, op := range st.operations {
			if op.Type != typ {
				continue
			}
			for _, s := range statuses {
				if op.Status == s {
					n++
					break
				}
			}
		}
	})
	return n, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// StockMoveRepo implementación en memoria de repository.StockMoveRepository.
type StockMoveRepo struct{ access }

// Create agrega un movimiento al final del libro.
func (r *StockMoveRepo) Create(_ context.Context, m *entity.StockMove) error {
	return r.write(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
		st.moves = append(st.moves, *m)
		return nil
	})
}

// List devuelve los movimientos más recientes primero con el nombre del producto.
func (r *StockMoveRepo) List(_ context.Context, limit, offset int) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	r.read(func(st *state) {
		for i := len(st.moves) - 1; i >= 0; i-- {
			m := st.moves[i]
			m.ProductName = st.products[m.ProductID].Name
			out = append(out, &m)
		}
	})
	return paginate(out, limit, offset), nil
}

// SumByDestination agrupa por ubicación destino, ordenado por ubicación.
func (r *StockMoveRepo) SumByDestination(_ context.Context, productID string) ([]repository.LocationStock, error) {
	byLoc := map[string]*repository.LocationStock{}
	r.read(func(st *state) {
		for _, m := range st.moves {
			if m.ProductID != productID {
				continue
			}
			ls, ok := byLoc[m.ToLocation]
			if !ok {
				ls = &repository.LocationStock{Location: m.ToLocation, Quantity: decimal.Zero}
				byLoc[m.ToLocation] = ls
			}
			ls.Quantity = ls.Quantity.Add(m.Qty)
			if m.Date.After(ls.LastUpdated) {
				ls.LastUpdated = m.Date
			}
		}
	})
	out := make([]repository.LocationStock, 0, len(byLoc))
	for _, ls := range byLoc {
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
