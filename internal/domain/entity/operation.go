package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stockops/internal/domain"
)

// OperationType tipo de operación de inventario.
type OperationType string

const (
	OperationIncoming   OperationType = "INCOMING"   // recepción
	OperationOutgoing   OperationType = "OUTGOING"   // entrega
	OperationInternal   OperationType = "INTERNAL"   // traslado interno
	OperationAdjustment OperationType = "ADJUSTMENT" // ajuste por conteo
)

// ParseOperationType valida un tipo recibido desde el exterior.
func ParseOperationType(s string) (OperationType, error) {
	switch t := OperationType(strings.ToUpper(strings.TrimSpace(s))); t {
	case OperationIncoming, OperationOutgoing, OperationInternal, OperationAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("%w: tipo de operación %q", domain.ErrInvalidInput, s)
}

// OperationStatus estado del ciclo de vida de una operación.
type OperationStatus string

const (
	StatusDraft    OperationStatus = "DRAFT"
	StatusWaiting  OperationStatus = "WAITING"
	StatusReady    OperationStatus = "READY"
	StatusDone     OperationStatus = "DONE"
	StatusCanceled OperationStatus = "CANCELED"
)

// ParseOperationStatus valida un estado recibido desde el exterior.
func ParseOperationStatus(s string) (OperationStatus, error) {
	switch st := OperationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled:
		return st, nil
	}
	return "", fmt.Errorf("%w: estado de operación %q", domain.ErrInvalidInput, s)
}

// IsTerminal indica DONE o CANCELED.
func (s OperationStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// Operation es la cabecera de una operación de stock con sus líneas.
type Operation struct {
	ID                  string
	Reference           string // opcional
	Type                OperationType
	Partner             string
	ScheduleDate        time.Time
	SourceLocation      string
	DestinationLocation string
	Status              OperationStatus
	Items               []OperationItem
	CreatedAt           time.Time
}

// OperationItem línea de producto. DoneQty en cero significa "aún no registrada".
type OperationItem struct {
	ID          string
	OperationID string
	ProductID   string
	Qty         decimal.Decimal
	DoneQty     decimal.Decimal
}

// NewOperation construye una cabecera validada. Las ubicaciones se normalizan
// (trim + NFC) porque la regla de signo de ADJUSTMENT compara origen y destino.
func NewOperation(id string, typ OperationType, status OperationStatus, partner, source, destination string, schedule time.Time) (*Operation, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := ParseOperationType(string(typ)); err != nil {
		return nil, err
	}
	if _, err := ParseOperationStatus(string(status)); err != nil {
		return nil, err
	}
	if schedule.IsZero() {
		schedule = time.Now()
	}
	return &Operation{
		ID:                  id,
		Type:                typ,
		Partner:             strings.TrimSpace(partner),
		ScheduleDate:        schedule,
		SourceLocation:      NormalizeLocation(source),
		DestinationLocation: NormalizeLocation(destination),
		Status:              status,
		CreatedAt:           time.Now(),
	}, nil
}

// AddItem agrega una línea. Las cantidades negativas se aceptan aquí: el validador
// es quien rechaza la operación completa con el motivo público correspondiente.
func (o *Operation) AddItem(id, productID string, qty, doneQty decimal.Decimal) error {
	if id == "" || strings.TrimSpace(productID) == "" {
		return domain.ErrInvalidInput
	}
	o.Items = append(o.Items, OperationItem{
		ID:          id,
		OperationID: o.ID,
		ProductID:   strings.TrimSpace(productID),
		Qty:         qty,
		DoneQty:     doneQty,
	})
	return nil
}

// SameLocation indica si origen y destino coinciden.
func (o *Operation) SameLocation() bool {
	return o.SourceLocation == o.DestinationLocation
}

// ProductIDs devuelve los IDs de producto referenciados, sin duplicados y en orden de aparición.
func ProductIDs(items []OperationItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// NormalizeLocation recorta espacios y normaliza a NFC.
func NormalizeLocation(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
