package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
)

// VoucherLine línea del comprobante con datos del producto ya resueltos.
type VoucherLine struct {
	SKU         string
	ProductName string
	UnitMeasure string
	Requested   decimal.Decimal
	Done        decimal.Decimal
}

// VoucherGenerator genera el comprobante PDF de una operación.
type VoucherGenerator interface {
	GenerateOperationVoucher(ctx context.Context, op *entity.Operation, lines []VoucherLine) ([]byte, error)
}

// VoucherUseCase genera el comprobante (albarán) de una operación ya aplicada.
type VoucherUseCase struct {
	operationRepo repository.OperationRepository
	productRepo   repository.ProductRepository
	generator     VoucherGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(operationRepo repository.OperationRepository, productRepo repository.ProductRepository, generator VoucherGenerator) *VoucherUseCase {
	return &VoucherUseCase{operationRepo: operationRepo, productRepo: productRepo, generator: generator}
}

// DownloadVoucher devuelve (pdfBytes, filename). Solo operaciones DONE.
func (uc *VoucherUseCase) DownloadVoucher(ctx context.Context, operationID string) ([]byte, string, error) {
	op, err := uc.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, "", fmt.Errorf("voucher: obtener operación: %w", err)
	}
	if op == nil {
		return nil, "", domain.ErrOperationNotFound
	}
	if op.Status != entity.StatusDone {
		return nil, "", domain.ErrOperationNotDone
	}

	lines := make([]VoucherLine, 0, len(op.Items))
	for _, it := range op.Items {
		line := VoucherLine{Requested: it.Qty, Done: it.DoneQty, ProductName: it.ProductID}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("voucher: obtener producto: %w", err)
		}
		if p != nil {
			line.SKU = p.SKU
			line.ProductName = p.Name
			line.UnitMeasure = p.UnitMeasure
		}
		lines = append(lines, line)
	}

	pdf, err := uc.generator.GenerateOperationVoucher(ctx, op, lines)
	if err != nil {
		return nil, "", err
	}
	name := op.Reference
	if name == "" {
		name = op.ID
	}
	return pdf, fmt.Sprintf("operacion-%s.pdf", name), nil
}
