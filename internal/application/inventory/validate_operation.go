package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/inventory"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/pkg/logger"
)

// ValidateOperationUseCase lleva una operación READY a DONE en una sola transacción:
// bloquea la cabecera (SELECT FOR UPDATE), bloquea los productos, valida, aplica los deltas
// vía StockLedger, registra un StockMove por línea, persiste done_qty y marca DONE.
type ValidateOperationUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewValidateOperationUseCase construye el caso de uso.
func NewValidateOperationUseCase(txRunner TxRunner, log *logger.Logger) *ValidateOperationUseCase {
	return &ValidateOperationUseCase{
		txRunner: txRunner,
		log:      log.Component("validate_operation"),
		now:      time.Now,
	}
}

// ValidateOperation adapta Execute al contrato de los clientes: {ok:true} o {ok:false, error}.
func (uc *ValidateOperationUseCase) ValidateOperation(ctx context.Context, operationID string) dto.ValidateOperationResult {
	if err := uc.Execute(ctx, operationID); err != nil {
		return dto.ValidateOperationResult{OK: false, Error: domain.Reason(err)}
	}
	return dto.ValidateOperationResult{OK: true}
}

// Execute valida y aplica la operación. Los rechazos son *domain.RejectionError
// (posiblemente envueltos); los fallos del almacén se envuelven con domain.ErrTransient.
func (uc *ValidateOperationUseCase) Execute(ctx context.Context, operationID string) error {
	var applied int
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		moveRepo repository.StockMoveRepository,
	) error {
		op, err := operationRepo.GetForUpdate(ctx, operationID)
		if err != nil {
			return err
		}

		var items []entity.OperationItem
		stock := map[string]decimal.Decimal{}
		if op != nil {
			items = op.Items
			products, err := productRepo.GetManyForUpdate(ctx, entity.ProductIDs(items))
			if err != nil {
				return err
			}
			for _, p := range products {
				stock[p.ID] = p.CurrentStock
			}
		}

		plan, err := inventory.Validate(op, items, stock)
		if err != nil {
			return err
		}
		for _, line := range plan.Lines {
			if _, ok := stock[line.ProductID]; !ok {
				return domain.ErrProductNotFound
			}
		}

		ledger := NewStockLedger(productRepo)
		moveStatus := inventory.MoveStatus(op)
		now := uc.now()
		for _, line := range plan.Lines {
			if !line.Delta.IsZero() {
				if _, err := ledger.ApplyDelta(ctx, line.ProductID, line.Delta); err != nil {
					return err
				}
			}
			move, err := entity.NewStockMove(uuid.New().String(), line.ProductID, line.Quantity,
				op.SourceLocation, op.DestinationLocation, op.Reference, moveStatus, now)
			if err != nil {
				return err
			}
			if err := moveRepo.Create(ctx, move); err != nil {
				return err
			}
			if err := operationRepo.UpdateItemDoneQty(ctx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		applied = len(plan.Lines)
		return operationRepo.UpdateStatus(ctx, op.ID, entity.StatusDone)
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("operation_id", operationID).
			Str("reason", domain.Reason(err)).
			Msg("validación rechazada")
		return err
	}
	uc.log.Info().
		Str("operation_id", operationID).
		Int("items", applied).
		Msg("operación validada")
	return nil
}
