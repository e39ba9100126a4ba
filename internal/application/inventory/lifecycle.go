package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/pkg/logger"
)

// LifecycleUseCase transiciones previas a la validación: alta en DRAFT/WAITING,
// paso a READY y cancelación. Nunca escribe DONE (eso es exclusivo del ejecutor).
type LifecycleUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner TxRunner, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, log: log.Component("operation_lifecycle"), now: time.Now}
}

// CreateOperation registra una operación nueva. Los ajustes no se crean por aquí: el único
// camino para ADJUSTMENT es CreateAdjustmentUseCase.
func (uc *LifecycleUseCase) CreateOperation(ctx context.Context, in dto.CreateOperationRequest) (*entity.Operation, error) {
	typ, err := entity.ParseOperationType(in.Type)
	if err != nil {
		return nil, err
	}
	if typ == entity.OperationAdjustment {
		return nil, fmt.Errorf("%w: los ajustes se registran con /api/adjustments", domain.ErrInvalidInput)
	}
	status := entity.StatusDraft
	if strings.TrimSpace(in.Status) != "" {
		if status, err = entity.ParseOperationStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if status != entity.StatusDraft && status != entity.StatusWaiting {
		return nil, fmt.Errorf("%w: estado inicial %s", domain.ErrInvalidInput, status)
	}

	var schedule time.Time
	if in.ScheduleDate != nil {
		schedule = *in.ScheduleDate
	} else {
		schedule = uc.now()
	}
	op, err := entity.NewOperation(uuid.New().String(), typ, status, in.Partner, in.SourceLocation, in.DestinationLocation, schedule)
	if err != nil {
		return nil, err
	}
	op.Reference = strings.TrimSpace(in.Reference)
	for _, it := range in.Items {
		if it.Qty.IsNegative() {
			return nil, domain.ErrNegativeQuantity
		}
		if err := entity.CheckQuantityPrecision(it.Qty); err != nil {
			return nil, err
		}
		if err := op.AddItem(uuid.New().String(), it.ProductID, it.Qty, decimal.Zero); err != nil {
			return nil, err
		}
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		operationRepo repository.OperationRepository,
		_ repository.StockMoveRepository,
	) error {
		return operationRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("operation_id", op.ID).Str("type", string(op.Type)).Int("items", len(op.Items)).Msg("operación creada")
	return op, nil
}

// MarkReady pasa DRAFT/WAITING a READY cuando la operación tiene líneas y todos sus
// productos existen.
func (uc *LifecycleUseCase) MarkReady(ctx context.Context, operationID string) error {
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		_ repository.StockMoveRepository,
	) error {
		op, err := operationRepo.GetForUpdate(ctx, operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrOperationNotFound
		}
		if op.Status != entity.StatusDraft && op.Status != entity.StatusWaiting {
			return domain.ErrOperationNotPending
		}
		if len(op.Items) == 0 {
			return domain.ErrNoItems
		}
		for _, id := range entity.ProductIDs(op.Items) {
			p, err := productRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
		}
		return operationRepo.UpdateStatus(ctx, op.ID, entity.StatusReady)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("operation_id", operationID).Msg("operación lista para validar")
	return nil
}

// Cancel pasa cualquier estado no terminal a CANCELED.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, operationID string) error {
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		operationRepo repository.OperationRepository,
		_ repository.StockMoveRepository,
	) error {
		op, err := operationRepo.GetForUpdate(ctx, operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrOperationNotFound
		}
		if op.Status.IsTerminal() {
			return domain.ErrOperationNotCancelable
		}
		return operationRepo.UpdateStatus(ctx, op.ID, entity.StatusCanceled)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("operation_id", operationID).Msg("operación cancelada")
	return nil
}
