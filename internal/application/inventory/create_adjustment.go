package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/domain/entity"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/pkg/logger"
)

const (
	defaultAdjustmentPartner = "Stock Adjustment"

	defaultClaimWait = 5 * time.Second
	claimPoll        = 25 * time.Millisecond
)

// AdjustmentInput conteo físico de un producto en una ubicación.
type AdjustmentInput struct {
	ProductID      string
	Location       string
	CountedQty     decimal.Decimal
	Reason         string // opcional; se usa como partner de la operación
	IdempotencyKey string // opcional
}

// CreateAdjustmentUseCase registra un conteo como operación ADJUSTMENT ya en DONE.
// El valor contado es la verdad absoluta: no pasa por READY ni por el validador.
type CreateAdjustmentUseCase struct {
	txRunner  TxRunner
	idem      IdempotencyStore // nil = sin idempotencia
	log       *logger.Logger
	now       func() time.Time
	claimWait time.Duration
}

// NewCreateAdjustmentUseCase construye el caso de uso. idem puede ser nil.
func NewCreateAdjustmentUseCase(txRunner TxRunner, idem IdempotencyStore, log *logger.Logger) *CreateAdjustmentUseCase {
	return &CreateAdjustmentUseCase{
		txRunner:  txRunner,
		idem:      idem,
		log:       log.Component("create_adjustment"),
		now:       time.Now,
		claimWait: defaultClaimWait,
	}
}

// CreateAdjustment crea la operación (una línea con |contado - actual|), deja el stock en
// el valor contado y agrega el StockMove, todo en una transacción. Devuelve el ID de la operación.
func (uc *CreateAdjustmentUseCase) CreateAdjustment(ctx context.Context, in AdjustmentInput) (string, error) {
	productID := strings.TrimSpace(in.ProductID)
	location := entity.NormalizeLocation(in.Location)
	if productID == "" || location == "" {
		return "", domain.ErrInvalidInput
	}
	if in.CountedQty.IsNegative() {
		return "", domain.ErrNegativeQuantity
	}
	if err := entity.CheckQuantityPrecision(in.CountedQty); err != nil {
		return "", err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if uc.idem == nil {
		key = ""
	}
	token := uuid.New().String()
	if key != "" {
		id, err := uc.claim(ctx, key, token)
		if err != nil {
			return "", err
		}
		if id != "" {
			uc.log.Info().Str("operation_id", id).Str("idempotency_key", key).Msg("ajuste repetido, se devuelve el existente")
			return id, nil
		}
	}

	partner := strings.TrimSpace(in.Reason)
	if partner == "" {
		partner = defaultAdjustmentPartner
	}

	var (
		opID       string
		difference decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		moveRepo repository.StockMoveRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		now := uc.now()
		difference = in.CountedQty.Sub(product.CurrentStock)
		qty := difference.Abs()

		op, err := entity.NewOperation(uuid.New().String(), entity.OperationAdjustment, entity.StatusDone,
			partner, location, location, now)
		if err != nil {
			return err
		}
		if err := op.AddItem(uuid.New().String(), productID, qty, qty); err != nil {
			return err
		}
		if err := operationRepo.Create(ctx, op); err != nil {
			return err
		}

		// current + (contado - current) = contado: misma primitiva que el ejecutor.
		if _, err := NewStockLedger(productRepo).ApplyDelta(ctx, productID, difference); err != nil {
			return err
		}

		move, err := entity.NewStockMove(uuid.New().String(), productID, qty,
			location, location, "Adjustment for "+product.Name, entity.StatusDone, now)
		if err != nil {
			return err
		}
		if err := moveRepo.Create(ctx, move); err != nil {
			return err
		}
		opID = op.ID
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", productID).
			Str("reason", domain.Reason(err)).
			Msg("ajuste rechazado")
		if key != "" {
			if rerr := uc.idem.Release(context.WithoutCancel(ctx), key, token); rerr != nil {
				uc.log.Error().Err(rerr).Str("idempotency_key", key).Msg("no se pudo liberar la clave de idempotencia")
			}
		}
		return "", err
	}

	if key != "" {
		if err := uc.idem.Complete(context.WithoutCancel(ctx), key, token, opID); err != nil {
			uc.log.Error().Err(err).Str("operation_id", opID).Msg("no se pudo registrar la clave de idempotencia")
		}
	}

	uc.log.Info().
		Str("operation_id", opID).
		Str("product_id", productID).
		Str("counted", in.CountedQty.String()).
		Str("difference", difference.String()).
		Msg("ajuste registrado")
	return opID, nil
}

// claim reserva key para token. Devuelve el ID ya registrado cuando la clave está completada;
// si otro ajuste la tiene reservada espera a que termine, hasta claimWait.
func (uc *CreateAdjustmentUseCase) claim(ctx context.Context, key, token string) (string, error) {
	deadline := time.NewTimer(uc.claimWait)
	defer deadline.Stop()
	tick := time.NewTicker(claimPoll)
	defer tick.Stop()

	for {
		id, claimed, err := uc.idem.Claim(ctx, key, token)
		if err != nil {
			return "", domain.Transient(err)
		}
		if claimed || id != "" {
			return id, nil
		}
		select {
		case <-ctx.Done():
			return "", domain.Transient(ctx.Err())
		case <-deadline.C:
			return "", domain.ErrAdjustmentInProgress
		case <-tick.C:
		}
	}
}
