// Package bootstrap arma los adaptadores (Postgres o memoria, Redis) y los casos de uso
// compartidos por cmd/api y cmd/stockctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/stockops/internal/application/analytics"
	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain/repository"
	"github.com/jhoicas/stockops/internal/infrastructure/cache"
	"github.com/jhoicas/stockops/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockops/internal/infrastructure/pdf"
	"github.com/jhoicas/stockops/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockops/internal/interfaces/http"
	"github.com/jhoicas/stockops/pkg/config"
	"github.com/jhoicas/stockops/pkg/logger"
)

// Container adaptadores y casos de uso listos para usar.
type Container struct {
	Pool *pgxpool.Pool // nil con STORE_BACKEND=memory

	TxRunner      inventory.TxRunner
	ProductRepo   repository.ProductRepository
	OperationRepo repository.OperationRepository
	MoveRepo      repository.StockMoveRepository
	Idempotency   inventory.IdempotencyStore

	ValidateOperation *inventory.ValidateOperationUseCase
	CreateAdjustment  *inventory.CreateAdjustmentUseCase
	Lifecycle         *inventory.LifecycleUseCase
	Queries           *inventory.QueryUseCase
	Voucher           *inventory.VoucherUseCase
	Replenishment     *inventory.ReplenishmentUseCase
	Dashboard         *appanalytics.DashboardUseCase

	Checks map[string]httpRouter.Pinger

	closers []func()
}

// Close libera conexiones en orden inverso al de apertura.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// New conecta los adaptadores según cfg.App.Store y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Checks: map[string]httpRouter.Pinger{}}

	switch cfg.App.Store {
	case "memory":
		store := memory.NewStore()
		c.TxRunner = store
		c.ProductRepo = store.Products()
		c.OperationRepo = store.Operations()
		c.MoveRepo = store.Moves()
		c.Idempotency = store
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		c.Pool = pool
		c.TxRunner = postgres.NewTxRunner(pool, cfg.DB.LockTimeout, cfg.DB.StatementTimeout)
		c.ProductRepo = postgres.NewProductRepository(pool)
		c.OperationRepo = postgres.NewOperationRepository(pool)
		c.MoveRepo = postgres.NewStockMoveRepository(pool)
		c.Checks["postgres"] = pool
	}

	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		idem := cache.NewIdempotencyStore(rdb, cfg.Idempotency.TTL)
		c.Idempotency = idem
		c.Checks["redis"] = idem
	} else if c.Idempotency == nil {
		// Sin Redis las claves solo viven en este proceso.
		c.Idempotency = memory.NewStore()
	}

	c.ValidateOperation = inventory.NewValidateOperationUseCase(c.TxRunner, log)
	c.CreateAdjustment = inventory.NewCreateAdjustmentUseCase(c.TxRunner, c.Idempotency, log)
	c.Lifecycle = inventory.NewLifecycleUseCase(c.TxRunner, log)
	c.Queries = inventory.NewQueryUseCase(c.ProductRepo, c.OperationRepo, c.MoveRepo)
	c.Replenishment = inventory.NewReplenishmentUseCase(c.ProductRepo)
	c.Voucher = inventory.NewVoucherUseCase(c.OperationRepo, c.ProductRepo, infrapdf.NewMarotoVoucherGenerator(cfg.App.Name))
	c.Dashboard = appanalytics.NewDashboardUseCase(c.ProductRepo, c.OperationRepo)
	return c, nil
}

// RouterDeps adapta el contenedor a las dependencias del router HTTP.
func (c *Container) RouterDeps(service string) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		ValidateOperation: c.ValidateOperation,
		CreateAdjustment:  c.CreateAdjustment,
		Lifecycle:         c.Lifecycle,
		Queries:           c.Queries,
		Voucher:           c.Voucher,
		Replenishment:     c.Replenishment,
		Dashboard:         c.Dashboard,
		Health:            httpRouter.NewHealthHandler(service, c.Checks),
	}
}
