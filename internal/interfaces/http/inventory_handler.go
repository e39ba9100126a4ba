package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
)

// HeaderIdempotencyKey cabecera opcional para reintentos seguros de POST /api/adjustments.
const HeaderIdempotencyKey = "Idempotency-Key"

// InventoryHandler ajustes por conteo y lecturas del libro de movimientos.
type InventoryHandler struct {
	adjustmentUC *inventory.CreateAdjustmentUseCase
	queryUC      *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustmentUC *inventory.CreateAdjustmentUseCase, queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustmentUC: adjustmentUC, queryUC: queryUC}
}

// CreateAdjustment godoc
// @Summary      Ajustar stock a una cantidad contada
// @Description  Crea una operación ADJUSTMENT en DONE y deja current_stock en countedQty.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                       false  "Clave para reintentos"
// @Param        body             body      dto.CreateAdjustmentRequest  true   "productId, location, countedQty, reason"
// @Success      201              {object}  dto.CreateAdjustmentResult
// @Failure      400              {object}  dto.CreateAdjustmentResult
// @Failure      404              {object}  dto.CreateAdjustmentResult
// @Failure      422              {object}  dto.CreateAdjustmentResult
// @Failure      503              {object}  dto.CreateAdjustmentResult
// @Router       /api/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateAdjustmentResult{Error: "Invalid request body"})
	}
	if msg := validateStruct(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateAdjustmentResult{Error: msg})
	}
	id, err := h.adjustmentUC.CreateAdjustment(c.UserContext(), inventory.AdjustmentInput{
		ProductID:      in.ProductID,
		Location:       in.Location,
		CountedQty:     *in.CountedQty,
		Reason:         in.Reason,
		IdempotencyKey: strings.TrimSpace(c.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return c.Status(statusFor(err)).JSON(dto.CreateAdjustmentResult{Error: domain.Reason(err)})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateAdjustmentResult{ID: id})
}

// ListMoves godoc
// @Summary      Libro de movimientos (más recientes primero)
// @Tags         inventory
// @Produce      json
// @Param        limit   query     int  false  "Máx. 100"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.StockMoveListResponse
// @Router       /api/moves [get]
func (h *InventoryHandler) ListMoves(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Invalid pagination"})
	}
	out, err := h.queryUC.ListMoves(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockByLocation godoc
// @Summary      Stock acumulado por ubicación destino
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {array}   dto.StockByLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock-by-location [get]
func (h *InventoryHandler) StockByLocation(c *fiber.Ctx) error {
	out, err := h.queryUC.StockByLocation(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
