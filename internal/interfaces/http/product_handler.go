package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockops/internal/application/inventory"
)

// ProductHandler nivel de stock por producto y lista de reposición.
type ProductHandler struct {
	uc *inventory.ReplenishmentUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.ReplenishmentUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetStock godoc
// @Summary      Nivel de stock de un producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.ProductStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su mínimo, con la cantidad sugerida para llegar a mínimo × 1.5.
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/products/replenishment [get]
func (h *ProductHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.Suggestions(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
