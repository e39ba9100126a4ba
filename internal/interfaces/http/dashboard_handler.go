package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockops/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetKPIs godoc
// @Summary      KPIs de inventario
// @Description  Stock total, productos bajo mínimo y agotados, recepciones, entregas y traslados pendientes.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.KPIResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	kpis, err := h.uc.GetKPIs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(kpis)
}
