package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
)

// OperationHandler rutas de operaciones: validación, ciclo de vida, lectura y comprobante.
type OperationHandler struct {
	validateUC  *inventory.ValidateOperationUseCase
	lifecycleUC *inventory.LifecycleUseCase
	queryUC     *inventory.QueryUseCase
	voucherUC   *inventory.VoucherUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(
	validateUC *inventory.ValidateOperationUseCase,
	lifecycleUC *inventory.LifecycleUseCase,
	queryUC *inventory.QueryUseCase,
	voucherUC *inventory.VoucherUseCase,
) *OperationHandler {
	return &OperationHandler{validateUC: validateUC, lifecycleUC: lifecycleUC, queryUC: queryUC, voucherUC: voucherUC}
}

// Validate godoc
// @Summary      Validar y aplicar una operación READY
// @Description  Aplica los movimientos de stock de la operación en una sola transacción.
// @Tags         operations
// @Produce      json
// @Param        id   path      string  true  "ID de la operación"
// @Success      200  {object}  dto.ValidateOperationResult
// @Failure      404  {object}  dto.ValidateOperationResult
// @Failure      409  {object}  dto.ValidateOperationResult
// @Failure      422  {object}  dto.ValidateOperationResult
// @Failure      503  {object}  dto.ValidateOperationResult
// @Router       /api/operations/{id}/validate [post]
func (h *OperationHandler) Validate(c *fiber.Ctx) error {
	if err := h.validateUC.Execute(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(statusFor(err)).JSON(dto.ValidateOperationResult{OK: false, Error: domain.Reason(err)})
	}
	return c.JSON(dto.ValidateOperationResult{OK: true})
}

// Create godoc
// @Summary      Crear operación (DRAFT o WAITING)
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOperationRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if msg := validateStruct(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	op, err := h.lifecycleUC.CreateOperation(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToOperationResponse(op, true))
}

// MarkReady godoc
// @Summary      Pasar operación a READY
// @Tags         operations
// @Produce      json
// @Param        id   path      string  true  "ID de la operación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/ready [post]
func (h *OperationHandler) MarkReady(c *fiber.Ctx) error {
	if err := h.lifecycleUC.MarkReady(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "READY"})
}

// Cancel godoc
// @Summary      Cancelar operación
// @Tags         operations
// @Produce      json
// @Param        id   path      string  true  "ID de la operación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/cancel [post]
func (h *OperationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.lifecycleUC.Cancel(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "CANCELED"})
}

// List godoc
// @Summary      Listar operaciones
// @Tags         operations
// @Produce      json
// @Param        type    query     string  false  "INCOMING | OUTGOING | INTERNAL | ADJUSTMENT"
// @Param        status  query     string  false  "DRAFT | WAITING | READY | DONE | CANCELED"
// @Param        limit   query     int     false  "Máx. 100"
// @Param        offset  query     int     false  "Desplazamiento"
// @Success      200     {object}  dto.OperationListResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Invalid pagination"})
	}
	out, err := h.queryUC.ListOperations(c.UserContext(), c.Query("type"), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener operación con sus líneas
// @Tags         operations
// @Produce      json
// @Param        id   path      string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) Get(c *fiber.Ctx) error {
	out, err := h.queryUC.GetOperation(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Comprobante PDF de una operación DONE
// @Tags         operations
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la operación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/pdf [get]
func (h *OperationHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.voucherUC.DownloadVoucher(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
