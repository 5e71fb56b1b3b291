package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/application/inventory"
)

// InventoryHandler maneja ítems y movimientos de inventario (protegido).
type InventoryHandler struct {
	uc        *inventory.RegisterMovementUseCase
	query     *inventory.StockQueryUseCase
	errors    ErrorWriter
	movements fiber.Handler
	lowStock  fiber.Handler
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, query *inventory.StockQueryUseCase, errors ErrorWriter) *InventoryHandler {
	h := &InventoryHandler{uc: uc, query: query, errors: errors}
	h.movements = paged(errors, func(c *fiber.Ctx, companyID string, q dto.MovementFilterRequest) (*dto.Page[dto.MovementResponse], error) {
		return h.query.ListMovements(c.UserContext(), companyID, c.Params("id"), q)
	})
	h.lowStock = paged(errors, func(c *fiber.Ctx, companyID string, q dto.PageRequest) (*dto.Page[dto.LowStockItemDTO], error) {
		return h.query.LowStock(c.UserContext(), companyID, q)
	})
	return h
}

// GetItem godoc
// @Summary      Obtener ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.query.GetItem(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  in suma, out resta (sin quedar negativo), adjustment fija el valor absoluto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del ítem"
// @Param        body  body  dto.RegisterMovementRequest  true  "type (in|out|adjustment), quantity entera >= 0, unit_cost (entradas)"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseBody[dto.RegisterMovementRequest](c)
	if !ok {
		return err
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Page[dto.MovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	return h.movements(c)
}

// LowStock godoc
// @Summary      Ítems en o bajo su nivel mínimo
// @Description  Ordenados por déficit, con la cantidad sugerida para volver al nivel objetivo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.Page[dto.LowStockItemDTO]
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return h.lowStock(c)
}
