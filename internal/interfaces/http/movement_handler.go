package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/dto"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
)

// MovementHandler expone el historial de movimientos. Las páginas recientes
// salen del espejo en memoria; el historial por item consulta la persistencia
// para no quedar acotado por el límite de carga del arranque.
type MovementHandler struct {
	svc     *warehouse.StockService
	movRepo repository.MovementRepository
}

// NewMovementHandler construye el handler.
func NewMovementHandler(svc *warehouse.StockService, movRepo repository.MovementRepository) *MovementHandler {
	return &MovementHandler{svc: svc, movRepo: movRepo}
}

// List godoc
// @Summary      Historial de movimientos (más recientes primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	movements := h.svc.Movements(limit, offset)
	out := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page: dto.PageResponse{
			Limit:  limit,
			Offset: offset,
			Total:  h.svc.MovementCount(),
		},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Historial de un item concreto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/items/{id}/movements [get]
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	movements, err := h.movRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.ToMovementResponse(*m))
	}
	return c.JSON(out)
}
