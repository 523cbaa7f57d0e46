package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/dto"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
)

// DashboardHandler expone los totales del panel de resumen.
type DashboardHandler struct {
	svc *warehouse.StockService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc *warehouse.StockService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary      Resumen del almacén
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	s := h.svc.Summarize(time.Now())
	return c.JSON(dto.SummaryResponse{
		TotalItems:     s.TotalItems,
		TotalUnits:     s.TotalUnits,
		MovementsToday: s.MovementsToday,
		LastMovementAt: s.LastMovementAt,
	})
}
