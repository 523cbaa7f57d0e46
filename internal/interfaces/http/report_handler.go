package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/dto"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/infrastructure/pdf"
)

// reportMovementsLimit movimientos incluidos en el informe de historial.
const reportMovementsLimit = 500

// ReportHandler genera los informes PDF descargables.
type ReportHandler struct {
	svc *warehouse.StockService
	gen *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler de informes.
func NewReportHandler(svc *warehouse.StockService, gen *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{svc: svc, gen: gen}
}

// Stock godoc
// @Summary      Informe PDF del stock actual
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        search    query  string  false  "Búsqueda insensible a acentos"
// @Param        category  query  string  false  "Filtro por categoría"
// @Success      200  {file}  binary
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	items := h.svc.Items(warehouse.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	now := time.Now()
	data, err := h.gen.GenerateStockReport(items, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendPDF(c, fmt.Sprintf("stock-%s.pdf", now.Format("2006-01-02")), data)
}

// Movements godoc
// @Summary      Informe PDF del historial de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	movements := h.svc.Movements(reportMovementsLimit, 0)
	now := time.Now()
	data, err := h.gen.GenerateMovementsReport(movements, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendPDF(c, fmt.Sprintf("movimientos-%s.pdf", now.Format("2006-01-02")), data)
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
