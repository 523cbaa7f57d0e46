package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/dto"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
)

// ImportHandler maneja la importación masiva de material.
type ImportHandler struct {
	svc *warehouse.StockService
}

// NewImportHandler construye el handler.
func NewImportHandler(svc *warehouse.StockService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Import godoc
// @Summary      Importación masiva de material
// @Description  Procesa cada fila de forma independiente: las filas inválidas
// @Description  se devuelven con su motivo y el resto se importa igualmente.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "Filas a importar"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows no puede estar vacío"})
	}

	rows := make([]warehouse.ImportRow, 0, len(in.Rows))
	for _, r := range in.Rows {
		rows = append(rows, warehouse.ImportRow{
			Concept:     r.Concept,
			Obra:        r.Obra,
			Category:    r.Category,
			Description: r.Description,
			Quantity:    r.Quantity,
			Location:    r.Location,
		})
	}
	result := h.svc.Import(c.Context(), CurrentUser(c), rows)

	out := dto.ImportResultResponse{Total: result.Total, Imported: result.Imported}
	for _, e := range result.Errors {
		out.Errors = append(out.Errors, dto.ImportRowErrorResponse{Row: e.Row, Reason: e.Reason})
	}
	return c.JSON(out)
}
