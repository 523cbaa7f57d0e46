package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/dto"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/domain"
	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP sobre el inventario.
//
// La validación y los códigos de estado viven aquí; el motor de stock repite
// las comprobaciones como defensa en profundidad y no genera errores por ellas.
type ItemHandler struct {
	svc *warehouse.StockService
}

// NewItemHandler construye el handler.
func NewItemHandler(svc *warehouse.StockService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List godoc
// @Summary      Listar inventario
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Búsqueda insensible a acentos"
// @Param        category  query  string  false  "Filtro por categoría"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items := h.svc.Items(warehouse.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	out := dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ToItemResponse(it))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	item, ok := h.svc.FindItem(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Categories godoc
// @Summary      Listar categorías válidas
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categories [get]
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(entity.Categorias)
}

// Receive godoc
// @Summary      Entrada de material desde obra
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveItemRequest  true  "Datos del material"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Concept == "" || in.Description == "" || in.Obra == "" || in.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "concept, description, obra y location son requeridos"})
	}
	if in.Category != "" && !entity.IsCategoria(in.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría desconocida"})
	}
	item, err := h.svc.Receive(c.Context(), CurrentUser(c), warehouse.ReceiveInput{
		Concept:     in.Concept,
		Description: in.Description,
		Obra:        in.Obra,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if item == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no aplicada"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(*item))
}

// Issue godoc
// @Summary      Salida de material hacia obra
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.IssueItemRequest  true  "Cantidad y obra de destino"
// @Success      204   "Salida registrada"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/issue [post]
func (h *ItemHandler) Issue(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.IssueItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser mayor que 0"})
	}
	item, ok := h.svc.FindItem(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	if in.Amount > item.Quantity {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: domain.ErrInsufficientStock.Error()})
	}
	if err := h.svc.Issue(c.Context(), CurrentUser(c), id, in.Amount, in.ObraDestino); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Baja manual de un item (solo Admin)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      204  "Item dado de baja"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.svc.FindItem(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	if err := h.svc.Delete(c.Context(), CurrentUser(c), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Update godoc
// @Summary      Editar descripción o imagen de un item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, ok := h.svc.FindItem(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	err := h.svc.UpdateMetadata(c.Context(), CurrentUser(c), id, warehouse.MetadataPatch{
		Description: in.Description,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	item, _ := h.svc.FindItem(id)
	return c.JSON(dto.ToItemResponse(item))
}
