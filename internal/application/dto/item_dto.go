package dto

import (
	"time"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

// ReceiveItemRequest body para POST /api/items (entrada de material).
type ReceiveItemRequest struct {
	Concept     string `json:"concept"`
	Description string `json:"description"`
	Obra        string `json:"obra"`
	Quantity    int64  `json:"quantity"`
	Location    string `json:"location"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// IssueItemRequest body para POST /api/items/{id}/issue (salida a obra).
type IssueItemRequest struct {
	Amount      int64  `json:"amount"`
	ObraDestino string `json:"obra_destino"`
}

// UpdateItemRequest body para PATCH /api/items/{id}. Solo los campos
// presentes se aplican.
type UpdateItemRequest struct {
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// ItemResponse representación de un item en respuestas.
type ItemResponse struct {
	ID          string    `json:"id"`
	Concept     string    `json:"concept"`
	Description string    `json:"description"`
	Obra        string    `json:"obra"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListResponse listado de inventario.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ToItemResponse mapea la entidad a su representación HTTP.
func ToItemResponse(it entity.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Concept:     it.Concept,
		Description: it.Description,
		Obra:        it.Obra,
		Quantity:    it.Quantity,
		Location:    it.Location,
		ImageURL:    it.ImageURL,
		Category:    it.Category,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
