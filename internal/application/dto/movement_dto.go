package dto

import (
	"time"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

// MovementResponse representación de un movimiento del historial.
type MovementResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	ItemConcept     string    `json:"item_concept"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	Type            string    `json:"type"`
	QuantityChange  int64     `json:"quantity_change"`
	NewQuantity     int64     `json:"new_quantity"`
	Timestamp       time.Time `json:"timestamp"`
	Note            string    `json:"note,omitempty"`
	ObraProcedencia string    `json:"obra_procedencia,omitempty"`
	ObraDestino     string    `json:"obra_destino,omitempty"`
}

// MovementListResponse página del historial, más recientes primero.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ToMovementResponse mapea la entidad a su representación HTTP.
func ToMovementResponse(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		ItemConcept:     m.ItemConcept,
		UserID:          m.UserID,
		UserName:        m.UserName,
		Type:            m.Type,
		QuantityChange:  m.QuantityChange,
		NewQuantity:     m.NewQuantity,
		Timestamp:       m.Timestamp,
		Note:            m.Note,
		ObraProcedencia: m.ObraProcedencia,
		ObraDestino:     m.ObraDestino,
	}
}
