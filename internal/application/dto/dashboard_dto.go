package dto

import "time"

// SummaryResponse totales para el panel de resumen del almacén.
type SummaryResponse struct {
	TotalItems     int        `json:"total_items"`
	TotalUnits     int64      `json:"total_units"`
	MovementsToday int        `json:"movements_today"`
	LastMovementAt *time.Time `json:"last_movement_at,omitempty"`
}
