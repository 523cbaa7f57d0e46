package entity

import "time"

// Tipos de movimiento del historial.
const (
	MovementTypeCREATE = "CREATE" // alta sin stock
	MovementTypeIN     = "IN"     // entrada
	MovementTypeOUT    = "OUT"    // salida a obra
	MovementTypeREMOVE = "REMOVE" // baja del inventario
	MovementTypeADJUST = "ADJUST" // ajuste manual
)

// Movement es el registro inmutable de un evento que afecta al inventario.
// Una vez escrito no se actualiza ni se borra. ItemConcept es una copia del
// concepto en el momento del evento: el historial sigue siendo legible
// después de que la fila del Item desaparezca.
type Movement struct {
	ID              string
	ItemID          string
	ItemConcept     string
	UserID          string
	UserName        string
	Type            string
	QuantityChange  int64 // delta con signo
	NewQuantity     int64 // cantidad resultante tras el evento
	Timestamp       time.Time
	Note            string
	ObraProcedencia string
	ObraDestino     string
}
