package warehouse

import (
	"context"
	"fmt"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

// ImportRow una fila de la importación masiva (concepto, obra, categoría
// opcional, descripción, cantidad, ubicación).
type ImportRow struct {
	Concept     string
	Obra        string
	Category    string
	Description string
	Quantity    int64
	Location    string
}

// ImportRowError error de una fila concreta; Row es 1-based.
type ImportRowError struct {
	Row    int
	Reason string
}

// ImportResult resultado agregado de una importación masiva.
type ImportResult struct {
	Total    int
	Imported int
	Errors   []ImportRowError
}

// Import ejecuta una entrada por cada fila válida. Los errores se recogen
// por fila y la importación continúa con las siguientes; nunca aborta el
// lote completo. Un rol sin permiso de entrada recibe todas las filas como
// rechazadas.
func (s *StockService) Import(ctx context.Context, user entity.User, rows []ImportRow) ImportResult {
	result := ImportResult{Total: len(rows)}

	for i, row := range rows {
		rowNum := i + 1
		if reason := validateImportRow(row); reason != "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: reason})
			s.metrics.IncImportFila("error")
			continue
		}
		if !allowed(user.Role, opReceive) {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: "rol sin permiso de entrada"})
			s.metrics.IncImportFila("error")
			continue
		}
		item, err := s.Receive(ctx, user, ReceiveInput{
			Concept:     row.Concept,
			Description: row.Description,
			Obra:        row.Obra,
			Quantity:    row.Quantity,
			Location:    row.Location,
			Category:    row.Category,
		})
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: fmt.Sprintf("persistencia: %v", err)})
			s.metrics.IncImportFila("error")
			continue
		}
		if item == nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: "fila rechazada por validación"})
			s.metrics.IncImportFila("error")
			continue
		}
		result.Imported++
		s.metrics.IncImportFila("ok")
	}
	return result
}

func validateImportRow(row ImportRow) string {
	switch {
	case row.Concept == "":
		return "concepto requerido"
	case row.Obra == "":
		return "obra requerida"
	case row.Description == "":
		return "descripción requerida"
	case row.Location == "":
		return "ubicación requerida"
	case row.Quantity < 0:
		return "cantidad negativa"
	case row.Category != "" && !entity.IsCategoria(row.Category):
		return "categoría desconocida"
	}
	return ""
}
