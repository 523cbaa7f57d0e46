package dto

// ImportRequest body para POST /api/items/import (importación masiva).
type ImportRequest struct {
	Rows []ImportRowRequest `json:"rows"`
}

// ImportRowRequest una fila del lote de importación.
type ImportRowRequest struct {
	Concept     string `json:"concept"`
	Obra        string `json:"obra"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Location    string `json:"location"`
}

// ImportRowErrorResponse error de una fila concreta (1-based).
type ImportRowErrorResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResultResponse resultado agregado del lote.
type ImportResultResponse struct {
	Total    int                      `json:"total"`
	Imported int                      `json:"imported"`
	Errors   []ImportRowErrorResponse `json:"errors,omitempty"`
}
