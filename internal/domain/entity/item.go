package entity

import "time"

// Categorias catálogo fijo de categorías de material del almacén.
var Categorias = []string{
	"CONSTRUCCION",
	"ELECTRODOMESTICOS",
	"ILUMINARIA",
	"JARDINERIA",
	"MOBILIARIO",
	"MOLDURAS",
	"PERFILERIA",
	"SANITARIOS",
	"SUELO Y TECHOS",
}

// IsCategoria indica si c pertenece al catálogo de categorías.
func IsCategoria(c string) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// Item representa un material almacenado: qué es, de qué obra procede,
// cuántas unidades quedan y dónde está ubicado dentro del almacén.
// Quantity nunca es negativa; un Item cuya cantidad llega a 0 por una
// salida se elimina del inventario (no se conserva en cero).
type Item struct {
	ID          string
	Concept     string
	Description string
	Obra        string // obra de procedencia
	Quantity    int64
	Location    string // ubicación dentro del almacén
	ImageURL    string // data-URI de la foto, o vacío
	Category    string // opcional, una de Categorias
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
