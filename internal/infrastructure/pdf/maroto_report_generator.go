// Package pdf genera los informes imprimibles del almacén con Maroto v2:
// el estado actual del inventario y el historial de movimientos.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera los informes PDF del almacén.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

func headerRows(title string, generatedAt time.Time) []core.Row {
	return []core.Row{
		row.New(12).Add(
			col.New(8).Add(
				text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			),
			col.New(4).Add(
				text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Top: 3, Align: align.Right, Color: colorGray}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

// GenerateStockReport genera el informe del stock actual y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(items []entity.Item, generatedAt time.Time) ([]byte, error) {
	m := newDocument("Stock del Almacén")
	for _, r := range headerRows("Stock del Almacén", generatedAt) {
		m.AddRows(r)
	}

	m.AddRows(row.New(8).Add(
		boldCell(3, "Concepto"),
		boldCell(2, "Obra"),
		boldCell(3, "Descripción"),
		boldCell(1, "Cant."),
		boldCell(2, "Ubicación"),
		boldCell(1, "Categoría"),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	for _, it := range items {
		m.AddRows(row.New(7).Add(
			cell(3, it.Concept),
			cell(2, it.Obra),
			cell(3, it.Description),
			cell(1, fmt.Sprintf("%d", it.Quantity)),
			cell(2, it.Location),
			cell(1, it.Category),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	m.AddRows(row.New(8).Add(
		boldCell(10, fmt.Sprintf("Items: %d", len(items))),
		boldCell(2, fmt.Sprintf("Total uds: %d", total)),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de stock: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateMovementsReport genera el informe del historial de movimientos.
func (g *MarotoReportGenerator) GenerateMovementsReport(movements []entity.Movement, generatedAt time.Time) ([]byte, error) {
	m := newDocument("Historial de Movimientos")
	for _, r := range headerRows("Historial de Movimientos", generatedAt) {
		m.AddRows(r)
	}

	m.AddRows(row.New(8).Add(
		boldCell(2, "Fecha / Hora"),
		boldCell(3, "Producto"),
		boldCell(1, "Tipo"),
		boldCell(1, "Cambio"),
		boldCell(1, "Stock"),
		boldCell(2, "Usuario"),
		boldCell(2, "Destino"),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	for _, mov := range movements {
		m.AddRows(row.New(7).Add(
			cell(2, mov.Timestamp.Format("02/01/2006 15:04")),
			cell(3, mov.ItemConcept),
			cell(1, movementTypeLabel(mov.Type)),
			cell(1, fmt.Sprintf("%+d", mov.QuantityChange)),
			cell(1, fmt.Sprintf("%d", mov.NewQuantity)),
			cell(2, mov.UserName),
			cell(2, mov.ObraDestino),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de movimientos: %w", err)
	}
	return doc.GetBytes(), nil
}

// movementTypeLabel etiquetas en castellano para el informe.
func movementTypeLabel(t string) string {
	switch t {
	case entity.MovementTypeIN:
		return "Entrada"
	case entity.MovementTypeOUT:
		return "Salida"
	case entity.MovementTypeCREATE:
		return "Creación"
	case entity.MovementTypeREMOVE:
		return "Baja"
	default:
		return "Ajuste"
	}
}

func cell(size int, value string) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1}))
}

func boldCell(size int, value string) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Style: fontstyle.Bold}))
}
