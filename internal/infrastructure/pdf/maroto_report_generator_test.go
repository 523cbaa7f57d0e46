package pdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/infrastructure/pdf"
)

func TestGenerateStockReport_ProduceDocumentoPDF(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()
	now := time.Now()
	items := []entity.Item{
		{
			ID:          "i-1",
			Concept:     "Cemento CEM II",
			Description: "Sacos de 25kg",
			Obra:        "Obra Calle Mayor",
			Quantity:    40,
			Location:    "Estantería A3",
			Category:    "CONSTRUCCION",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	data, err := gen.GenerateStockReport(items, now)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "el documento debe empezar con la cabecera PDF")
}

func TestGenerateStockReport_InventarioVacio(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()

	data, err := gen.GenerateStockReport(nil, time.Now())
	require.NoError(t, err, "un inventario vacío genera un informe sin filas")
	assert.NotEmpty(t, data)
}

func TestGenerateMovementsReport_ProduceDocumentoPDF(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()
	now := time.Now()
	movements := []entity.Movement{
		{
			ID:              "m-2",
			ItemID:          "i-1",
			ItemConcept:     "Cemento CEM II",
			UserName:        "Oscar Operario",
			Type:            entity.MovementTypeOUT,
			QuantityChange:  -15,
			NewQuantity:     25,
			Timestamp:       now,
			ObraProcedencia: "Almacén",
			ObraDestino:     "Obra Río Seco",
		},
		{
			ID:             "m-1",
			ItemID:         "i-1",
			ItemConcept:    "Cemento CEM II",
			UserName:       "Oscar Operario",
			Type:           entity.MovementTypeIN,
			QuantityChange: 40,
			NewQuantity:    40,
			Timestamp:      now.Add(-time.Hour),
		},
	}

	data, err := gen.GenerateMovementsReport(movements, now)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
