package warehouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

func validRow(concept string, quantity int64) warehouse.ImportRow {
	return warehouse.ImportRow{
		Concept:     concept,
		Obra:        "Obra Calle Mayor",
		Description: "Material de obra",
		Quantity:    quantity,
		Location:    "Estantería B1",
	}
}

func TestImport_FilasValidasEInvalidas_ContinuaYAgrega(t *testing.T) {
	svc, _ := newTestService(t)

	rows := []warehouse.ImportRow{
		validRow("Cemento", 40),
		{Concept: "", Obra: "Obra X", Description: "sin concepto", Quantity: 1, Location: "A1"},
		validRow("Ladrillo", 0),
		{Concept: "Arena", Obra: "Obra X", Description: "cantidad negativa", Quantity: -5, Location: "A1"},
		validRow("Grava", 12),
	}
	result := svc.Import(context.Background(), operario, rows)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Imported, "las filas válidas se importan aunque haya inválidas en medio")
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row, "los números de fila son 1-based")
	assert.Equal(t, "concepto requerido", result.Errors[0].Reason)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "cantidad negativa", result.Errors[1].Reason)

	items := svc.Items(warehouse.ListFilter{})
	assert.Len(t, items, 3)

	// Cada alta registra su movimiento: 2 IN (con stock) + 1 CREATE (cantidad 0).
	movs := svc.Movements(0, 0)
	require.Len(t, movs, 3)
	var ins, creates int
	for _, m := range movs {
		switch m.Type {
		case entity.MovementTypeIN:
			ins++
		case entity.MovementTypeCREATE:
			creates++
		}
	}
	assert.Equal(t, 2, ins)
	assert.Equal(t, 1, creates)
}

func TestImport_CategoriaDesconocida_RechazaSoloEsaFila(t *testing.T) {
	svc, _ := newTestService(t)

	bad := validRow("Cable", 10)
	bad.Category = "NO-EXISTE"
	result := svc.Import(context.Background(), operario, []warehouse.ImportRow{
		validRow("Cemento", 5),
		bad,
	})

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "categoría desconocida", result.Errors[0].Reason)
}

func TestImport_RolSinPermiso_RechazaTodasLasFilas(t *testing.T) {
	svc, _ := newTestService(t)

	result := svc.Import(context.Background(), lector, []warehouse.ImportRow{
		validRow("Cemento", 5),
		validRow("Ladrillo", 3),
	})

	assert.Equal(t, 2, result.Total)
	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 2)
	for i, e := range result.Errors {
		assert.Equal(t, i+1, e.Row)
		assert.Equal(t, "rol sin permiso de entrada", e.Reason)
	}
	assert.Empty(t, svc.Items(warehouse.ListFilter{}))
	assert.Zero(t, svc.MovementCount())
}

func TestImport_LoteVacio(t *testing.T) {
	svc, _ := newTestService(t)

	result := svc.Import(context.Background(), operario, nil)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Errors)
}
