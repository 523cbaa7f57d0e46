package warehouse_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
	"github.com/axisignaser/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de persistencia
// ──────────────────────────────────────────────────────────────────────────────

var errFalloInyectado = errors.New("fallo de persistencia inyectado")

// fakeDB almacena items y movimientos en memoria. Los flags fail* fuerzan
// el error en la escritura correspondiente para probar el rollback.
type fakeDB struct {
	items     []*entity.Item     // más recientes primero
	movements []*entity.Movement // más recientes primero

	failCreateItem     bool
	failCreateMovement bool
	failUpdateQuantity bool
	failDelete         bool
}

type fakeItemRepo struct{ db *fakeDB }

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.Item) error {
	if r.db.failCreateItem {
		return errFalloInyectado
	}
	copied := *item
	r.db.items = append([]*entity.Item{&copied}, r.db.items...)
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	if r.db.failUpdateQuantity {
		return errFalloInyectado
	}
	for _, it := range r.db.items {
		if it.ID == id {
			it.Quantity = quantity
			it.UpdatedAt = updatedAt
			return nil
		}
	}
	return fmt.Errorf("item %s no existe", id)
}

func (r *fakeItemRepo) UpdateMetadata(id string, description, imageURL *string, updatedAt time.Time) error {
	for _, it := range r.db.items {
		if it.ID == id {
			if description != nil {
				it.Description = *description
			}
			if imageURL != nil {
				it.ImageURL = *imageURL
			}
			it.UpdatedAt = updatedAt
			return nil
		}
	}
	return fmt.Errorf("item %s no existe", id)
}

func (r *fakeItemRepo) Delete(id string) error {
	if r.db.failDelete {
		return errFalloInyectado
	}
	for i, it := range r.db.items {
		if it.ID == id {
			r.db.items = append(r.db.items[:i], r.db.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeItemRepo) ListAll() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.db.items))
	for _, it := range r.db.items {
		copied := *it
		out = append(out, &copied)
	}
	return out, nil
}

type fakeMovementRepo struct{ db *fakeDB }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.db.failCreateMovement {
		return errFalloInyectado
	}
	copied := *m
	r.db.movements = append([]*entity.Movement{&copied}, r.db.movements...)
	return nil
}

func (r *fakeMovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(r.db.movements))
	for _, m := range r.db.movements {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.db.movements {
		if m.ItemID == itemID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeTxRunner simula la transacción: toma un snapshot del estado y lo
// restaura si fn devuelve error (rollback).
type fakeTxRunner struct{ db *fakeDB }

var _ warehouse.TxRunner = (*fakeTxRunner)(nil)

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	snapItems := append([]*entity.Item(nil), tx.db.items...)
	snapMovs := append([]*entity.Movement(nil), tx.db.movements...)
	if err := fn(&fakeItemRepo{db: tx.db}, &fakeMovementRepo{db: tx.db}); err != nil {
		tx.db.items = snapItems
		tx.db.movements = snapMovs
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	admin    = entity.User{ID: "u-admin", Name: "Ana Admin", Role: entity.RoleAdmin}
	operario = entity.User{ID: "u-oper", Name: "Oscar Operario", Role: entity.RoleOperario}
	lector   = entity.User{ID: "u-lect", Name: "Lucía Lectora", Role: entity.RoleSoloLectura}
)

func newTestService(t *testing.T) (*warehouse.StockService, *fakeDB) {
	t.Helper()
	db := &fakeDB{}
	svc := warehouse.NewStockService(
		&fakeTxRunner{db: db},
		&fakeItemRepo{db: db},
		&fakeMovementRepo{db: db},
		logger.Nop(),
		nil,
	)
	require.NoError(t, svc.Load(context.Background()))
	return svc, db
}

func receiveCemento(t *testing.T, svc *warehouse.StockService, quantity int64) entity.Item {
	t.Helper()
	item, err := svc.Receive(context.Background(), operario, warehouse.ReceiveInput{
		Concept:     "Cemento CEM II",
		Description: "Sacos de 25kg",
		Obra:        "Obra Calle Mayor",
		Quantity:    quantity,
		Location:    "Estantería A3",
		Category:    "CONSTRUCCION",
	})
	require.NoError(t, err)
	require.NotNil(t, item, "la entrada debe aplicarse")
	return *item
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive (entrada de material)
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_EntradaConStock_RegistraIN(t *testing.T) {
	svc, db := newTestService(t)

	item := receiveCemento(t, svc, 40)

	assert.Equal(t, int64(40), item.Quantity)
	require.Len(t, db.items, 1, "el item debe persistirse")
	require.Len(t, db.movements, 1, "debe persistirse exactamente un movimiento")

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 1)
	mov := movs[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, item.ID, mov.ItemID)
	assert.Equal(t, int64(40), mov.QuantityChange)
	assert.Equal(t, int64(40), mov.NewQuantity)
	assert.Equal(t, operario.ID, mov.UserID)
	assert.Equal(t, operario.Name, mov.UserName)
	assert.Equal(t, "Obra Calle Mayor", mov.ObraProcedencia)
	assert.Equal(t, "Almacén", mov.ObraDestino)
	assert.Equal(t, "Entrada: 40 uds. Ubicación: Estantería A3. Obra: Obra Calle Mayor", mov.Note)
}

func TestReceive_CantidadCero_RegistraCREATE(t *testing.T) {
	svc, _ := newTestService(t)

	item := receiveCemento(t, svc, 0)
	assert.Equal(t, int64(0), item.Quantity)

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeCREATE, movs[0].Type)
	assert.Equal(t, int64(0), movs[0].QuantityChange)
	assert.Equal(t, "Material recogido de obra: Obra Calle Mayor", movs[0].Note)
}

func TestReceive_CantidadNegativa_SeRecortaACero(t *testing.T) {
	svc, _ := newTestService(t)

	item := receiveCemento(t, svc, -15)

	assert.Equal(t, int64(0), item.Quantity, "cantidad negativa debe recortarse a 0")
	movs := svc.Movements(0, 0)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeCREATE, movs[0].Type,
		"tras el recorte la entrada queda en 0 y registra CREATE")
}

func TestReceive_CampoObligatorioVacio_NoOpSilencioso(t *testing.T) {
	svc, db := newTestService(t)

	item, err := svc.Receive(context.Background(), operario, warehouse.ReceiveInput{
		Concept:  "Cemento",
		Obra:     "Obra X",
		Location: "A1",
		// Description vacío
		Quantity: 5,
	})
	require.NoError(t, err, "la validación fallida no produce error")
	assert.Nil(t, item)
	assert.Empty(t, db.items)
	assert.Empty(t, db.movements)
}

func TestReceive_SoloLectura_NoOpSilencioso(t *testing.T) {
	svc, db := newTestService(t)

	item, err := svc.Receive(context.Background(), lector, warehouse.ReceiveInput{
		Concept:     "Cemento",
		Description: "Sacos",
		Obra:        "Obra X",
		Quantity:    5,
		Location:    "A1",
	})
	require.NoError(t, err, "el rechazo por rol no produce error")
	assert.Nil(t, item)
	assert.Empty(t, db.items)
	assert.Empty(t, db.movements)
}

func TestReceive_FalloPersistencia_NoTocaEspejos(t *testing.T) {
	svc, db := newTestService(t)
	db.failCreateMovement = true

	item, err := svc.Receive(context.Background(), operario, warehouse.ReceiveInput{
		Concept:     "Cemento",
		Description: "Sacos",
		Obra:        "Obra X",
		Quantity:    5,
		Location:    "A1",
	})
	require.Error(t, err)
	assert.Nil(t, item)

	assert.Empty(t, db.items, "el rollback debe deshacer la fila del item")
	assert.Empty(t, db.movements)
	assert.Empty(t, svc.Items(warehouse.ListFilter{}), "el espejo no debe cambiar si la operación no confirmó")
	assert.Zero(t, svc.MovementCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue (salida de material)
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_SalidaParcial_DescuentaYRegistraOUT(t *testing.T) {
	svc, db := newTestService(t)
	item := receiveCemento(t, svc, 40)

	err := svc.Issue(context.Background(), operario, item.ID, 15, "Obra Río Seco")
	require.NoError(t, err)

	got, ok := svc.FindItem(item.ID)
	require.True(t, ok, "con stock restante el item sigue en el inventario")
	assert.Equal(t, int64(25), got.Quantity)

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 2)
	out := movs[0]
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, int64(-15), out.QuantityChange)
	assert.Equal(t, int64(25), out.NewQuantity)
	assert.Equal(t, "Salida a obra: Obra Río Seco", out.Note)
	assert.Equal(t, "Almacén", out.ObraProcedencia)
	assert.Equal(t, "Obra Río Seco", out.ObraDestino)

	require.Len(t, db.items, 1)
	assert.Equal(t, int64(25), db.items[0].Quantity, "la cantidad persistida debe coincidir")
}

func TestIssue_SalidaTotal_EliminaItemYRegistraREMOVE(t *testing.T) {
	svc, db := newTestService(t)
	item := receiveCemento(t, svc, 10)

	err := svc.Issue(context.Background(), operario, item.ID, 10, "Obra Río Seco")
	require.NoError(t, err)

	_, ok := svc.FindItem(item.ID)
	assert.False(t, ok, "con stock en 0 el item desaparece del inventario")
	assert.Empty(t, db.items)

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 3, "IN inicial + OUT + REMOVE")

	remove, out := movs[0], movs[1]
	assert.Equal(t, entity.MovementTypeREMOVE, remove.Type, "el REMOVE es el más reciente")
	assert.Equal(t, entity.MovementTypeOUT, out.Type)

	assert.Equal(t, int64(-10), out.QuantityChange)
	assert.Equal(t, int64(0), out.NewQuantity)

	assert.Equal(t, int64(0), remove.QuantityChange)
	assert.Equal(t, int64(0), remove.NewQuantity)
	assert.Equal(t, "Material eliminado del inventario (stock en 0)", remove.Note)
	assert.Equal(t, "—", remove.ObraDestino)
	assert.False(t, remove.Timestamp.Before(out.Timestamp),
		"el REMOVE lleva su propia marca de tiempo, posterior o igual al OUT")
}

func TestIssue_CantidadInvalida_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 10)

	for _, amount := range []int64{0, -3, 11} {
		require.NoError(t, svc.Issue(context.Background(), operario, item.ID, amount, "Obra X"))
	}

	got, ok := svc.FindItem(item.ID)
	require.True(t, ok)
	assert.Equal(t, int64(10), got.Quantity, "ninguna salida inválida debe aplicarse")
	assert.Equal(t, 1, svc.MovementCount(), "solo el IN inicial")
}

func TestIssue_ItemDesconocido_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Issue(context.Background(), operario, "no-existe", 5, "Obra X"))
	assert.Zero(t, svc.MovementCount())
}

func TestIssue_SoloLectura_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 10)

	require.NoError(t, svc.Issue(context.Background(), lector, item.ID, 5, "Obra X"))

	got, _ := svc.FindItem(item.ID)
	assert.Equal(t, int64(10), got.Quantity)
	assert.Equal(t, 1, svc.MovementCount())
}

func TestIssue_FalloPersistencia_NoTocaEspejos(t *testing.T) {
	svc, db := newTestService(t)
	item := receiveCemento(t, svc, 40)
	db.failUpdateQuantity = true

	err := svc.Issue(context.Background(), operario, item.ID, 15, "Obra X")
	require.Error(t, err)

	got, ok := svc.FindItem(item.ID)
	require.True(t, ok)
	assert.Equal(t, int64(40), got.Quantity, "la cantidad en memoria no debe cambiar")
	assert.Equal(t, 1, svc.MovementCount())
	require.Len(t, db.movements, 1, "el rollback debe deshacer el OUT")
	assert.Equal(t, int64(40), db.items[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete (baja manual, solo Admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_AdminRegistraREMOVEConCantidadPrevia(t *testing.T) {
	svc, db := newTestService(t)
	item := receiveCemento(t, svc, 40)

	require.NoError(t, svc.Delete(context.Background(), admin, item.ID))

	_, ok := svc.FindItem(item.ID)
	assert.False(t, ok)
	assert.Empty(t, db.items)

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 2)
	remove := movs[0]
	assert.Equal(t, entity.MovementTypeREMOVE, remove.Type)
	assert.Equal(t, int64(40), remove.NewQuantity,
		"la baja manual conserva la cantidad que había, no 0")
	assert.Equal(t, int64(0), remove.QuantityChange)
	assert.Equal(t, "Eliminado por administrador", remove.Note)
	assert.Equal(t, item.Obra, remove.ObraProcedencia)
	assert.Equal(t, admin.ID, remove.UserID)
}

func TestDelete_OperarioNoPuede_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 40)

	require.NoError(t, svc.Delete(context.Background(), operario, item.ID))

	_, ok := svc.FindItem(item.ID)
	assert.True(t, ok, "Operario no puede dar bajas manuales")
	assert.Equal(t, 1, svc.MovementCount())
}

func TestDelete_ItemDesconocido_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Delete(context.Background(), admin, "no-existe"))
	assert.Zero(t, svc.MovementCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateMetadata (edición parcial, sin movimiento)
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateMetadata_ParcheParcialSinMovimiento(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 40)

	desc := "Sacos de 35kg"
	err := svc.UpdateMetadata(context.Background(), operario, item.ID, warehouse.MetadataPatch{
		Description: &desc,
	})
	require.NoError(t, err)

	got, _ := svc.FindItem(item.ID)
	assert.Equal(t, "Sacos de 35kg", got.Description)
	assert.Equal(t, item.ImageURL, got.ImageURL, "los campos no incluidos en el parche no cambian")
	assert.Equal(t, item.Quantity, got.Quantity)
	assert.False(t, got.UpdatedAt.Before(item.UpdatedAt))

	assert.Equal(t, 1, svc.MovementCount(),
		"la edición de metadatos no genera movimiento")
}

func TestUpdateMetadata_SoloLectura_NoOpSilencioso(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 40)

	desc := "otra descripción"
	require.NoError(t, svc.UpdateMetadata(context.Background(), lector, item.ID, warehouse.MetadataPatch{
		Description: &desc,
	}))

	got, _ := svc.FindItem(item.ID)
	assert.Equal(t, item.Description, got.Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas de lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_DevuelveCopiasAisladas(t *testing.T) {
	svc, _ := newTestService(t)
	item := receiveCemento(t, svc, 40)

	view := svc.Items(warehouse.ListFilter{})
	require.Len(t, view, 1)
	view[0].Quantity = 9999

	got, _ := svc.FindItem(item.ID)
	assert.Equal(t, int64(40), got.Quantity,
		"mutar la vista no debe afectar al estado interno")
}

func TestItems_OrdenMasRecientePrimero(t *testing.T) {
	svc, _ := newTestService(t)
	receiveCemento(t, svc, 10)
	second, err := svc.Receive(context.Background(), operario, warehouse.ReceiveInput{
		Concept:     "Ladrillo hueco",
		Description: "Palé de 500",
		Obra:        "Obra Norte",
		Quantity:    3,
		Location:    "Patio",
	})
	require.NoError(t, err)
	require.NotNil(t, second)

	view := svc.Items(warehouse.ListFilter{})
	require.Len(t, view, 2)
	assert.Equal(t, second.ID, view[0].ID, "el alta más reciente va primero")
}

func TestItems_BusquedaInsensibleAAcentos(t *testing.T) {
	svc, _ := newTestService(t)
	receiveCemento(t, svc, 40) // ubicación "Estantería A3"

	assert.Len(t, svc.Items(warehouse.ListFilter{Search: "estanteria"}), 1,
		"la búsqueda debe ignorar acentos y mayúsculas")
	assert.Len(t, svc.Items(warehouse.ListFilter{Search: "ESTANTERÍA"}), 1)
	assert.Empty(t, svc.Items(warehouse.ListFilter{Search: "tornillo"}))
}

func TestItems_FiltroPorCategoria(t *testing.T) {
	svc, _ := newTestService(t)
	receiveCemento(t, svc, 40) // categoría CONSTRUCCION

	assert.Len(t, svc.Items(warehouse.ListFilter{Category: "CONSTRUCCION"}), 1)
	assert.Empty(t, svc.Items(warehouse.ListFilter{Category: "ELECTRICIDAD"}))
}

func TestMovements_Paginacion(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		receiveCemento(t, svc, int64(i+1))
	}

	page := svc.Movements(2, 0)
	require.Len(t, page, 2)
	assert.Equal(t, int64(5), page[0].QuantityChange, "el movimiento más reciente primero")

	page = svc.Movements(2, 4)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].QuantityChange)

	assert.Empty(t, svc.Movements(2, 50), "offset fuera de rango devuelve vacío")
	assert.Equal(t, 5, svc.MovementCount())
}

func TestSummarize_Totales(t *testing.T) {
	svc, _ := newTestService(t)
	receiveCemento(t, svc, 40)
	receiveCemento(t, svc, 10)

	sum := svc.Summarize(time.Now())
	assert.Equal(t, 2, sum.TotalItems)
	assert.Equal(t, int64(50), sum.TotalUnits)
	assert.Equal(t, 2, sum.MovementsToday)
	require.NotNil(t, sum.LastMovementAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios completos
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo de vida completo: entrada, salida parcial y salida final que agota el
// stock. El historial queda, de más reciente a más antiguo, como
// REMOVE, OUT, OUT, IN.
func TestEscenario_CicloDeVidaCompleto(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	item := receiveCemento(t, svc, 40)
	require.NoError(t, svc.Issue(ctx, operario, item.ID, 15, "Obra Río Seco"))
	require.NoError(t, svc.Issue(ctx, operario, item.ID, 25, "Obra Norte"))

	_, ok := svc.FindItem(item.ID)
	assert.False(t, ok)
	assert.Empty(t, db.items)

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 4)
	assert.Equal(t, entity.MovementTypeREMOVE, movs[0].Type)
	assert.Equal(t, entity.MovementTypeOUT, movs[1].Type)
	assert.Equal(t, entity.MovementTypeOUT, movs[2].Type)
	assert.Equal(t, entity.MovementTypeIN, movs[3].Type)

	assert.Equal(t, int64(0), movs[1].NewQuantity)
	assert.Equal(t, int64(25), movs[2].NewQuantity)
	assert.Equal(t, int64(40), movs[3].NewQuantity)
}

// Un item dado de baja por el administrador conserva en su REMOVE la cantidad
// que tenía, y el inventario y el historial quedan coherentes entre sí.
func TestEscenario_BajaManualTrasSalidaParcial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item := receiveCemento(t, svc, 40)
	require.NoError(t, svc.Issue(ctx, operario, item.ID, 15, "Obra Río Seco"))
	require.NoError(t, svc.Delete(ctx, admin, item.ID))

	movs := svc.Movements(0, 0)
	require.Len(t, movs, 3)
	remove := movs[0]
	assert.Equal(t, entity.MovementTypeREMOVE, remove.Type)
	assert.Equal(t, int64(25), remove.NewQuantity,
		"la baja conserva el stock que quedaba tras la salida parcial")
	assert.Empty(t, svc.Items(warehouse.ListFilter{}))
}
