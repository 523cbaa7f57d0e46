package warehouse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
	"github.com/axisignaser/almacen-api/internal/infrastructure/metrics"
	"github.com/axisignaser/almacen-api/pkg/logger"
	"github.com/axisignaser/almacen-api/pkg/normalize"
)

// StockService es el dueño del estado del almacén: mantiene los espejos en
// memoria de items (más recientes primero por fecha de alta) y movimientos
// (más recientes primero) y expone las mutaciones que los modifican.
//
// Contrato de las mutaciones:
//   - Rol insuficiente o entrada inválida: no-op silencioso, sin error.
//   - Fallo de persistencia: se registra en el log, la transacción hace
//     Rollback y los espejos en memoria no cambian para esa llamada.
//   - Los espejos solo se actualizan cuando todas las escrituras de la
//     operación han confirmado.
//
// Un mutex serializa las mutaciones: nunca hay dos operaciones solapadas
// sobre el mismo estado en memoria.
type StockService struct {
	mu        sync.Mutex
	items     []*entity.Item
	movements []*entity.Movement

	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	log      *logger.Logger
	metrics  *metrics.StockMetrics
}

// NewStockService construye el servicio. metrics puede ser nil.
func NewStockService(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	log *logger.Logger,
	m *metrics.StockMetrics,
) *StockService {
	return &StockService{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		log:      log,
		metrics:  m,
	}
}

// Load carga los espejos en memoria desde la persistencia. Se invoca una vez
// en el arranque; los repositorios ya devuelven el orden más-reciente-primero.
func (s *StockService) Load(ctx context.Context) error {
	items, err := s.itemRepo.ListAll()
	if err != nil {
		return fmt.Errorf("cargar items: %w", err)
	}
	movements, err := s.movRepo.ListAll(loadMovementsLimit, 0)
	if err != nil {
		return fmt.Errorf("cargar movimientos: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.movements = movements
	return nil
}

// loadMovementsLimit acota el historial cargado en memoria en el arranque.
const loadMovementsLimit = 5000

// ListFilter criterios de consulta sobre el inventario en memoria.
type ListFilter struct {
	Search   string // búsqueda insensible a acentos sobre concepto, descripción, obra y ubicación
	Category string
}

// Items devuelve una vista de solo lectura del inventario (copias).
// El estado interno nunca se expone directamente.
func (s *StockService) Items(filter ListFilter) []entity.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Item, 0, len(s.items))
	for _, it := range s.items {
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !matchesSearch(it, filter.Search) {
			continue
		}
		out = append(out, *it)
	}
	return out
}

func matchesSearch(it *entity.Item, q string) bool {
	return normalize.Contains(it.Concept, q) ||
		normalize.Contains(it.Description, q) ||
		normalize.Contains(it.Obra, q) ||
		normalize.Contains(it.Location, q)
}

// FindItem devuelve una copia del item y si existe en el estado actual.
func (s *StockService) FindItem(id string) (entity.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.findLocked(id)
	if it == nil {
		return entity.Item{}, false
	}
	return *it, true
}

// findLocked busca un item por id. Requiere s.mu tomado.
func (s *StockService) findLocked(id string) *entity.Item {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Movements devuelve una página del historial, más recientes primero (copias).
func (s *StockService) Movements(limit, offset int) []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.movements) {
		return []entity.Movement{}
	}
	end := len(s.movements)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]entity.Movement, 0, end-offset)
	for _, m := range s.movements[offset:end] {
		out = append(out, *m)
	}
	return out
}

// MovementCount devuelve el total de movimientos en memoria.
func (s *StockService) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Summary totales para el panel de resumen.
type Summary struct {
	TotalItems     int
	TotalUnits     int64
	MovementsToday int
	LastMovementAt *time.Time
}

// Summarize calcula los totales del panel a partir del estado en memoria.
func (s *StockService) Summarize(now time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{TotalItems: len(s.items)}
	for _, it := range s.items {
		sum.TotalUnits += it.Quantity
	}
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for _, mov := range s.movements {
		if mov.Timestamp.Before(dayStart) {
			break // historial ordenado más-reciente-primero
		}
		sum.MovementsToday++
	}
	if len(s.movements) > 0 {
		ts := s.movements[0].Timestamp
		sum.LastMovementAt = &ts
	}
	return sum
}
