package postgres

import (
	"context"
	"fmt"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla movements es solo-inserción: aquí no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del historial.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, item_concept, user_id, user_name, type, quantity_change, new_quantity, timestamp, note, obra_procedencia, obra_destino)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.ItemConcept, movement.UserID, movement.UserName,
		movement.Type, movement.QuantityChange, movement.NewQuantity, movement.Timestamp,
		nullable(movement.Note), nullable(movement.ObraProcedencia), nullable(movement.ObraDestino),
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListAll lista movimientos más recientes primero.
func (r *MovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, item_concept, user_id, user_name, type, quantity_change, new_quantity, timestamp, note, obra_procedencia, obra_destino
		FROM movements ORDER BY timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByItem lista los movimientos de un item, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, item_concept, user_id, user_name, type, quantity_change, new_quantity, timestamp, note, obra_procedencia, obra_destino
		FROM movements WHERE item_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMovements(rows pgxRows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var note, procedencia, destino *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemConcept, &m.UserID, &m.UserName,
			&m.Type, &m.QuantityChange, &m.NewQuantity, &m.Timestamp,
			&note, &procedencia, &destino); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if note != nil {
			m.Note = *note
		}
		if procedencia != nil {
			m.ObraProcedencia = *procedencia
		}
		if destino != nil {
			m.ObraDestino = *destino
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
