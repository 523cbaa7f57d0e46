package repository

import "github.com/axisignaser/almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el historial de
// movimientos. El historial es solo-inserción: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListAll devuelve movimientos más recientes primero (timestamp DESC).
	ListAll(limit, offset int) ([]*entity.Movement, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
}
