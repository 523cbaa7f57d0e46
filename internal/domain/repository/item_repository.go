package repository

import (
	"time"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para items del almacén.
type ItemRepository interface {
	Create(item *entity.Item) error
	// UpdateQuantity actualiza cantidad y updated_at (usado por las salidas parciales).
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	// UpdateMetadata actualización parcial: solo los campos no-nil se escriben.
	UpdateMetadata(id string, description, imageURL *string, updatedAt time.Time) error
	Delete(id string) error
	// ListAll devuelve todos los items, más recientes primero (created_at DESC).
	ListAll() ([]*entity.Item, error)
}
