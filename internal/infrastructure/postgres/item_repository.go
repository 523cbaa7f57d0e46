package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un item nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, concept, description, obra, quantity, location, image_url, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	location := nullable(item.Location)
	category := nullable(item.Category)
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Concept, item.Description, item.Obra, item.Quantity,
		location, item.ImageURL, category, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert item: id duplicado: %w", err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza cantidad y updated_at de un item.
func (r *ItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// UpdateMetadata actualización parcial: solo los campos no-nil se escriben; updated_at siempre.
func (r *ItemRepo) UpdateMetadata(id string, description, imageURL *string, updatedAt time.Time) error {
	query := `UPDATE items SET updated_at = $2`
	args := []any{id, updatedAt}
	pos := 3
	if description != nil {
		query += fmt.Sprintf(", description = $%d", pos)
		args = append(args, *description)
		pos++
	}
	if imageURL != nil {
		query += fmt.Sprintf(", image_url = $%d", pos)
		args = append(args, *imageURL)
		pos++
	}
	query += ` WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("update item metadata: %w", err)
	}
	return nil
}

// Delete elimina un item por ID. Los movimientos que lo referencian se conservan.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ListAll devuelve todos los items, más recientes primero.
func (r *ItemRepo) ListAll() ([]*entity.Item, error) {
	query := `
		SELECT id, concept, description, obra, quantity, location, image_url, category, created_at, updated_at
		FROM items ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		var location, category *string
		if err := rows.Scan(&it.ID, &it.Concept, &it.Description, &it.Obra, &it.Quantity,
			&location, &it.ImageURL, &category, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if location != nil {
			it.Location = *location
		}
		if category != nil {
			it.Category = *category
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// nullable devuelve nil para cadenas vacías (columnas NULL).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
