package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
)

// Nombre del almacén como origen/destino de movimientos.
const warehouseSite = "Almacén"

// ReceiveInput entrada de material procedente de una obra.
type ReceiveInput struct {
	Concept     string
	Description string
	Obra        string
	Quantity    int64 // negativo se recorta a 0
	Location    string
	Category    string
	ImageURL    string
}

// MetadataPatch actualización parcial de un item: solo los campos no-nil se aplican.
type MetadataPatch struct {
	Description *string
	ImageURL    *string
}

// Receive da de alta un item nuevo y registra su movimiento de entrada:
// IN si entra con stock, CREATE si se recoge sin unidades. Cantidades
// negativas se recortan a 0. Concepto, descripción, obra y ubicación son
// obligatorios; si falta alguno, o el rol no puede mutar, no hace nada.
// Devuelve el item creado, o nil si la operación no se aplicó.
func (s *StockService) Receive(ctx context.Context, user entity.User, in ReceiveInput) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowed(user.Role, opReceive) {
		return nil, nil
	}
	if in.Concept == "" || in.Description == "" || in.Obra == "" || in.Location == "" {
		return nil, nil
	}

	quantity := in.Quantity
	if quantity < 0 {
		quantity = 0
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Concept:     in.Concept,
		Description: in.Description,
		Obra:        in.Obra,
		Quantity:    quantity,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	movement := &entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		ItemConcept:     item.Concept,
		UserID:          user.ID,
		UserName:        user.Name,
		Type:            entity.MovementTypeIN,
		QuantityChange:  quantity,
		NewQuantity:     quantity,
		Timestamp:       now,
		Note:            fmt.Sprintf("Entrada: %d uds. Ubicación: %s. Obra: %s", quantity, item.Location, item.Obra),
		ObraProcedencia: item.Obra,
		ObraDestino:     warehouseSite,
	}
	if quantity == 0 {
		movement.Type = entity.MovementTypeCREATE
		movement.Note = fmt.Sprintf("Material recogido de obra: %s", item.Obra)
	}

	err := s.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if err := items.Create(item); err != nil {
			return err
		}
		return movements.Create(movement)
	})
	if err != nil {
		s.log.Error().Err(err).Str("concept", in.Concept).Msg("entrada de material: fallo de persistencia")
		return nil, err
	}

	s.items = append([]*entity.Item{item}, s.items...)
	s.movements = append([]*entity.Movement{movement}, s.movements...)
	s.metrics.IncMovimiento(movement.Type)

	copied := *item
	return &copied, nil
}

// Issue registra una salida de material hacia una obra. Si la cantidad llega
// a 0, el item se elimina del inventario y se registra un segundo movimiento
// REMOVE además del OUT; el orden de escritura es siempre OUT, REMOVE, baja
// de la fila. Item inexistente o cantidad fuera de rango: no-op silencioso.
func (s *StockService) Issue(ctx context.Context, user entity.User, itemID string, amount int64, obraDestino string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowed(user.Role, opIssue) {
		return nil
	}
	item := s.findLocked(itemID)
	if item == nil || amount <= 0 || amount > item.Quantity {
		return nil
	}

	newQuantity := item.Quantity - amount
	now := time.Now()
	outMovement := &entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		ItemConcept:     item.Concept,
		UserID:          user.ID,
		UserName:        user.Name,
		Type:            entity.MovementTypeOUT,
		QuantityChange:  -amount,
		NewQuantity:     newQuantity,
		Timestamp:       now,
		Note:            fmt.Sprintf("Salida a obra: %s", obraDestino),
		ObraProcedencia: warehouseSite,
		ObraDestino:     obraDestino,
	}

	if newQuantity == 0 {
		// Segundo movimiento con su propia marca de tiempo: el REMOVE es
		// contexto de auditoría de la baja, nunca su causa.
		removeMovement := &entity.Movement{
			ID:              uuid.New().String(),
			ItemID:          item.ID,
			ItemConcept:     item.Concept,
			UserID:          user.ID,
			UserName:        user.Name,
			Type:            entity.MovementTypeREMOVE,
			QuantityChange:  0,
			NewQuantity:     0,
			Timestamp:       time.Now(),
			Note:            "Material eliminado del inventario (stock en 0)",
			ObraProcedencia: warehouseSite,
			ObraDestino:     "—",
		}
		err := s.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
			if err := movements.Create(outMovement); err != nil {
				return err
			}
			if err := movements.Create(removeMovement); err != nil {
				return err
			}
			return items.Delete(item.ID)
		})
		if err != nil {
			s.log.Error().Err(err).Str("item_id", itemID).Msg("salida de material: fallo de persistencia")
			return err
		}
		s.movements = append([]*entity.Movement{removeMovement, outMovement}, s.movements...)
		s.removeItemLocked(item.ID)
		s.metrics.IncMovimiento(entity.MovementTypeOUT)
		s.metrics.IncMovimiento(entity.MovementTypeREMOVE)
		return nil
	}

	err := s.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if err := movements.Create(outMovement); err != nil {
			return err
		}
		return items.UpdateQuantity(item.ID, newQuantity, now)
	})
	if err != nil {
		s.log.Error().Err(err).Str("item_id", itemID).Msg("salida de material: fallo de persistencia")
		return err
	}
	item.Quantity = newQuantity
	item.UpdatedAt = now
	s.movements = append([]*entity.Movement{outMovement}, s.movements...)
	s.metrics.IncMovimiento(entity.MovementTypeOUT)
	return nil
}

// Delete da de baja un item por decisión del administrador. El movimiento
// REMOVE conserva la cantidad que había en el momento de la baja (no 0).
// Operario y SoloLectura no pueden ejecutarla.
func (s *StockService) Delete(ctx context.Context, user entity.User, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowed(user.Role, opDelete) {
		return nil
	}
	item := s.findLocked(itemID)
	if item == nil {
		return nil
	}

	movement := &entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		ItemConcept:     item.Concept,
		UserID:          user.ID,
		UserName:        user.Name,
		Type:            entity.MovementTypeREMOVE,
		QuantityChange:  0,
		NewQuantity:     item.Quantity,
		Timestamp:       time.Now(),
		Note:            "Eliminado por administrador",
		ObraProcedencia: item.Obra,
	}

	err := s.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if err := movements.Create(movement); err != nil {
			return err
		}
		return items.Delete(item.ID)
	})
	if err != nil {
		s.log.Error().Err(err).Str("item_id", itemID).Msg("baja de material: fallo de persistencia")
		return err
	}
	s.movements = append([]*entity.Movement{movement}, s.movements...)
	s.removeItemLocked(item.ID)
	s.metrics.IncMovimiento(entity.MovementTypeREMOVE)
	return nil
}

// UpdateMetadata aplica una edición parcial de descripción e imagen.
// Refresca updated_at y no genera movimiento: las ediciones de metadatos
// no son eventos del historial.
func (s *StockService) UpdateMetadata(ctx context.Context, user entity.User, itemID string, patch MetadataPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowed(user.Role, opUpdateMetadata) {
		return nil
	}
	item := s.findLocked(itemID)
	if item == nil {
		return nil
	}

	now := time.Now()
	if err := s.itemRepo.UpdateMetadata(item.ID, patch.Description, patch.ImageURL, now); err != nil {
		s.log.Error().Err(err).Str("item_id", itemID).Msg("edición de item: fallo de persistencia")
		return err
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	item.UpdatedAt = now
	return nil
}

// removeItemLocked quita un item del espejo en memoria. Requiere s.mu tomado.
func (s *StockService) removeItemLocked(id string) {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
