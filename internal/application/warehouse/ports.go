package warehouse

import (
	"context"

	"github.com/axisignaser/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción:
// Commit si fn devuelve nil, Rollback en caso contrario. Las escrituras de
// una operación (fila de item + fila(s) de movimiento) van siempre juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}
