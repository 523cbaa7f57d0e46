package warehouse

import "github.com/axisignaser/almacen-api/internal/domain/entity"

// Operaciones mutadoras del motor de stock.
type operation string

const (
	opReceive        operation = "receive"
	opIssue          operation = "issue"
	opDelete         operation = "delete"
	opUpdateMetadata operation = "update_metadata"
)

// roleLevel ordena los roles de menor a mayor capacidad.
var roleLevel = map[string]int{
	entity.RoleSoloLectura: 0,
	entity.RoleOperario:    1,
	entity.RoleAdmin:       2,
}

// minRoleByOp es la única tabla de capacidades: rol mínimo por operación.
// Las bajas manuales quedan reservadas al administrador.
var minRoleByOp = map[operation]string{
	opReceive:        entity.RoleOperario,
	opIssue:          entity.RoleOperario,
	opUpdateMetadata: entity.RoleOperario,
	opDelete:         entity.RoleAdmin,
}

// allowed indica si un rol puede ejecutar la operación. Roles desconocidos
// no pueden ejecutar nada.
func allowed(role string, op operation) bool {
	level, ok := roleLevel[role]
	if !ok {
		return false
	}
	return level >= roleLevel[minRoleByOp[op]]
}
