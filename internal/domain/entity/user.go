package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "Admin"       // control total, único que puede dar bajas manuales
	RoleOperario    = "Operario"    // registra entradas y salidas
	RoleSoloLectura = "SoloLectura" // consulta, sin mutaciones
)

// IsRole indica si r es uno de los roles conocidos.
func IsRole(r string) bool {
	return r == RoleAdmin || r == RoleOperario || r == RoleSoloLectura
}

// User representa un usuario interno del almacén.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // Admin, Operario, SoloLectura
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor devuelve la identidad mínima que acompaña a cada mutación
// (id y nombre quedan copiados en los movimientos que genera).
func (u *User) Actor() User {
	return User{ID: u.ID, Name: u.Name, Role: u.Role}
}
