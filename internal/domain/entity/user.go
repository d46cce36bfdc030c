package entity

import "time"

// Roles válidos para User. Solo se almacenan; no restringen operaciones.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
	RoleInvitado = "invitado"
)

// ValidRole indica si el rol pertenece al conjunto admitido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmpleado, RoleInvitado:
		return true
	}
	return false
}

// User representa un usuario del sistema (tabla usuarios).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca se expone
	Role         string
	CreatedAt    time.Time
}
