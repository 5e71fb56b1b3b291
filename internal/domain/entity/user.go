package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleAccountant  = "accountant"
	RoleStorekeeper = "storekeeper"
	RoleHR          = "hr"
)

// Estados de User.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a una empresa).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
