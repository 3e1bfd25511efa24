package entity

import "time"

// Ruoli validi per User.
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User rappresenta un utente applicativo (login). Creato dal tool di
// provisioning, autenticato con bcrypt: un solo campo credenziale.
type User struct {
	ID           string
	Username     string // univoco
	PasswordHash string // bcrypt, mai in chiaro dopo la persistenza
	Role         string // manager, staff
	IsActive     bool
	CreatedAt    time.Time
}
