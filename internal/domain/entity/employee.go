package entity

import "time"

// Employee rappresenta un dipendente della birreria (anagrafica, non login).
type Employee struct {
	ID       string
	FullName string
	Role     string // mansione libera, default "staff"
	Phone    *string
	Email    *string
	IsActive bool
	HiredAt  time.Time // solo data
}
