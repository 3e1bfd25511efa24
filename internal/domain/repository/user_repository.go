package repository

import "github.com/gbirreria/gb-api/internal/domain/entity"

// UserRepository porta di persistenza per User.
type UserRepository interface {
	Create(u *entity.User) error
	GetByUsername(username string) (*entity.User, error) // (nil, nil) se assente
	Update(u *entity.User) error
}
