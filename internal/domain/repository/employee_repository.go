package repository

import "github.com/gbirreria/gb-api/internal/domain/entity"

// EmployeeRepository porta di persistenza per Employee.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error) // (nil, nil) se assente
	List() ([]*entity.Employee, error)           // ordinati per nome
	Update(e *entity.Employee) error
	Delete(id string) error
}
