// Package staff implementa l'anagrafica dipendenti (CRUD semplice).
package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso dell'anagrafica dipendenti.
type UseCase struct {
	employeeRepo repository.EmployeeRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(employeeRepo repository.EmployeeRepository) *UseCase {
	return &UseCase{employeeRepo: employeeRepo}
}

// Create inserisce un dipendente. HiredAt è la data odierna.
func (uc *UseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = "staff"
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	e := &entity.Employee{
		ID:       uuid.New().String(),
		FullName: fullName,
		Role:     role,
		Phone:    in.Phone,
		Email:    in.Email,
		IsActive: active,
		HiredAt:  time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := uc.employeeRepo.Create(e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// List restituisce i dipendenti ordinati per nome.
func (uc *UseCase) List() ([]dto.EmployeeResponse, error) {
	rows, err := uc.employeeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

// Update applica una modifica parziale.
func (uc *UseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		if fullName == "" {
			return nil, domain.ErrInvalidInput
		}
		e.FullName = fullName
	}
	if in.Role != nil && *in.Role != "" {
		e.Role = *in.Role
	}
	if in.Phone != nil {
		e.Phone = in.Phone
	}
	if in.Email != nil {
		e.Email = in.Email
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if err := uc.employeeRepo.Update(e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// Delete elimina un dipendente.
func (uc *UseCase) Delete(id string) error {
	e, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.employeeRepo.Delete(id)
}

func toResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:       e.ID,
		FullName: e.FullName,
		Role:     e.Role,
		Phone:    e.Phone,
		Email:    e.Email,
		IsActive: e.IsActive,
		HiredAt:  e.HiredAt.Format("2006-01-02"),
	}
}
