package dto

// CreateEmployeeRequest input per creare un dipendente.
type CreateEmployeeRequest struct {
	FullName string  `json:"full_name"`
	Role     string  `json:"role"` // default "staff"
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"` // default true
}

// UpdateEmployeeRequest input parziale per aggiornare un dipendente.
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

// EmployeeResponse output di un dipendente.
type EmployeeResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive bool    `json:"is_active"`
	HiredAt  string  `json:"hired_at"` // "2006-01-02"
}
