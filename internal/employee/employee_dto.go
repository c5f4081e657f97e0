package employee

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Tag        string `json:"tag" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	SSN        string `json:"ssn" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Tag        string `json:"tag" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	SSN        string `json:"ssn" binding:"required"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Tag        string `json:"tag"`
	NationalID string `json:"national_id"`
	SSN        string `json:"ssn"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
