package department

type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	DaySalary string `json:"day_salary" binding:"required"`
}

type UpdateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	DaySalary string `json:"day_salary" binding:"required"`
}

type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DaySalary string `json:"day_salary"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
