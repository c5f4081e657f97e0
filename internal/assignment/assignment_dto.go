package assignment

type EnrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	EndDate string `json:"end_date"`
}

type AssignmentResponse struct {
	ID                string  `json:"id"`
	AssignmentGroupID string  `json:"assignment_group_id"`
	EmployeeID        string  `json:"employee_id"`
	AssignedDate      string  `json:"assigned_date"`
	EndDate           *string `json:"end_date,omitempty"`
	Status            string  `json:"status"`
}
