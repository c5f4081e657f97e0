package assignmentgroup

import "github.com/kajugadaniels/eps-attendify-api/internal/assignment"

type CreateGroupRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=255"`
	FieldID      string   `json:"field_id" binding:"required,uuid"`
	DepartmentID string   `json:"department_id" binding:"required,uuid"`
	SupervisorID string   `json:"supervisor_id" binding:"omitempty,uuid"`
	Notes        string   `json:"notes" binding:"omitempty,max=2000"`
	EmployeeIDs  []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
}

// UpdateGroupRequest is a partial update: nil fields keep their current
// value. An empty supervisor_id clears the supervisor; a nil one keeps it.
type UpdateGroupRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=255"`
	FieldID      *string   `json:"field_id" binding:"omitempty,uuid"`
	DepartmentID *string   `json:"department_id" binding:"omitempty,uuid"`
	SupervisorID *string   `json:"supervisor_id" binding:"omitempty,uuid"`
	Notes        *string   `json:"notes" binding:"omitempty,max=2000"`
	EmployeeIDs  *[]string `json:"employee_ids" binding:"omitempty,dive,uuid"`
}

type EndGroupRequest struct {
	EndDate string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Reason  string `json:"reason" binding:"omitempty,max=500"`
}

type ListFilter struct {
	FieldID      string `form:"field_id" binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	IsActive     *bool  `form:"is_active"`
}

type GroupResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	FieldID         string  `json:"field_id"`
	DepartmentID    string  `json:"department_id"`
	SupervisorID    *string `json:"supervisor_id"`
	CreatedDate     string  `json:"created_date"`
	EndDate         *string `json:"end_date"`
	IsActive        bool    `json:"is_active"`
	Notes           string  `json:"notes"`
	TotalEmployees  int     `json:"total_employees"`
	ActiveEmployees int     `json:"active_employees"`
}

// EnrollmentOutcome reports the result of one employee in a batch
// membership change. The group write itself succeeds even when some
// membership changes fail.
type EnrollmentOutcome struct {
	EmployeeID string `json:"employee_id"`
	Action     string `json:"action"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

type CreateGroupResponse struct {
	Group       GroupResponse       `json:"group"`
	Enrollments []EnrollmentOutcome `json:"enrollments,omitempty"`
}

type EndGroupResponse struct {
	Group            GroupResponse `json:"group"`
	EndDate          string        `json:"end_date"`
	EmployeesUpdated int           `json:"employees_updated"`
}

// PreviewEndResponse reports what End would change: the memberships that
// would flip to completed and the supervisor who would be released.
type PreviewEndResponse struct {
	Group            GroupResponse                   `json:"group"`
	EndDate          string                          `json:"end_date"`
	EmployeesUpdated int                             `json:"employees_updated"`
	ActiveMembers    []assignment.AssignmentResponse `json:"active_members"`
	SupervisorID     *string                         `json:"supervisor_id,omitempty"`
}

type DeleteGroupResponse struct {
	Group       GroupResponse                   `json:"group"`
	Assignments []assignment.AssignmentResponse `json:"assignments"`
}
