package attendance

const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

type MarkRequest struct {
	TagID string `json:"tag_id" binding:"required,min=1,max=100"`
	Date  string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MarkBatchRequest struct {
	TagIDs []string `json:"tag_ids" binding:"required,min=1,max=500,dive,min=1,max=100"`
	Date   string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type AttendanceResponse struct {
	ID                   string `json:"id"`
	EmployeeAssignmentID string `json:"employee_assignment_id"`
	EmployeeID           string `json:"employee_id,omitempty"`
	GroupID              string `json:"group_id,omitempty"`
	DepartmentID         string `json:"department_id,omitempty"`
	Date                 string `json:"date"`
	Attended             bool   `json:"attended"`
	DaySalary            string `json:"day_salary"`
	IsSupervisor         bool   `json:"is_supervisor"`
}

type MarkResponse struct {
	Outcome    string             `json:"outcome"`
	Attendance AttendanceResponse `json:"attendance"`
}

// MarkOutcome is one tag's result in a batch scan. A rejected tag never
// aborts the rest of the batch.
type MarkOutcome struct {
	TagID      string              `json:"tag_id"`
	Outcome    string              `json:"outcome"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type MarkBatchResponse struct {
	Date     string        `json:"date"`
	Total    int           `json:"total"`
	Recorded int           `json:"recorded"`
	Rejected int           `json:"rejected"`
	Results  []MarkOutcome `json:"results"`
}

type ListFilter struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	DateFrom     string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo       string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}
