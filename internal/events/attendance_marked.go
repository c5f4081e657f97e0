package events

import "time"

const AttendanceMarkedTopic = "hr.attendance.marked.v1"

type AttendanceMarkedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID string    `json:"attendance_id"`
	AssignmentID string    `json:"assignment_id"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id"`
	Date         string    `json:"date"`
	DaySalary    string    `json:"day_salary"`
	IsSupervisor bool      `json:"is_supervisor"`
	OccurredAt   time.Time `json:"occurred_at"`
}
