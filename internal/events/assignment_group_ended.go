package events

import "time"

const AssignmentGroupEndedTopic = "hr.assignment.group.ended.v1"

type AssignmentGroupEndedEvent struct {
	EventType        string    `json:"event_type"`
	GroupID          string    `json:"group_id"`
	EndDate          string    `json:"end_date"`
	EmployeesUpdated int       `json:"employees_updated"`
	OccurredAt       time.Time `json:"occurred_at"`
}
