package events

import "time"

const EmployeeCreatedTopic = "vthr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	BusinessID string    `json:"business_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
