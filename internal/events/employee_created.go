package events

import "time"

const EmployeeCreatedTopic = "hrm.employee.created"

// EmployeeCreatedEvent is appended to the outbox in the onboarding
// transaction and consumed to seed leave balances and the provident fund
// enrollment for the new employee.
type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	JoiningYear    int       `json:"joining_year"`
	OccurredAt     time.Time `json:"occurred_at"`
}
