package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated     EventType = "task_created"
	EventTaskUpdated     EventType = "task_updated"
	EventTaskDeleted     EventType = "task_deleted"
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// MutationEvents lists every event that changes employee or task state.
// The dashboard cache subscribes to all of them.
var MutationEvents = []EventType{
	EventTaskCreated,
	EventTaskUpdated,
	EventTaskDeleted,
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
