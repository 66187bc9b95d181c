package events

import (
	"time"

	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketAssigned    EventType = "ticket_assigned"
	EventTicketSkipped     EventType = "ticket_skipped"
	EventTicketAutomated   EventType = "ticket_automated"
	EventAutomationFailed  EventType = "automation_failed"
	EventAutomationBlocked EventType = "automation_blocked"
)

// Event represents a pipeline outcome emitted by the services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Pipeline  string      `json:"pipeline"`
	TicketID  int         `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TechnicianID    int    `json:"technician_id"`
	TechnicianEmail string `json:"technician_email"`
	Classification  string `json:"classification"`
}

// TicketSkippedPayload payload.
type TicketSkippedPayload struct {
	Reason string `json:"reason"`
}

// TicketAutomatedPayload payload.
type TicketAutomatedPayload struct {
	AutomationType domain.AutomationType `json:"automation_type"`
	AutoResolved   bool                  `json:"auto_resolved"`
}

// AutomationFailedPayload payload.
type AutomationFailedPayload struct {
	AutomationType domain.AutomationType `json:"automation_type"`
	Reason         string                `json:"reason"`
}

// AutomationBlockedPayload payload.
type AutomationBlockedPayload struct {
	AutomationType domain.AutomationType `json:"automation_type"`
	DailyCount     int64                 `json:"daily_count"`
}
