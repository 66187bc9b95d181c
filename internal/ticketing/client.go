// Package ticketing defines the surface the pipelines need from the
// external helpdesk platform. Retry, auth, and rate-limit concerns live
// entirely behind this interface; callers treat every failure as data.
package ticketing

import (
	"context"

	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// TicketQuery filters a ticket fetch.
type TicketQuery struct {
	// Statuses limits results to tickets in any of these platform statuses.
	Statuses []string
	// UnassignedOnly limits results to tickets with no owner.
	UnassignedOnly bool
}

// Note is an entry appended to a ticket's discussion trail.
type Note struct {
	Text             string
	DetailFlag       bool
	InternalAnalysis bool
}

// Client is the helpdesk platform collaborator: four queries, three
// commands. Implementations must honor the configured API timeout.
type Client interface {
	// FetchTickets returns tickets matching the query, ordered most
	// urgent first then oldest first.
	FetchTickets(ctx context.Context, query TicketQuery) ([]*domain.Ticket, error)

	// FetchTechnicians returns the platform roster, active members only
	// when activeOnly is set.
	FetchTechnicians(ctx context.Context, activeOnly bool) ([]*domain.Technician, error)

	// FetchWorkload counts tickets owned by the technician whose status
	// is in countedStatuses.
	FetchWorkload(ctx context.Context, technicianID int, countedStatuses []string) (int, error)

	// SetOwner assigns the ticket to the technician.
	SetOwner(ctx context.Context, ticketID, technicianID int) error

	// SetStatus moves the ticket to the named platform status.
	SetStatus(ctx context.Context, ticketID int, status string) error

	// AppendNote adds a note to the ticket.
	AppendNote(ctx context.Context, ticketID int, note Note) error
}
