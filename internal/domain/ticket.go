package domain

// TicketPriority enumerates the platform's SLA tiers, most urgent first.
type TicketPriority string

const (
	TicketPriorityCritical TicketPriority = "Priority 1 - Critical"
	TicketPriorityHigh     TicketPriority = "Priority 2 - High"
	TicketPriorityMedium   TicketPriority = "Priority 3 - Medium"
	TicketPriorityLow      TicketPriority = "Priority 4 - Low"
)

// priorityRank orders tiers for threshold comparisons. Lower is more urgent.
var priorityRank = map[TicketPriority]int{
	TicketPriorityCritical: 0,
	TicketPriorityHigh:     1,
	TicketPriorityMedium:   2,
	TicketPriorityLow:      3,
}

// Rank returns the tier index for the priority. Unknown priorities rank
// below Low so they never pass an urgency gate.
func (p TicketPriority) Rank() int {
	if rank, ok := priorityRank[p]; ok {
		return rank
	}
	return len(priorityRank)
}

// AtLeast reports whether the priority is as urgent or more urgent than
// the given threshold.
func (p TicketPriority) AtLeast(threshold TicketPriority) bool {
	return p.Rank() <= threshold.Rank()
}

// Ticket mirrors the fields the pipelines need from the helpdesk platform.
// The platform owns the record; this process only reads it and issues
// write-back commands.
type Ticket struct {
	ID          int
	Summary     string
	Description string
	Priority    TicketPriority
	Board       string
	CompanyName string
	Status      string
	OwnerID     *int
}
