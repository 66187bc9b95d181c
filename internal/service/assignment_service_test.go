package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

type appendedNote struct {
	ticketID int
	note     ticketing.Note
}

type statusCall struct {
	ticketID int
	status   string
}

// scriptedClient is a canned ticketing.Client for driving pipeline runs.
type scriptedClient struct {
	tickets     []*domain.Ticket
	fetchErr    error
	technicians []*domain.Technician
	techErr     error
	workloads   map[int]int
	ownerErrs   map[int]error
	statusErr   error
	noteErr     error

	queries     []ticketing.TicketQuery
	ownerCalls  [][2]int
	statusCalls []statusCall
	notes       []appendedNote
}

func (c *scriptedClient) FetchTickets(_ context.Context, query ticketing.TicketQuery) ([]*domain.Ticket, error) {
	c.queries = append(c.queries, query)
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.tickets, nil
}

func (c *scriptedClient) FetchTechnicians(_ context.Context, _ bool) ([]*domain.Technician, error) {
	if c.techErr != nil {
		return nil, c.techErr
	}
	return c.technicians, nil
}

func (c *scriptedClient) FetchWorkload(_ context.Context, technicianID int, _ []string) (int, error) {
	return c.workloads[technicianID], nil
}

func (c *scriptedClient) SetOwner(_ context.Context, ticketID, technicianID int) error {
	if err := c.ownerErrs[ticketID]; err != nil {
		return err
	}
	c.ownerCalls = append(c.ownerCalls, [2]int{ticketID, technicianID})
	return nil
}

func (c *scriptedClient) SetStatus(_ context.Context, ticketID int, status string) error {
	if c.statusErr != nil {
		return c.statusErr
	}
	c.statusCalls = append(c.statusCalls, statusCall{ticketID: ticketID, status: status})
	return nil
}

func (c *scriptedClient) AppendNote(_ context.Context, ticketID int, note ticketing.Note) error {
	if c.noteErr != nil {
		return c.noteErr
	}
	c.notes = append(c.notes, appendedNote{ticketID: ticketID, note: note})
	return nil
}

func defaultTechnicians() []*domain.Technician {
	team := []struct {
		email string
		name  string
	}{
		{"jhamilton@buckeyeit.com", "John Hamilton"},
		{"jboos@buckeyeit.com", "Jacon Boos"},
		{"ibaker@buckeyeit.com", "Isaac Baker"},
		{"mperry@buckeyeit.com", "Matthew Perry"},
		{"jpizana@buckeyeit.com", "Jose Pizana"},
		{"msmith@buckeyeit.com", "Michael Smith"},
		{"jschaaf@buckeyeit.com", "Jake Schaff"},
		{"pgosche@buckeyeit.com", "Phil Gosche"},
	}
	members := make([]*domain.Technician, 0, len(team))
	for i, member := range team {
		members = append(members, &domain.Technician{ID: i + 1, Email: member.email, Name: member.name})
	}
	return members
}

// fullWorkloads puts every technician exactly at their configured limit.
func fullWorkloads() map[int]int {
	return map[int]int{1: 15, 2: 10, 3: 10, 4: 10, 5: 8, 6: 8, 7: 5, 8: 3}
}

func newAssignmentService(client *scriptedClient) *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{
		Client: client,
		Rules:  config.DefaultRules(),
		Logger: zap.NewNop(),
	})
}

func helpDeskTicket(id int, summary string) *domain.Ticket {
	return &domain.Ticket{
		ID:       id,
		Summary:  summary,
		Priority: domain.TicketPriorityMedium,
		Board:    "Help Desk (MS)",
		Status:   "New",
	}
}

func TestAssignmentRunHappyPath(t *testing.T) {
	client := &scriptedClient{
		tickets: []*domain.Ticket{
			helpDeskTicket(1, "VPN down at main office"),
			helpDeskTicket(2, "Printer making grinding noise"),
		},
		technicians: defaultTechnicians(),
		workloads:   map[int]int{2: 4, 3: 1, 4: 7},
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AssignmentSummary{Fetched: 2, Assigned: 2}, summary)

	require.Len(t, client.queries, 1)
	assert.Equal(t, config.DefaultRules().UnassignedStatuses, client.queries[0].Statuses)
	assert.True(t, client.queries[0].UnassignedOnly)

	// VPN goes to the tier3 specialist, printer to the least-loaded
	// rotation member.
	require.Len(t, client.ownerCalls, 2)
	assert.Equal(t, [2]int{1, 5}, client.ownerCalls[0])
	assert.Equal(t, [2]int{2, 3}, client.ownerCalls[1])

	require.Len(t, client.notes, 2)
	assert.Contains(t, client.notes[0].note.Text, "automatically assigned to Jose Pizana")
	assert.Contains(t, client.notes[1].note.Text, "automatically assigned to Isaac Baker")
	assert.True(t, client.notes[0].note.DetailFlag)
	assert.True(t, client.notes[0].note.InternalAnalysis)
}

func TestAssignmentMentionAddsGuidanceNote(t *testing.T) {
	client := &scriptedClient{
		tickets:     []*domain.Ticket{helpDeskTicket(10, "Phishing email received")},
		technicians: defaultTechnicians(),
		workloads:   map[int]int{1: 2, 2: 5, 3: 5, 4: 5},
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Assigned)

	// The mentioned specialist never takes the ticket; it lands on the
	// board's general assignment instead.
	require.Len(t, client.ownerCalls, 1)
	assert.Equal(t, [2]int{10, 1}, client.ownerCalls[0])

	require.Len(t, client.notes, 1)
	assert.Contains(t, client.notes[0].note.Text, "spam/email related")
	assert.Contains(t, client.notes[0].note.Text, "Phil Gosche")
}

func TestAssignmentNoCandidateSkips(t *testing.T) {
	client := &scriptedClient{
		tickets:     []*domain.Ticket{helpDeskTicket(20, "Server backup failing")},
		technicians: defaultTechnicians(),
		workloads:   fullWorkloads(),
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AssignmentSummary{Fetched: 1, Skipped: 1}, summary)
	assert.Empty(t, client.ownerCalls)
	assert.Empty(t, client.notes)
}

func TestAssignmentOwnerFailureSkipsNote(t *testing.T) {
	client := &scriptedClient{
		tickets:     []*domain.Ticket{helpDeskTicket(30, "Firewall rules need updating")},
		technicians: defaultTechnicians(),
		workloads:   map[int]int{},
		ownerErrs:   map[int]error{30: errors.New("409 conflict")},
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AssignmentSummary{Fetched: 1, Failed: 1}, summary)
	assert.Empty(t, client.notes, "note must not be appended when ownership did not change")
}

func TestAssignmentSingleFailureDoesNotAbortBatch(t *testing.T) {
	client := &scriptedClient{
		tickets: []*domain.Ticket{
			helpDeskTicket(40, "Quote for new laptops"),
			helpDeskTicket(41, "Need a cost estimate for switches"),
		},
		technicians: defaultTechnicians(),
		workloads:   map[int]int{},
		ownerErrs:   map[int]error{40: errors.New("500 internal")},
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AssignmentSummary{Fetched: 2, Assigned: 1, Failed: 1}, summary)
	require.Len(t, client.ownerCalls, 1)
	assert.Equal(t, [2]int{41, 7}, client.ownerCalls[0])
}

func TestAssignmentFetchFailureReturned(t *testing.T) {
	client := &scriptedClient{fetchErr: errors.New("api unavailable")}
	svc := newAssignmentService(client)

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api unavailable")
}

func TestAssignmentEmptyRosterSkipsRun(t *testing.T) {
	client := &scriptedClient{
		tickets: []*domain.Ticket{helpDeskTicket(50, "VPN down")},
	}
	svc := newAssignmentService(client)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AssignmentSummary{Fetched: 1}, summary)
	assert.Empty(t, client.ownerCalls)
}
