package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/assign"
	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/events"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

const assignmentPipeline = "assignment"

// AssignmentSummary reports one assignment pipeline pass.
type AssignmentSummary struct {
	Fetched  int `json:"fetched"`
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AssignmentService drives the assignment pipeline: fetch unassigned
// tickets, classify, select a technician, write back owner and note. The
// service is stateless; every run re-fetches tickets and workload.
type AssignmentService struct {
	client     ticketing.Client
	rules      *config.RuleSet
	classifier *assign.Classifier
	selector   *assign.Selector
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	Client     ticketing.Client
	Rules      *config.RuleSet
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		client:     deps.Client,
		rules:      deps.Rules,
		classifier: assign.NewClassifier(deps.Rules),
		selector:   assign.NewSelector(deps.Rules, deps.Logger),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Run processes one batch of unassigned tickets. A failure on a single
// ticket never aborts the batch; a failure to fetch the batch itself is
// returned so the trigger caller can surface it.
func (s *AssignmentService) Run(ctx context.Context) (AssignmentSummary, error) {
	var summary AssignmentSummary

	tickets, err := s.client.FetchTickets(ctx, ticketing.TicketQuery{
		Statuses:       s.rules.UnassignedStatuses,
		UnassignedOnly: true,
	})
	if err != nil {
		return summary, fmt.Errorf("assignment run: %w", err)
	}
	summary.Fetched = len(tickets)
	if len(tickets) == 0 {
		s.logger.Info("no unassigned tickets found")
		return summary, nil
	}

	members, err := s.client.FetchTechnicians(ctx, true)
	if err != nil {
		return summary, fmt.Errorf("assignment run: %w", err)
	}
	if len(members) == 0 {
		s.logger.Error("no technicians returned by platform, skipping run")
		return summary, nil
	}
	roster := domain.NewRoster(members)
	workload := assign.NewWorkloadSnapshot(s.client, s.rules.WorkloadStatuses, s.logger)

	for _, ticket := range tickets {
		switch s.processTicket(ctx, ticket, roster, workload.Count) {
		case outcomeAssigned:
			summary.Assigned++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
	}

	s.logger.Info("assignment run completed",
		zap.Int("fetched", summary.Fetched),
		zap.Int("assigned", summary.Assigned),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

type ticketOutcome int

const (
	outcomeAssigned ticketOutcome = iota
	outcomeSkipped
	outcomeFailed
)

func (s *AssignmentService) processTicket(ctx context.Context, ticket *domain.Ticket, roster *domain.Roster, workload assign.WorkloadFunc) (outcome ticketOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while processing ticket",
				zap.Int("ticket_id", ticket.ID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			outcome = outcomeFailed
		}
	}()

	s.logger.Info("processing ticket",
		zap.Int("ticket_id", ticket.ID),
		zap.String("summary", ticket.Summary))

	class := s.classifier.Classify(ticket)
	tech := s.selector.Select(ctx, ticket, class, roster, workload)
	if tech == nil {
		s.logger.Warn("no suitable technician for ticket", zap.Int("ticket_id", ticket.ID))
		s.publish(ctx, events.EventTicketSkipped, ticket.ID, events.TicketSkippedPayload{
			Reason: "no valid candidate",
		})
		return outcomeSkipped
	}

	if err := s.client.SetOwner(ctx, ticket.ID, tech.ID); err != nil {
		s.logger.Error("failed to assign ticket",
			zap.Int("ticket_id", ticket.ID),
			zap.String("technician", tech.Email),
			zap.Error(err))
		return outcomeFailed
	}

	// The note is appended only after ownership actually changed.
	s.appendAssignmentNote(ctx, ticket, tech, class)

	s.logger.Info("ticket assigned",
		zap.Int("ticket_id", ticket.ID),
		zap.String("technician", tech.Email))
	s.publish(ctx, events.EventTicketAssigned, ticket.ID, events.TicketAssignedPayload{
		TechnicianID:    tech.ID,
		TechnicianEmail: tech.Email,
		Classification:  string(class.Kind),
	})
	return outcomeAssigned
}

func (s *AssignmentService) appendAssignmentNote(ctx context.Context, ticket *domain.Ticket, tech *domain.Technician, class domain.Classification) {
	techName := tech.Name
	if techName == "" {
		techName = tech.Email
	}
	text := fmt.Sprintf("Ticket automatically assigned to %s by the ticket autopilot at %s",
		techName, s.now().Format("2006-01-02 15:04:05"))

	if class.Kind == domain.ClassMention {
		mentionedName := s.rules.TechProfileFor(class.TechEmail).Name
		if mentionedName == "" {
			mentionedName = class.TechEmail
		}
		text += fmt.Sprintf("\n\nNote: This appears to be spam/email related. %s may be able to provide additional guidance if needed.", mentionedName)
	}

	err := s.client.AppendNote(ctx, ticket.ID, ticketing.Note{
		Text:             text,
		DetailFlag:       true,
		InternalAnalysis: true,
	})
	if err != nil {
		s.logger.Warn("failed to append assignment note",
			zap.Int("ticket_id", ticket.ID),
			zap.Error(err))
	}
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, ticketID int, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Pipeline:  assignmentPipeline,
		TicketID:  ticketID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
