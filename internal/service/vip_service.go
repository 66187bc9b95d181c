package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
	"github.com/buckeye-it/ticket-autopilot/internal/events"
	"github.com/buckeye-it/ticket-autopilot/internal/guard"
	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
	"github.com/buckeye-it/ticket-autopilot/internal/vip"
)

const vipPipeline = "vip_automation"

// resolvedStatus is the platform status a successfully automated ticket
// is moved to when its rule allows auto-resolution.
const resolvedStatus = "Closed"

// VIPSummary reports one VIP automation pipeline pass.
type VIPSummary struct {
	Fetched   int `json:"fetched"`
	VIP       int `json:"vip"`
	Automated int `json:"automated"`
	Resolved  int `json:"resolved"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Blocked   int `json:"blocked"`
}

// VIPAutomationService drives the VIP remediation pipeline: fetch open
// tickets, keep the VIP tenants', match automation rules, execute and
// optionally resolve.
type VIPAutomationService struct {
	client     ticketing.Client
	rules      *config.RuleSet
	classifier *vip.Classifier
	executor   *vip.Executor
	limiter    *guard.DailyLimiter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// VIPDependencies bundles collaborators.
type VIPDependencies struct {
	Client     ticketing.Client
	Rules      *config.RuleSet
	Executor   *vip.Executor
	Limiter    *guard.DailyLimiter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewVIPAutomationService creates the service.
func NewVIPAutomationService(deps VIPDependencies) *VIPAutomationService {
	return &VIPAutomationService{
		client:     deps.Client,
		rules:      deps.Rules,
		classifier: vip.NewClassifier(deps.Rules),
		executor:   deps.Executor,
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Run processes one batch of VIP tickets. Per-ticket failures never abort
// the batch.
func (s *VIPAutomationService) Run(ctx context.Context) (VIPSummary, error) {
	var summary VIPSummary

	tickets, err := s.client.FetchTickets(ctx, ticketing.TicketQuery{
		Statuses: s.rules.UnassignedStatuses,
	})
	if err != nil {
		return summary, fmt.Errorf("vip automation run: %w", err)
	}
	summary.Fetched = len(tickets)

	for _, ticket := range tickets {
		if !vip.IsVIPTicket(ticket, s.rules.VIPTenants) {
			continue
		}
		summary.VIP++
		s.processTicket(ctx, ticket, &summary)
	}

	s.logger.Info("vip automation run completed",
		zap.Int("fetched", summary.Fetched),
		zap.Int("vip", summary.VIP),
		zap.Int("automated", summary.Automated),
		zap.Int("resolved", summary.Resolved),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("blocked", summary.Blocked))
	return summary, nil
}

func (s *VIPAutomationService) processTicket(ctx context.Context, ticket *domain.Ticket, summary *VIPSummary) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while processing vip ticket",
				zap.Int("ticket_id", ticket.ID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			summary.Failed++
		}
	}()

	s.logger.Info("processing vip ticket",
		zap.Int("ticket_id", ticket.ID),
		zap.String("summary", ticket.Summary))

	decision := s.classifier.Classify(ticket)
	if decision == nil {
		s.logger.Debug("no automation rule matched", zap.Int("ticket_id", ticket.ID))
		summary.Skipped++
		return
	}
	s.logger.Info("automation detected",
		zap.Int("ticket_id", ticket.ID),
		zap.String("type", string(decision.Type)))

	count, allowed := s.limiter.Allow(ctx)
	if !allowed {
		s.logger.Warn("daily automation cap reached, skipping",
			zap.Int("ticket_id", ticket.ID),
			zap.Int64("count", count))
		s.publish(ctx, events.EventAutomationBlocked, ticket.ID, events.AutomationBlockedPayload{
			AutomationType: decision.Type,
			DailyCount:     count,
		})
		summary.Blocked++
		return
	}

	if err := s.executor.Execute(ctx, ticket, decision); err != nil {
		s.logger.Error("automation failed",
			zap.Int("ticket_id", ticket.ID),
			zap.String("type", string(decision.Type)),
			zap.Error(err))
		s.limiter.Release(ctx)
		s.publish(ctx, events.EventAutomationFailed, ticket.ID, events.AutomationFailedPayload{
			AutomationType: decision.Type,
			Reason:         err.Error(),
		})
		summary.Failed++
		return
	}
	summary.Automated++

	resolved := false
	if decision.Rule.AutoResolve {
		// Resolution is attempted only after the action itself succeeded.
		if err := s.client.SetStatus(ctx, ticket.ID, resolvedStatus); err != nil {
			s.logger.Error("failed to resolve ticket after automation",
				zap.Int("ticket_id", ticket.ID),
				zap.Error(err))
		} else {
			resolved = true
			summary.Resolved++
		}
	}

	s.publish(ctx, events.EventTicketAutomated, ticket.ID, events.TicketAutomatedPayload{
		AutomationType: decision.Type,
		AutoResolved:   resolved,
	})
}

func (s *VIPAutomationService) publish(ctx context.Context, eventType events.EventType, ticketID int, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Pipeline:  vipPipeline,
		TicketID:  ticketID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
