package assign

import (
	"context"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// Selector picks a technician for a classified ticket, or declines.
type Selector struct {
	rules  *config.RuleSet
	logger *zap.Logger
}

// NewSelector builds a selector over the rule set.
func NewSelector(rules *config.RuleSet, logger *zap.Logger) *Selector {
	return &Selector{rules: rules, logger: logger}
}

// Select applies the decision policy in strict order: a specialty match is
// tried first, then a rotation, and both fall through to board-based
// general assignment when they cannot produce a valid technician. A
// mention classification never assigns from its own branch. A nil result
// means no valid candidate exists; the caller logs and skips.
func (s *Selector) Select(ctx context.Context, ticket *domain.Ticket, class domain.Classification, roster *domain.Roster, workload WorkloadFunc) *domain.Technician {
	switch class.Kind {
	case domain.ClassSpecialty:
		if tech := s.trySpecialty(ctx, class.TechEmail, roster, workload); tech != nil {
			return tech
		}
	case domain.ClassRotation:
		if tech := s.tryRotation(ctx, class.TechEmails, roster, workload); tech != nil {
			return tech
		}
	case domain.ClassMention:
		// The mentioned technician is only referenced in the note text.
		s.logger.Info("mention-only classification, using general assignment",
			zap.Int("ticket_id", ticket.ID),
			zap.String("mentioned", class.TechEmail))
	}
	return s.generalAssignment(ctx, ticket, roster, workload)
}

func (s *Selector) trySpecialty(ctx context.Context, email string, roster *domain.Roster, workload WorkloadFunc) *domain.Technician {
	tech, load, ok := s.candidate(ctx, email, roster, workload)
	if ok {
		s.logger.Info("specialty technician selected",
			zap.String("email", tech.Email),
			zap.Int("workload", load))
		return tech
	}
	s.logger.Warn("specialty technician unavailable, falling back to general assignment",
		zap.String("email", email))
	return nil
}

func (s *Selector) tryRotation(ctx context.Context, emails []string, roster *domain.Roster, workload WorkloadFunc) *domain.Technician {
	tech, load := s.leastLoaded(ctx, emails, roster, workload)
	if tech == nil {
		s.logger.Warn("no rotation technician available, falling back to general assignment")
		return nil
	}
	s.logger.Info("rotation technician selected",
		zap.String("email", tech.Email),
		zap.Int("workload", load))
	return tech
}

func (s *Selector) generalAssignment(ctx context.Context, ticket *domain.Ticket, roster *domain.Roster, workload WorkloadFunc) *domain.Technician {
	policy := s.rules.BoardPolicyFor(ticket.Board)

	// Priority-tier candidates come ahead of the defaults; order and
	// duplicates are preserved so ties resolve to the first occurrence.
	candidates := append([]string{}, policy.PriorityTechs[ticket.Priority]...)
	candidates = append(candidates, policy.DefaultTechs...)

	tech, load := s.leastLoaded(ctx, candidates, roster, workload)
	if tech == nil {
		s.logger.Warn("no valid technician for board",
			zap.Int("ticket_id", ticket.ID),
			zap.String("board", ticket.Board))
		return nil
	}
	s.logger.Info("general assignment technician selected",
		zap.String("email", tech.Email),
		zap.Int("workload", load))
	return tech
}

// leastLoaded returns the under-limit candidate with the minimum live
// workload, first listed winning ties, or nil when none qualify.
func (s *Selector) leastLoaded(ctx context.Context, emails []string, roster *domain.Roster, workload WorkloadFunc) (*domain.Technician, int) {
	var best *domain.Technician
	bestLoad := 0
	for _, email := range emails {
		tech, load, ok := s.candidate(ctx, email, roster, workload)
		if !ok {
			continue
		}
		if best == nil || load < bestLoad {
			best = tech
			bestLoad = load
		}
	}
	return best, bestLoad
}

// candidate resolves an email to an assignable technician: present in the
// platform roster, marked available in configuration, and strictly under
// its workload limit. A technician exactly at its limit is excluded.
func (s *Selector) candidate(ctx context.Context, email string, roster *domain.Roster, workload WorkloadFunc) (*domain.Technician, int, bool) {
	tech := roster.ByEmail(email)
	if tech == nil {
		return nil, 0, false
	}
	profile := s.rules.TechProfileFor(email)
	if !profile.Available {
		return nil, 0, false
	}
	limit := profile.WorkloadLimit
	if limit <= 0 {
		limit = s.rules.MaxTicketsPerTech
	}
	load := workload(ctx, tech.ID)
	if load >= limit {
		return nil, 0, false
	}
	return tech, load, true
}
