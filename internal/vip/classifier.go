// Package vip implements the automated-remediation pipeline for VIP
// tenant tickets: rule matching, field extraction, and the automation
// actions themselves.
package vip

import (
	"strings"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// matchConfidence is the fixed confidence attached to a keyword match.
const matchConfidence = 0.9

// Classifier matches tickets against the ordered automation rules.
type Classifier struct {
	rules []domain.AutomationRule
}

// NewClassifier builds a classifier over the rule set's automation rules.
func NewClassifier(rules *config.RuleSet) *Classifier {
	return &Classifier{rules: rules.AutomationRules}
}

// Classify returns the first automation rule that fully matches the
// ticket, or nil when none does. The priority gate is checked before any
// keyword of the rule is scanned: a ticket less urgent than the rule's
// threshold skips the rule entirely.
func (c *Classifier) Classify(ticket *domain.Ticket) *domain.AutomationDecision {
	lowered := strings.ToLower(ticket.Summary + " " + ticket.Description)
	for _, rule := range c.rules {
		if !ticket.Priority.AtLeast(rule.PriorityThreshold) {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return &domain.AutomationDecision{
					Type:       rule.Type,
					Rule:       rule,
					Confidence: matchConfidence,
					Fields:     Extract(ticket.Summary+" "+ticket.Description, rule.Type),
				}
			}
		}
	}
	return nil
}

// IsVIPTicket reports whether the ticket belongs to one of the configured
// VIP tenants, matched as a case-insensitive substring of the company name.
func IsVIPTicket(ticket *domain.Ticket, tenants []string) bool {
	company := strings.ToLower(ticket.CompanyName)
	for _, tenant := range tenants {
		if strings.Contains(company, strings.ToLower(tenant)) {
			return true
		}
	}
	return false
}
