// Package assign holds the ticket classification and technician selection
// engine for the assignment pipeline.
package assign

import (
	"strings"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// Classifier matches ticket text against the ordered assignment keyword
// groups. The rule set is fixed at construction.
type Classifier struct {
	groups []config.AssignmentGroup
}

// NewClassifier builds a classifier over the rule set's keyword groups.
func NewClassifier(rules *config.RuleSet) *Classifier {
	return &Classifier{groups: rules.AssignmentGroups}
}

// Classify returns the first-match classification for the ticket.
//
// Matching is substring based, not word-boundary based: "serveradmin"
// matches the "server" keyword. That mirrors the behavior the assignment
// rules were tuned against.
func (c *Classifier) Classify(ticket *domain.Ticket) domain.Classification {
	text := strings.ToLower(ticket.Summary + " " + ticket.Description)
	for _, group := range c.groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return group.Classification()
			}
		}
	}
	return domain.General()
}
