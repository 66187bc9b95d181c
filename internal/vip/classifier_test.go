package vip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

func TestClassifyPriorityGate(t *testing.T) {
	classifier := NewClassifier(config.DefaultRules())

	testCases := []struct {
		name     string
		summary  string
		priority domain.TicketPriority
		expected domain.AutomationType
		none     bool
	}{
		{
			name:     "medium ticket passes medium threshold",
			summary:  "password reset needed",
			priority: domain.TicketPriorityMedium,
			expected: domain.AutomationPasswordReset,
		},
		{
			name:     "critical ticket passes medium threshold",
			summary:  "account locked",
			priority: domain.TicketPriorityCritical,
			expected: domain.AutomationPasswordReset,
		},
		{
			name:     "low ticket never passes medium threshold despite keywords",
			summary:  "password reset needed urgently",
			priority: domain.TicketPriorityLow,
			none:     true,
		},
		{
			name:     "medium ticket fails high threshold for account creation",
			summary:  "new hire starting monday",
			priority: domain.TicketPriorityMedium,
			none:     true,
		},
		{
			name:     "high ticket passes high threshold for account disable",
			summary:  "please revoke access for contractor",
			priority: domain.TicketPriorityHigh,
			expected: domain.AutomationAccountDisable,
		},
		{
			name:     "no keywords matches nothing",
			summary:  "printer out of toner",
			priority: domain.TicketPriorityCritical,
			none:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := &domain.Ticket{ID: 1, Summary: tc.summary, Priority: tc.priority}
			decision := classifier.Classify(ticket)
			if tc.none {
				assert.Nil(t, decision)
				return
			}
			require.NotNil(t, decision)
			assert.Equal(t, tc.expected, decision.Type)
			assert.Equal(t, matchConfidence, decision.Confidence)
		})
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	classifier := NewClassifier(config.DefaultRules())

	// Text matches both password_reset ("locked out") and account_disable
	// ("remove access"); the earlier declared rule wins.
	ticket := &domain.Ticket{
		ID:       2,
		Summary:  "User locked out, please remove access to old mailbox",
		Priority: domain.TicketPriorityHigh,
	}
	decision := classifier.Classify(ticket)
	require.NotNil(t, decision)
	assert.Equal(t, domain.AutomationPasswordReset, decision.Type)
}

func TestClassifyExtractsFields(t *testing.T) {
	classifier := NewClassifier(config.DefaultRules())

	ticket := &domain.Ticket{
		ID:          3,
		Summary:     "Password Reset Request",
		Description: "User john.doe@company.com needs password reset",
		Priority:    domain.TicketPriorityMedium,
	}
	decision := classifier.Classify(ticket)
	require.NotNil(t, decision)
	assert.Equal(t, domain.AutomationPasswordReset, decision.Type)
	assert.Equal(t, "john.doe@company.com", decision.Fields[domain.FieldUsername])
	assert.True(t, decision.Rule.AutoResolve)
}

func TestIsVIPTicket(t *testing.T) {
	tenants := config.DefaultRules().VIPTenants

	testCases := []struct {
		company string
		vip     bool
	}{
		{"VIP_Client_1 Holdings", true},
		{"Premium_Client", true},
		{"ENTERPRISE_CLIENT west", true},
		{"Ordinary Corp", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.company, func(t *testing.T) {
			ticket := &domain.Ticket{CompanyName: tc.company}
			assert.Equal(t, tc.vip, IsVIPTicket(ticket, tenants))
		})
	}
}
