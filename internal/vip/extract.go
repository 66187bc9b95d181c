package vip

import (
	"regexp"
	"strings"

	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	domainPattern = regexp.MustCompile(`(?i)domain[:\s]+([A-Za-z0-9.-]+)`)
	namePattern   = regexp.MustCompile(`(?i)(?:employee|user|person)[:\s]+([A-Za-z\s]+)`)
	deptPattern   = regexp.MustCompile(`(?i)(?:department|dept)[:\s]+([A-Za-z\s]+)`)
	reasonPattern = regexp.MustCompile(`(?i)(?:reason|because)[:\s]+([^.]+)`)
)

// Extract pulls the structured fields the given automation type needs out
// of free ticket text. Extraction never fails: fields that cannot be found
// are simply absent, and the executor enforces its own preconditions.
func Extract(text string, automationType domain.AutomationType) map[string]string {
	fields := make(map[string]string)

	switch automationType {
	case domain.AutomationPasswordReset:
		if email := emailPattern.FindString(text); email != "" {
			fields[domain.FieldUsername] = email
		}
		if m := domainPattern.FindStringSubmatch(text); m != nil {
			fields[domain.FieldDomain] = m[1]
		}

	case domain.AutomationAccountCreation:
		if m := namePattern.FindStringSubmatch(text); m != nil {
			fields[domain.FieldEmployeeName] = strings.TrimSpace(m[1])
		}
		if m := deptPattern.FindStringSubmatch(text); m != nil {
			fields[domain.FieldDepartment] = strings.TrimSpace(m[1])
		}
		if email := emailPattern.FindString(text); email != "" {
			fields[domain.FieldEmail] = email
		}

	case domain.AutomationAccountDisable:
		if email := emailPattern.FindString(text); email != "" {
			fields[domain.FieldUsername] = email
		}
		if m := reasonPattern.FindStringSubmatch(text); m != nil {
			fields[domain.FieldReason] = strings.TrimSpace(m[1])
		}
	}

	return fields
}
