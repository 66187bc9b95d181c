package config

import "github.com/buckeye-it/ticket-autopilot/internal/domain"

// DefaultRules returns the production rule set for the Buckeye IT team.
// A YAML rules file overrides sections of this wholesale; sections it
// omits keep these values.
func DefaultRules() *RuleSet {
	return &RuleSet{
		TechTeam: map[string]TechProfile{
			"jhamilton@buckeyeit.com": {
				Name:          "John Hamilton",
				Specialties:   []string{"remote_support", "email_accounts", "password_resets", "general_remote"},
				WorkloadLimit: 15,
				Available:     true,
			},
			"jboos@buckeyeit.com": {
				Name:          "Jacon Boos",
				Specialties:   []string{"onsite_support", "hardware"},
				WorkloadLimit: 10,
				Available:     true,
			},
			"ibaker@buckeyeit.com": {
				Name:          "Isaac Baker",
				Specialties:   []string{"onsite_support", "hardware"},
				WorkloadLimit: 10,
				Available:     true,
			},
			"mperry@buckeyeit.com": {
				Name:          "Matthew Perry",
				Specialties:   []string{"onsite_support", "hardware"},
				WorkloadLimit: 10,
				Available:     true,
			},
			"jpizana@buckeyeit.com": {
				Name:          "Jose Pizana",
				Specialties:   []string{"tier3", "firewall", "vpn", "network", "fortigate", "audit"},
				WorkloadLimit: 8,
				Available:     true,
			},
			"msmith@buckeyeit.com": {
				Name:          "Michael Smith",
				Specialties:   []string{"server", "backup", "domain_controller"},
				WorkloadLimit: 8,
				Available:     true,
			},
			"jschaaf@buckeyeit.com": {
				Name:          "Jake Schaff",
				Specialties:   []string{"quotes"},
				WorkloadLimit: 5,
				Available:     true,
			},
			// Phil is referenced in spam notes but never handles tickets directly.
			"pgosche@buckeyeit.com": {
				Name:          "Phil Gosche",
				Specialties:   []string{"spam", "blocked_email"},
				WorkloadLimit: 3,
				Available:     false,
			},
		},
		AssignmentGroups: []AssignmentGroup{
			{
				Name:     "tier3",
				Keywords: []string{"firewall", "vpn", "network outage", "audit", "fortigate", "network configuration"},
				Kind:     domain.ClassSpecialty,
				Tech:     "jpizana@buckeyeit.com",
			},
			{
				Name:     "server",
				Keywords: []string{"server", "backup", "domain controller", "server maintenance", "backup failure"},
				Kind:     domain.ClassSpecialty,
				Tech:     "msmith@buckeyeit.com",
			},
			{
				Name:     "quote",
				Keywords: []string{"quote", "quotation", "pricing", "cost estimate", "proposal"},
				Kind:     domain.ClassSpecialty,
				Tech:     "jschaaf@buckeyeit.com",
			},
			{
				Name:     "remote",
				Keywords: []string{"password reset", "new email", "email creation", "account setup", "remote support", "remote access"},
				Kind:     domain.ClassSpecialty,
				Tech:     "jhamilton@buckeyeit.com",
			},
			{
				Name:     "onsite",
				Keywords: []string{"monitor", "printer", "hardware", "physical", "onsite", "on-site", "computer won't turn on", "broken", "damaged"},
				Kind:     domain.ClassRotation,
				Techs:    []string{"jboos@buckeyeit.com", "ibaker@buckeyeit.com", "mperry@buckeyeit.com"},
			},
			{
				Name:     "spam",
				Keywords: []string{"spam", "blocked email", "email blocked", "junk mail", "phishing"},
				Kind:     domain.ClassMention,
				Tech:     "pgosche@buckeyeit.com",
			},
		},
		Boards: map[string]BoardPolicy{
			"Help Desk (MS)": {
				DefaultTechs: []string{
					"jhamilton@buckeyeit.com",
					"jboos@buckeyeit.com",
					"ibaker@buckeyeit.com",
					"mperry@buckeyeit.com",
				},
				PriorityTechs: map[domain.TicketPriority][]string{
					domain.TicketPriorityCritical: {
						"jpizana@buckeyeit.com",
						"msmith@buckeyeit.com",
					},
					domain.TicketPriorityHigh: {
						"jpizana@buckeyeit.com",
						"msmith@buckeyeit.com",
						"jhamilton@buckeyeit.com",
					},
				},
			},
			"Implementation (MS)": {
				DefaultTechs: []string{
					"jpizana@buckeyeit.com",
					"msmith@buckeyeit.com",
					"jhamilton@buckeyeit.com",
				},
				PriorityTechs: map[domain.TicketPriority][]string{
					domain.TicketPriorityCritical: {
						"jpizana@buckeyeit.com",
						"msmith@buckeyeit.com",
					},
				},
			},
			"Project (MS)": {
				DefaultTechs: []string{
					"jpizana@buckeyeit.com",
					"msmith@buckeyeit.com",
					"jhamilton@buckeyeit.com",
				},
			},
		},
		DefaultBoard: "Help Desk (MS)",
		AutomationRules: []domain.AutomationRule{
			{
				Type: domain.AutomationPasswordReset,
				Keywords: []string{
					"password reset", "forgot password", "locked out", "password expired",
					"can't login", "login issue", "account locked", "reset password",
				},
				AutoResolve:       true,
				PriorityThreshold: domain.TicketPriorityMedium,
			},
			{
				Type: domain.AutomationAccountCreation,
				Keywords: []string{
					"new user", "create account", "new employee", "account setup",
					"user creation", "new hire", "employee onboarding", "setup account",
				},
				AutoResolve:       false,
				PriorityThreshold: domain.TicketPriorityHigh,
			},
			{
				Type: domain.AutomationAccountDisable,
				Keywords: []string{
					"disable account", "terminate user", "remove access", "account deactivation",
					"user termination", "revoke access", "disable user", "employee termination",
				},
				AutoResolve:       false,
				PriorityThreshold: domain.TicketPriorityHigh,
			},
		},
		PasswordPolicy: PasswordPolicy{
			Length:           12,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
			ExcludeChars:     "lI1O0",
			ExpirationDays:   90,
		},
		VIPTenants: []string{
			"vip_client_1",
			"vip_client_2",
			"premium_client",
			"enterprise_client",
		},
		UnassignedStatuses: []string{
			"Needs Worked",
			"New",
			"Pending",
		},
		WorkloadStatuses: []string{
			"Needs Worked",
			"Working Issue Now",
		},
		MaxTicketsPerTech:   15,
		MaxDailyAutomations: 50,
	}
}
