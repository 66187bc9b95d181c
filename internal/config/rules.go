package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

// TechProfile is the locally configured side of a technician: the platform
// roster supplies identity, this supplies limits and availability.
type TechProfile struct {
	Name          string
	Specialties   []string
	WorkloadLimit int
	Available     bool
}

// AssignmentGroup is one ordered keyword group of the assignment rule
// table. Each group carries its outcome directly instead of being keyed by
// a naming convention.
type AssignmentGroup struct {
	Name     string
	Keywords []string
	Kind     domain.ClassificationKind
	Tech     string
	Techs    []string
}

// Classification returns the outcome this group produces on a match.
func (g AssignmentGroup) Classification() domain.Classification {
	switch g.Kind {
	case domain.ClassRotation:
		return domain.Rotation(g.Techs)
	case domain.ClassMention:
		return domain.Mention(g.Tech)
	default:
		return domain.Specialty(g.Tech)
	}
}

// BoardPolicy configures general assignment for one board: a default
// candidate list plus priority-keyed overrides evaluated ahead of it.
type BoardPolicy struct {
	DefaultTechs  []string
	PriorityTechs map[domain.TicketPriority][]string
}

// PasswordPolicy constrains generated passwords.
type PasswordPolicy struct {
	Length           int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
	ExcludeChars     string
	ExpirationDays   int
}

// RuleSet is the full static rule configuration, loaded once at startup
// and passed explicitly to the classifiers and selectors.
type RuleSet struct {
	TechTeam            map[string]TechProfile
	AssignmentGroups    []AssignmentGroup
	Boards              map[string]BoardPolicy
	DefaultBoard        string
	AutomationRules     []domain.AutomationRule
	PasswordPolicy      PasswordPolicy
	VIPTenants          []string
	UnassignedStatuses  []string
	WorkloadStatuses    []string
	MaxTicketsPerTech   int
	MaxDailyAutomations int
}

// TechProfileFor looks up the configured profile for an email. Unknown
// technicians are treated as available with the global workload cap, the
// same lenient default the assignment rules have always used.
func (r *RuleSet) TechProfileFor(email string) TechProfile {
	if profile, ok := r.TechTeam[email]; ok {
		return profile
	}
	if profile, ok := r.TechTeam[strings.ToLower(email)]; ok {
		return profile
	}
	return TechProfile{Available: true, WorkloadLimit: r.MaxTicketsPerTech}
}

// BoardPolicyFor resolves the policy for a board name, falling back to the
// default board when the name is unrecognized.
func (r *RuleSet) BoardPolicyFor(board string) BoardPolicy {
	if policy, ok := r.Boards[board]; ok {
		return policy
	}
	return r.Boards[r.DefaultBoard]
}

// LoadRules returns the rule set from the YAML file at path, or the
// compiled-in defaults when path is empty.
func LoadRules(path string) (*RuleSet, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, rules.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var file ruleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	file.apply(rules)
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks cross-references the rule evaluation relies on.
func (r *RuleSet) Validate() error {
	if _, ok := r.Boards[r.DefaultBoard]; !ok {
		return fmt.Errorf("default board %q has no policy", r.DefaultBoard)
	}
	for _, group := range r.AssignmentGroups {
		switch group.Kind {
		case domain.ClassSpecialty, domain.ClassMention:
			if group.Tech == "" {
				return fmt.Errorf("assignment group %q needs a tech email", group.Name)
			}
		case domain.ClassRotation:
			if len(group.Techs) == 0 {
				return fmt.Errorf("assignment group %q needs a tech list", group.Name)
			}
		default:
			return fmt.Errorf("assignment group %q has unknown kind %q", group.Name, group.Kind)
		}
	}
	for _, rule := range r.AutomationRules {
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("automation rule %q has no keywords", rule.Type)
		}
	}
	if r.PasswordPolicy.Length <= 0 {
		return fmt.Errorf("password policy length must be positive")
	}
	return nil
}

// ruleFile is the YAML shape of an overriding rule set. Absent sections
// keep their defaults.
type ruleFile struct {
	TechTeam map[string]struct {
		Name          string   `yaml:"name"`
		Specialties   []string `yaml:"specialties"`
		WorkloadLimit int      `yaml:"workload_limit"`
		Available     bool     `yaml:"available"`
	} `yaml:"tech_team"`
	AssignmentGroups []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
		Kind     string   `yaml:"kind"`
		Tech     string   `yaml:"tech"`
		Techs    []string `yaml:"techs"`
	} `yaml:"assignment_groups"`
	Boards map[string]struct {
		DefaultTechs  []string            `yaml:"default_techs"`
		PriorityTechs map[string][]string `yaml:"priority_techs"`
	} `yaml:"boards"`
	DefaultBoard    string `yaml:"default_board"`
	AutomationRules []struct {
		Type              string   `yaml:"type"`
		Keywords          []string `yaml:"keywords"`
		AutoResolve       bool     `yaml:"auto_resolve"`
		PriorityThreshold string   `yaml:"priority_threshold"`
	} `yaml:"automation_rules"`
	PasswordPolicy *struct {
		Length           int    `yaml:"length"`
		RequireUppercase bool   `yaml:"require_uppercase"`
		RequireLowercase bool   `yaml:"require_lowercase"`
		RequireNumbers   bool   `yaml:"require_numbers"`
		RequireSpecial   bool   `yaml:"require_special"`
		ExcludeChars     string `yaml:"exclude_chars"`
		ExpirationDays   int    `yaml:"expiration_days"`
	} `yaml:"password_policy"`
	VIPTenants          []string `yaml:"vip_tenants"`
	UnassignedStatuses  []string `yaml:"unassigned_statuses"`
	WorkloadStatuses    []string `yaml:"workload_statuses"`
	MaxTicketsPerTech   int      `yaml:"max_tickets_per_tech"`
	MaxDailyAutomations int      `yaml:"max_daily_automations"`
}

func (f *ruleFile) apply(rules *RuleSet) {
	if len(f.TechTeam) > 0 {
		rules.TechTeam = make(map[string]TechProfile, len(f.TechTeam))
		for email, profile := range f.TechTeam {
			rules.TechTeam[email] = TechProfile{
				Name:          profile.Name,
				Specialties:   profile.Specialties,
				WorkloadLimit: profile.WorkloadLimit,
				Available:     profile.Available,
			}
		}
	}
	if len(f.AssignmentGroups) > 0 {
		rules.AssignmentGroups = rules.AssignmentGroups[:0]
		for _, group := range f.AssignmentGroups {
			rules.AssignmentGroups = append(rules.AssignmentGroups, AssignmentGroup{
				Name:     group.Name,
				Keywords: group.Keywords,
				Kind:     domain.ClassificationKind(group.Kind),
				Tech:     group.Tech,
				Techs:    group.Techs,
			})
		}
	}
	if len(f.Boards) > 0 {
		rules.Boards = make(map[string]BoardPolicy, len(f.Boards))
		for name, board := range f.Boards {
			policy := BoardPolicy{DefaultTechs: board.DefaultTechs}
			if len(board.PriorityTechs) > 0 {
				policy.PriorityTechs = make(map[domain.TicketPriority][]string, len(board.PriorityTechs))
				for priority, techs := range board.PriorityTechs {
					policy.PriorityTechs[domain.TicketPriority(priority)] = techs
				}
			}
			rules.Boards[name] = policy
		}
	}
	if f.DefaultBoard != "" {
		rules.DefaultBoard = f.DefaultBoard
	}
	if len(f.AutomationRules) > 0 {
		rules.AutomationRules = rules.AutomationRules[:0]
		for _, rule := range f.AutomationRules {
			rules.AutomationRules = append(rules.AutomationRules, domain.AutomationRule{
				Type:              domain.AutomationType(rule.Type),
				Keywords:          rule.Keywords,
				AutoResolve:       rule.AutoResolve,
				PriorityThreshold: domain.TicketPriority(rule.PriorityThreshold),
			})
		}
	}
	if f.PasswordPolicy != nil {
		rules.PasswordPolicy = PasswordPolicy{
			Length:           f.PasswordPolicy.Length,
			RequireUppercase: f.PasswordPolicy.RequireUppercase,
			RequireLowercase: f.PasswordPolicy.RequireLowercase,
			RequireNumbers:   f.PasswordPolicy.RequireNumbers,
			RequireSpecial:   f.PasswordPolicy.RequireSpecial,
			ExcludeChars:     f.PasswordPolicy.ExcludeChars,
			ExpirationDays:   f.PasswordPolicy.ExpirationDays,
		}
	}
	if len(f.VIPTenants) > 0 {
		rules.VIPTenants = f.VIPTenants
	}
	if len(f.UnassignedStatuses) > 0 {
		rules.UnassignedStatuses = f.UnassignedStatuses
	}
	if len(f.WorkloadStatuses) > 0 {
		rules.WorkloadStatuses = f.WorkloadStatuses
	}
	if f.MaxTicketsPerTech > 0 {
		rules.MaxTicketsPerTech = f.MaxTicketsPerTech
	}
	if f.MaxDailyAutomations > 0 {
		rules.MaxDailyAutomations = f.MaxDailyAutomations
	}
}
