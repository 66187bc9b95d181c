package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckeye-it/ticket-autopilot/internal/domain"
)

func TestDefaultRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, "Help Desk (MS)", rules.DefaultBoard)
	assert.Len(t, rules.AssignmentGroups, 6)
	assert.Equal(t, 50, rules.MaxDailyAutomations)
}

func TestLoadRulesOverridesSectionsWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
vip_tenants:
  - special_tenant
max_daily_automations: 5
assignment_groups:
  - name: everything
    keywords: ["issue"]
    kind: specialty
    tech: solo@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	// Overridden sections are replaced entirely.
	assert.Equal(t, []string{"special_tenant"}, rules.VIPTenants)
	assert.Equal(t, 5, rules.MaxDailyAutomations)
	require.Len(t, rules.AssignmentGroups, 1)
	assert.Equal(t, "solo@example.com", rules.AssignmentGroups[0].Tech)

	// Untouched sections keep their defaults.
	assert.Equal(t, "Help Desk (MS)", rules.DefaultBoard)
	assert.Len(t, rules.AutomationRules, 3)
	assert.Equal(t, 12, rules.PasswordPolicy.Length)
}

func TestLoadRulesRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
assignment_groups:
  - name: broken
    keywords: ["x"]
    kind: rotation
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestTechProfileFor(t *testing.T) {
	rules := DefaultRules()

	t.Run("known technician", func(t *testing.T) {
		profile := rules.TechProfileFor("jpizana@buckeyeit.com")
		assert.Equal(t, "Jose Pizana", profile.Name)
		assert.Equal(t, 8, profile.WorkloadLimit)
	})

	t.Run("mixed case email", func(t *testing.T) {
		profile := rules.TechProfileFor("JPizana@BuckeyeIT.com")
		assert.Equal(t, "Jose Pizana", profile.Name)
	})

	t.Run("unknown technician gets lenient default", func(t *testing.T) {
		profile := rules.TechProfileFor("contractor@other.com")
		assert.True(t, profile.Available)
		assert.Equal(t, rules.MaxTicketsPerTech, profile.WorkloadLimit)
	})
}

func TestBoardPolicyFor(t *testing.T) {
	rules := DefaultRules()

	policy := rules.BoardPolicyFor("Project (MS)")
	assert.Equal(t, []string{
		"jpizana@buckeyeit.com",
		"msmith@buckeyeit.com",
		"jhamilton@buckeyeit.com",
	}, policy.DefaultTechs)

	fallback := rules.BoardPolicyFor("No Such Board")
	assert.Equal(t, rules.Boards["Help Desk (MS)"], fallback)
}

func TestAssignmentGroupClassification(t *testing.T) {
	testCases := []struct {
		name     string
		group    AssignmentGroup
		expected domain.Classification
	}{
		{
			name:     "specialty",
			group:    AssignmentGroup{Kind: domain.ClassSpecialty, Tech: "a@x.com"},
			expected: domain.Specialty("a@x.com"),
		},
		{
			name:     "rotation",
			group:    AssignmentGroup{Kind: domain.ClassRotation, Techs: []string{"a@x.com", "b@x.com"}},
			expected: domain.Rotation([]string{"a@x.com", "b@x.com"}),
		},
		{
			name:     "mention",
			group:    AssignmentGroup{Kind: domain.ClassMention, Tech: "a@x.com"},
			expected: domain.Mention("a@x.com"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.group.Classification())
		})
	}
}
