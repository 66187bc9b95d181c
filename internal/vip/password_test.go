package vip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
)

func containsAny(s, set string) bool {
	return strings.ContainsAny(s, set)
}

func TestGeneratePasswordSatisfiesPolicy(t *testing.T) {
	policy := config.PasswordPolicy{
		Length:           12,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
		ExcludeChars:     "lI1O0",
	}

	for i := 0; i < 100; i++ {
		password, err := GeneratePassword(policy)
		require.NoError(t, err)

		assert.Len(t, password, 12)
		assert.True(t, containsAny(password, "abcdefghijkmnopqrstuvwxyz"), "missing lowercase: %q", password)
		assert.True(t, containsAny(password, "ABCDEFGHJKLMNPQRSTUVWXYZ"), "missing uppercase: %q", password)
		assert.True(t, containsAny(password, "23456789"), "missing digit: %q", password)
		assert.True(t, containsAny(password, specialChars), "missing special: %q", password)
		assert.False(t, containsAny(password, "lI1O0"), "excluded char present: %q", password)
	}
}

func TestGeneratePasswordOptionalClasses(t *testing.T) {
	policy := config.PasswordPolicy{
		Length:         8,
		RequireNumbers: true,
	}

	password, err := GeneratePassword(policy)
	require.NoError(t, err)
	assert.Len(t, password, 8)
	assert.True(t, containsAny(password, digitChars))
}

func TestGeneratePasswordErrors(t *testing.T) {
	t.Run("length too short for required classes", func(t *testing.T) {
		policy := config.PasswordPolicy{
			Length:           2,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
		}
		_, err := GeneratePassword(policy)
		assert.Error(t, err)
	})

	t.Run("required class emptied by exclusions", func(t *testing.T) {
		policy := config.PasswordPolicy{
			Length:         12,
			RequireNumbers: true,
			ExcludeChars:   digitChars,
		}
		_, err := GeneratePassword(policy)
		assert.Error(t, err)
	})
}
