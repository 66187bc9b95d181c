package vip

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GeneratePassword produces a password satisfying the policy: exact
// length, at least one character from each required class, and no
// character from the exclusion set. One character per required class is
// placed first, the rest are drawn uniformly from the union of allowed
// classes, and the result is shuffled so character positions carry no
// information about which requirement they satisfied.
//
// Randomness comes from crypto/rand throughout.
func GeneratePassword(policy config.PasswordPolicy) (string, error) {
	lower := stripChars(lowercaseChars, policy.ExcludeChars)
	upper := stripChars(uppercaseChars, policy.ExcludeChars)
	digits := stripChars(digitChars, policy.ExcludeChars)
	special := stripChars(specialChars, policy.ExcludeChars)

	var required []string
	if policy.RequireLowercase {
		required = append(required, lower)
	}
	if policy.RequireUppercase {
		required = append(required, upper)
	}
	if policy.RequireNumbers {
		required = append(required, digits)
	}
	if policy.RequireSpecial {
		required = append(required, special)
	}
	if len(required) > policy.Length {
		return "", fmt.Errorf("password length %d cannot satisfy %d required classes", policy.Length, len(required))
	}

	allChars := lower + upper + digits + special
	if allChars == "" {
		return "", fmt.Errorf("password policy excludes every character")
	}

	password := make([]byte, 0, policy.Length)
	for _, class := range required {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}
	for len(password) < policy.Length {
		ch, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func stripChars(set, exclude string) string {
	if exclude == "" {
		return set
	}
	var b strings.Builder
	for _, ch := range set {
		if !strings.ContainsRune(exclude, ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func randomChar(set string) (byte, error) {
	if set == "" {
		return 0, fmt.Errorf("required character class is empty after exclusions")
	}
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("random source: %w", err)
	}
	return set[idx.Int64()], nil
}

func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("random source: %w", err)
		}
		chars[i], chars[j.Int64()] = chars[j.Int64()], chars[i]
	}
	return nil
}
