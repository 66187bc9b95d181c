package vip

import (
	"regexp"
	"strings"
)

var nonNameChars = regexp.MustCompile(`[^a-zA-Z\s]`)

const maxUsernameLength = 20

// UsernameFromName derives a login name from an employee's full name:
// first initial plus last name, lower-cased, capped at 20 characters. A
// single-token name is used as-is. No uniqueness check is performed
// against existing accounts; collision handling is an open operational
// question.
func UsernameFromName(fullName string) string {
	clean := nonNameChars.ReplaceAllString(fullName, "")
	parts := strings.Fields(clean)
	if len(parts) == 0 {
		return ""
	}

	var username string
	if len(parts) >= 2 {
		username = strings.ToLower(parts[0][:1] + parts[len(parts)-1])
	} else {
		username = strings.ToLower(parts[0])
	}

	if len(username) > maxUsernameLength {
		username = username[:maxUsernameLength]
	}
	return username
}
