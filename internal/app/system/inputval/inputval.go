// internal/app/system/inputval/inputval.go
package inputval

import "strings"

// IsValidEmail reports whether s is structurally usable as an email address:
// exactly one '@', a non-empty local part, and a domain containing at least
// one '.' with non-empty labels around it. This is deliberately narrower than
// full RFC 5322 parsing; addresses like "user@localhost" are rejected because
// stored emails must carry a dotted domain.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" || domain == "" {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	return true
}

// IsValidPriority reports whether s names a known task priority.
func IsValidPriority(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "medium", "high":
		return true
	}
	return false
}

// IsValidStatus reports whether s names a known task status.
func IsValidStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "in_progress", "completed":
		return true
	}
	return false
}
