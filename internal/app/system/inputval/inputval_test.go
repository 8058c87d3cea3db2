package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"user123@example.co.uk", true},
		{"a@b.co", true},

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - undotted domain (rejected on purpose)
		{"user@localhost", false},
		{"admin@mailserver", false},

		// Invalid emails - bad domain shape
		{"user@.example.com", false},
		{"user@example.com.", false},
		{"user@example..com", false},

		// Invalid emails - multiple separators
		{"user@@example.com", false},
		{"user@foo@example.com", false},

		// Invalid emails - whitespace inside
		{"user @example.com", false},
		{"user@ example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPriority(t *testing.T) {
	tests := []struct {
		priority string
		want     bool
	}{
		{"low", true},
		{"medium", true},
		{"high", true},
		{"HIGH", true},
		{"  low  ", true},
		{"", false},
		{"urgent", false},
	}

	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			got := IsValidPriority(tt.priority)
			if got != tt.want {
				t.Errorf("IsValidPriority(%q) = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"pending", true},
		{"in_progress", true},
		{"completed", true},
		{"Completed", true},
		{"", false},
		{"done", false},
		{"in progress", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := IsValidStatus(tt.status)
			if got != tt.want {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
