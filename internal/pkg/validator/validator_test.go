package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+09:00"}
	invalid := []string{"2024-01-15", "10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidStaffRole(t *testing.T) {
	for _, role := range []string{"owner", "manager", "cast"} {
		if !IsValidStaffRole(role) {
			t.Errorf("IsValidStaffRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"admin", "", "OWNER"} {
		if IsValidStaffRole(role) {
			t.Errorf("IsValidStaffRole(%q) = true, want false", role)
		}
	}
}

func TestIsValidTableNumber(t *testing.T) {
	valid := []string{"A1", "VIP-1", "12", "b3"}
	invalid := []string{"", "-A", "TOO-LONG-TABLE-NAME", "A 1"}
	for _, s := range valid {
		if !IsValidTableNumber(s) {
			t.Errorf("IsValidTableNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTableNumber(s) {
			t.Errorf("IsValidTableNumber(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	if !IsValidTimezone("Asia/Tokyo") {
		t.Error(`IsValidTimezone("Asia/Tokyo") = false, want true`)
	}
	for _, s := range []string{"", "Mars/OlympusMons"} {
		if IsValidTimezone(s) {
			t.Errorf("IsValidTimezone(%q) = true, want false", s)
		}
	}
}
