package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "alice.smith@example.co.uk"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "not-an-email", "@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "user_123", "A1234567890123456789"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) error = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "ab", "has space", "way_too_long_username_over_20"}
	for _, name := range invalid {
		if err := ValidateUsername(name); err == nil {
			t.Errorf("ValidateUsername(%q) error = nil, want error", name)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough1"); err != nil {
		t.Errorf("ValidatePassword error = %v, want nil", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password should be rejected")
	}
}

func TestValidateTemplateType(t *testing.T) {
	for _, kind := range []string{"blog_post", "email_draft", "image"} {
		if err := ValidateTemplateType(kind); err != nil {
			t.Errorf("ValidateTemplateType(%q) error = %v, want nil", kind, err)
		}
	}

	for _, kind := range []string{"", "poem", "BLOG_POST"} {
		if err := ValidateTemplateType(kind); err == nil {
			t.Errorf("ValidateTemplateType(%q) error = nil, want error", kind)
		}
	}
}

func TestValidateDetails(t *testing.T) {
	if err := ValidateDetails("write me a blog post about Go"); err != nil {
		t.Errorf("ValidateDetails error = %v, want nil", err)
	}
	if err := ValidateDetails(""); err == nil {
		t.Error("empty details should be rejected")
	}

	long := make([]byte, 4001)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateDetails(string(long)); err == nil {
		t.Error("overlong details should be rejected")
	}
}
