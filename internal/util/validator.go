package util

import (
	"fmt"
	"net/mail"
	"regexp"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// allowed template kinds, mirrored by the generation client
var allowedTemplateTypes = map[string]bool{
	"blog_post":   true,
	"email_draft": true,
	"image":       true,
}

// ValidateEmail checks email syntax.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	return nil
}

// ValidateUsername enforces 3-20 characters, letters/digits/underscore only.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidatePassword enforces a sane length range.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return fmt.Errorf("password must be 8-72 characters")
	}
	return nil
}

// ValidateTemplateType rejects unknown template kinds before any
// upstream call is made.
func ValidateTemplateType(templateType string) error {
	if !allowedTemplateTypes[templateType] {
		return fmt.Errorf("unsupported template type %q", templateType)
	}
	return nil
}

// ValidateDetails bounds the prompt text.
func ValidateDetails(details string) error {
	if details == "" {
		return fmt.Errorf("details is empty")
	}
	if len(details) > 4000 {
		return fmt.Errorf("details too long, max 4000 characters")
	}
	return nil
}
