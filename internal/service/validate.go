package service

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	linkedinURLRegex = regexp.MustCompile(`^https?://([a-z]+\.)?linkedin\.com/in/[a-zA-Z0-9-]+/?$`)
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldError is a user-facing validation failure scoped to one field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validateReferral(input *ReferralInput) *FieldError {
	if strings.TrimSpace(input.ReferrerFirstName) == "" {
		return &FieldError{Field: "referrerFirstName", Message: "First name is required"}
	}
	if strings.TrimSpace(input.ReferrerLastName) == "" {
		return &FieldError{Field: "referrerLastName", Message: "Last name is required"}
	}
	if input.LinkedinURL == "" {
		return &FieldError{Field: "linkedinUrl", Message: "LinkedIn URL is required"}
	}
	if !linkedinURLRegex.MatchString(input.LinkedinURL) {
		return &FieldError{
			Field:   "linkedinUrl",
			Message: "Invalid LinkedIn URL format. Please enter a valid LinkedIn profile URL (e.g., https://linkedin.com/in/yourname)",
		}
	}
	if input.Email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailRegex.MatchString(input.Email) {
		return &FieldError{Field: "email", Message: "Invalid email address"}
	}
	return nil
}

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// normalizePhone strips everything except digits and a leading +.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
