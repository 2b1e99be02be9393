package auth

import (
	"regexp"
	"unicode"
)

// PolicyError is a client-facing validation failure. Its message names the
// first violated rule and is safe to return verbatim.
type PolicyError struct {
	msg string
}

func (e *PolicyError) Error() string {
	return e.msg
}

// NewPolicyError wraps a rule-violation message.
func NewPolicyError(msg string) *PolicyError {
	return &PolicyError{msg: msg}
}

// collegeEmailPattern matches institutional addresses: a numeric roll number
// local part at the fixed college domain.
var collegeEmailPattern = regexp.MustCompile(`^\d+@sliet\.ac\.in$`)

// ValidateUsername enforces the 3-30 character bound.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 30 {
		return NewPolicyError("Username must be 3-30 characters.")
	}
	return nil
}

// ValidateCollegeEmail enforces the institutional email pattern.
func ValidateCollegeEmail(email string) error {
	if !collegeEmailPattern.MatchString(email) {
		return NewPolicyError("Email must be a valid college email (e.g., 2341045@sliet.ac.in).")
	}
	return nil
}

// ValidatePassword enforces the composite password policy, reporting the
// first failing rule.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return NewPolicyError("Password must be at least 8 characters.")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	switch {
	case !hasLower:
		return NewPolicyError("Password must contain at least one lowercase letter.")
	case !hasUpper:
		return NewPolicyError("Password must contain at least one uppercase letter.")
	case !hasDigit:
		return NewPolicyError("Password must contain at least one digit.")
	case !hasSymbol:
		return NewPolicyError("Password must contain at least one special character.")
	}
	return nil
}

// ValidateRole accepts the two known roles; empty defaults to student upstream.
func ValidateRole(role string) error {
	if role != "" && role != "student" && role != "admin" {
		return NewPolicyError("Role must be either student or admin.")
	}
	return nil
}
