// Package validate provides the pure form-validation helpers used by
// registration and login.
package validate

import (
	"regexp"
	"sort"
	"strings"
)

// MinPasswordLength is the minimum password length enforced at
// registration. Login does not re-check it.
const MinPasswordLength = 6

// emailPattern accepts one @ with a dot somewhere after it and no
// whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email has a plausible address shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsEmpty reports whether value is empty after trimming whitespace.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// PasswordsMatch reports whether the password and its confirmation are
// identical.
func PasswordsMatch(password, confirmPassword string) bool {
	return password == confirmPassword
}

// IsPasswordValid reports whether password meets the minimum length.
func IsPasswordValid(password string) bool {
	return len(password) >= MinPasswordLength
}

// FieldErrors maps a field name to a human-readable message. An empty
// map means the input is valid.
type FieldErrors map[string]string

// Error joins the messages in field order so FieldErrors can travel as
// a plain error value.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(e))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// LoginInput validates a login form. Only shape is checked here; the
// password length rule applies to registration alone.
func LoginInput(email, password string) FieldErrors {
	errs := make(FieldErrors)

	if IsEmpty(email) {
		errs["email"] = "email is required"
	} else if !IsValidEmail(email) {
		errs["email"] = "enter a valid email address"
	}

	if IsEmpty(password) {
		errs["password"] = "password is required"
	}

	return errs
}

// RegisterInput validates a registration form.
func RegisterInput(name, email, password, confirmPassword string) FieldErrors {
	errs := make(FieldErrors)

	if IsEmpty(name) {
		errs["name"] = "name is required"
	}

	if IsEmpty(email) {
		errs["email"] = "email is required"
	} else if !IsValidEmail(email) {
		errs["email"] = "enter a valid email address"
	}

	if IsEmpty(password) {
		errs["password"] = "password is required"
	} else if !IsPasswordValid(password) {
		errs["password"] = "password must be at least 6 characters"
	}

	if IsEmpty(confirmPassword) {
		errs["confirmPassword"] = "confirm your password"
	} else if !PasswordsMatch(password, confirmPassword) {
		errs["confirmPassword"] = "passwords do not match"
	}

	return errs
}
