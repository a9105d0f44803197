package auth

import "regexp"

// emailPattern accepts the usual local@domain.tld shape. It is a shape
// check, not an RFC 5322 parser; deliverability is the mail server's
// problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

// RegistrationInput is the raw new-account input before any identity
// is created.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

// ValidateRegistration checks new-account input and reports every
// violated field, not just the first. It runs strictly before hashing
// or any write, so a failure has no side effects.
func ValidateRegistration(in RegistrationInput) error {
	var fields []FieldError

	if in.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if !emailPattern.MatchString(in.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if len(in.Password) < minPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: "Please enter a password with 6 or more characters"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
