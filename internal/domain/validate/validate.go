package validate

import (
	"net/mail"
	"strings"
)

// Errors collects field-level validation messages keyed by form field name.
type Errors map[string]string

// Add records a message for a field. The first message for a field wins.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Any returns true if at least one field failed validation.
// INVARIANT: Errors map is not mutated
func (e Errors) Any() bool {
	return len(e) > 0
}

// Error joins all messages into a single string for error-interface contexts.
// INVARIANT: Errors map is not mutated
func (e Errors) Error() string {
	var parts []string
	for _, msg := range e {
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// Email reports whether the address is RFC-shaped.
// PRE: none
// POST: Returns true only for parseable addresses
func Email(address string) bool {
	if strings.TrimSpace(address) == "" {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}

// Phone reports whether the number has at least 10 digits after stripping
// the separators "()- " commonly typed into phone fields.
// PRE: none
// POST: Returns true if the stripped value is >= 10 digits
func Phone(number string) bool {
	stripped := StripPhone(number)
	if len(stripped) < 10 {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// StripPhone removes the separators "()- " and spaces from a phone number.
func StripPhone(number string) string {
	replacer := strings.NewReplacer("(", "", ")", "", "-", "", " ", "")
	return replacer.Replace(number)
}
