// Package validation holds the pure field checks used by the registration,
// login and editing flows. Every check returns nil or a sentinel from
// internal/common; Run attaches the field name.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/server/models"
)

// Field length limits of the user-facing forms.
const (
	MaxUsernameLength   = 32
	MaxPasswordLength   = 32
	MaxNameLength       = 32
	MaxEmailLength      = 254
	MaxInstituteLength  = 128
	MaxDepartmentLength = 64
)

// punctuation mirrors the ASCII punctuation class: !"#$%&'()*+,-./:;<=>?@[\]^_`{|}~
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// FieldError ties a validation failure to the form field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Check validates a single value.
type Check func(value string) error

// Rule is the ordered list of checks applied to one field.
type Rule struct {
	Field  string
	Value  string
	Checks []Check
}

// Run evaluates rules in order and stops at the first failing check,
// returning it as a *FieldError.
func Run(rules ...Rule) error {
	for _, r := range rules {
		for _, check := range r.Checks {
			if err := check(r.Value); err != nil {
				return &FieldError{Field: r.Field, Err: err}
			}
		}
	}
	return nil
}

// Credentials validates the username, password and confirmation triple.
func Credentials(username, password, confirm string) error {
	return Run(
		Rule{Field: "username", Value: username, Checks: []Check{Required, Username, MaxLength(MaxUsernameLength)}},
		Rule{Field: "password", Value: password, Checks: []Check{Required, Password, MaxLength(MaxPasswordLength)}},
		Rule{Field: "confirm_password", Value: confirm, Checks: []Check{Required, MaxLength(MaxPasswordLength), Matches(password)}},
	)
}

// Required rejects empty and whitespace-only values.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return common.ErrRequired
	}
	return nil
}

// MaxLength limits the value to n characters.
func MaxLength(n int) Check {
	return func(value string) error {
		if utf8.RuneCountInString(value) > n {
			return common.ErrTooLong
		}
		return nil
	}
}

// Username allows ASCII letters, digits and the period only.
func Username(value string) error {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !isASCIILetter(c) && !isDigit(c) && c != '.' {
			return common.ErrInvalidFormat
		}
	}
	return nil
}

// Password allows ASCII letters, digits and ASCII punctuation only.
func Password(value string) error {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !isASCIILetter(c) && !isDigit(c) && strings.IndexByte(punctuation, c) < 0 {
			return common.ErrInvalidFormat
		}
	}
	return nil
}

// Matches requires the value to equal want byte for byte.
func Matches(want string) Check {
	return func(value string) error {
		if value != want {
			return common.ErrMismatch
		}
		return nil
	}
}

// Email accepts a conventional local@domain.tld address.
func Email(value string) error {
	if len(value) > MaxEmailLength || !emailPattern.MatchString(value) {
		return common.ErrInvalidFormat
	}
	return nil
}

// Phone accepts 9 to 15 digits with an optional leading "+" and "1".
func Phone(value string) error {
	if !phonePattern.MatchString(value) {
		return common.ErrInvalidFormat
	}
	return nil
}

// Position accepts one of models.Positions.
func Position(value string) error {
	if !models.Position(value).Valid() {
		return common.ErrInvalidChoice
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
