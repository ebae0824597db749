// Package validate holds the input rules applied before data is sent to the
// backend. Every check returns nil or a *FieldError; several checks are
// combined with errors.Join and still match ErrInvalid.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalid matches every validation failure.
var ErrInvalid = errors.New("invalid input")

// Length limits in characters.
const (
	MaxNicknameLen    = 10
	MaxClubNameLen    = 30
	MaxIntroLen       = 50
	MaxLocationLen    = 100
	MaxDescriptionLen = 500
	MaxTitleLen       = 200
	MinPasswordLen    = 8
	MaxPasswordLen    = 20
)

type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Is(target error) bool { return target == ErrInvalid }

func fail(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	signupEmailRe  = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9]+\.[a-zA-Z]+$`)
	passwordSpecial = `!@#$%^&*(),.?":{}|<>`
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Email checks an address. Login only requires an '@'; signup requires the
// full local@domain.tld shape.
func Email(v string, login bool) error {
	if blank(v) {
		return fail("email", "is required")
	}
	if login {
		if !strings.Contains(v, "@") {
			return fail("email", "must be a valid address (example@example.com)")
		}
		return nil
	}
	if !signupEmailRe.MatchString(v) {
		return fail("email", "must be a valid address (example@example.com)")
	}
	return nil
}

// Password checks a password. Login only requires it to be present.
func Password(v string, login bool) error {
	if v == "" {
		return fail("password", "is required")
	}
	if login {
		return nil
	}
	n := utf8.RuneCountInString(v)
	if n < MinPasswordLen || n > MaxPasswordLen ||
		!strings.ContainsAny(v, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(v, "abcdefghijklmnopqrstuvwxyz") ||
		!strings.ContainsAny(v, "0123456789") ||
		!strings.ContainsAny(v, passwordSpecial) {
		return fail("password", "must be %d-%d characters with an upper case letter, a lower case letter, a digit and a special character",
			MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func PasswordConfirm(password, confirm string) error {
	if confirm == "" {
		return fail("passwordConfirm", "is required")
	}
	if password != confirm {
		return fail("passwordConfirm", "does not match the password")
	}
	return nil
}

func Nickname(v string) error {
	if blank(v) {
		return fail("nickname", "is required")
	}
	if strings.Contains(v, " ") {
		return fail("nickname", "must not contain spaces")
	}
	if utf8.RuneCountInString(v) > MaxNicknameLen {
		return fail("nickname", "must be at most %d characters", MaxNicknameLen)
	}
	return nil
}

func bounded(field, v string, max int) error {
	if blank(v) {
		return fail(field, "is required")
	}
	if utf8.RuneCountInString(v) > max {
		return fail(field, "must be at most %d characters", max)
	}
	return nil
}

func ClubName(v string) error    { return bounded("clubName", v, MaxClubNameLen) }
func Intro(v string) error       { return bounded("intro", v, MaxIntroLen) }
func Location(v string) error    { return bounded("locationName", v, MaxLocationLen) }
func Description(v string) error { return bounded("description", v, MaxDescriptionLen) }
func Title(v string) error       { return bounded("title", v, MaxTitleLen) }

func Content(v string) error { return Required("content", v) }

func Required(field, v string) error {
	if blank(v) {
		return fail(field, "is required")
	}
	return nil
}

// DateTimeRange requires both times and start strictly before end.
func DateTimeRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fail("startsAt", "start and end are required")
	}
	if !start.Before(end) {
		return fail("endsAt", "must be after the start")
	}
	return nil
}

// ParseTags splits a free-form tag line on commas and whitespace, strips
// leading '#', drops empties and duplicates and keeps the first-seen order.
func ParseTags(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	seen := make(map[string]struct{}, len(fields))
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tag := strings.TrimLeft(f, "#")
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Fields lists the fields named by the FieldErrors in err.
func Fields(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe.Field)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		walk(errors.Unwrap(e))
	}
	walk(err)
	return out
}
