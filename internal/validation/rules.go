package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type step struct {
	sanitize func(string) string
	check    func(string) bool
	message  string
	optional bool
}

// Rule is the ordered chain of sanitizers and checks for one field.
type Rule struct {
	field string
	multi bool
	steps []step
}

// Field starts a rule for a single-valued field.
func Field(name string) *Rule {
	return &Rule{field: name}
}

// Each starts a rule applied to every value of a multi-valued field.
func Each(name string) *Rule {
	return &Rule{field: name, multi: true}
}

// Name returns the form field the rule applies to.
func (r *Rule) Name() string {
	return r.field
}

func (r *Rule) sanitizer(fn func(string) string) *Rule {
	r.steps = append(r.steps, step{sanitize: fn})
	return r
}

func (r *Rule) checker(fn func(string) bool, message string) *Rule {
	r.steps = append(r.steps, step{check: fn, message: message})
	return r
}

// Trim strips surrounding whitespace.
func (r *Rule) Trim() *Rule {
	return r.sanitizer(strings.TrimSpace)
}

// Escape replaces markup-significant characters with HTML entities.
func (r *Rule) Escape() *Rule {
	return r.sanitizer(EscapeHTML)
}

// ToDate normalizes a date to YYYY-MM-DD. Unparseable input becomes "".
func (r *Rule) ToDate() *Rule {
	return r.sanitizer(func(value string) string {
		t, ok := parseDate(value)
		if !ok {
			return ""
		}
		return t.Format(entities.ISODateLayout)
	})
}

// Optional skips the remaining checks when the value is empty.
func (r *Rule) Optional() *Rule {
	r.steps = append(r.steps, step{optional: true})
	return r
}

// Required fails on an empty value. Combine with Trim for non-empty-after-trim.
func (r *Rule) Required(message string) *Rule {
	return r.checker(func(value string) bool { return value != "" }, message)
}

// MaxLength fails when the value is longer than max characters.
func (r *Rule) MaxLength(max int, message string) *Rule {
	return r.checker(func(value string) bool {
		return utf8.RuneCountInString(value) <= max
	}, message)
}

// Length fails when the value is shorter than min or longer than max characters.
func (r *Rule) Length(min, max int, message string) *Rule {
	return r.checker(func(value string) bool {
		n := utf8.RuneCountInString(value)
		return n >= min && n <= max
	}, message)
}

// Alphanumeric fails unless the value consists only of ASCII letters and digits.
func (r *Rule) Alphanumeric(message string) *Rule {
	return r.checker(isAlphanumeric, message)
}

// ISODate fails unless the value is an ISO 8601 date or timestamp.
func (r *Rule) ISODate(message string) *Rule {
	return r.checker(func(value string) bool {
		_, ok := parseDate(value)
		return ok
	}, message)
}

// ID fails unless the value is a positive integer identifier.
func (r *Rule) ID(message string) *Rule {
	return r.checker(func(value string) bool {
		id, err := strconv.ParseUint(value, 10, 32)
		return err == nil && id > 0
	}, message)
}

// OneOf fails unless the value equals one of allowed.
func (r *Rule) OneOf(message string, allowed ...string) *Rule {
	return r.checker(func(value string) bool {
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}, message)
}

// Apply runs the chain on one raw value and returns the cleaned value and the
// failure messages (at most one per call).
func (r *Rule) Apply(raw string) (string, []string) {
	value := raw
	var failures []string
	checking := true

	for _, s := range r.steps {
		switch {
		case s.sanitize != nil:
			value = s.sanitize(value)
		case s.optional:
			if value == "" {
				checking = false
			}
		case s.check != nil && checking:
			if !s.check(value) {
				failures = append(failures, s.message)
				checking = false
			}
		}
	}
	return value, failures
}

func isAlphanumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, c := range value {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	entities.ISODateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML replaces & " ' < > / \ and ` with HTML entities.
func EscapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}
