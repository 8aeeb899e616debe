package validation

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// FieldError is one failed check, attached to the field it concerns.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
	Value   string `json:"value"`
}

// Errors is the collected set of failures, in rule order.
type Errors []FieldError

// Has reports whether any failure concerns field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Messages returns every message attached to field.
func (e Errors) Messages(field string) []string {
	var messages []string
	for _, fe := range e {
		if fe.Field == field {
			messages = append(messages, fe.Message)
		}
	}
	return messages
}

// Rules is an ordered list of field rules.
type Rules []*Rule

// Validate applies every rule to values, in order, and merges the results.
func (rs Rules) Validate(values url.Values) Result {
	result := Result{
		values: make(map[string]string),
		multi:  make(map[string][]string),
		Errors: Errors{},
	}

	for _, rule := range rs {
		if rule.multi {
			raws := Multi(values, rule.field)
			cleaned := make([]string, 0, len(raws))
			for _, raw := range raws {
				value, failures := rule.Apply(raw)
				cleaned = append(cleaned, value)
				result.addFailures(rule.field, value, failures)
			}
			result.multi[rule.field] = cleaned
			continue
		}

		value, failures := rule.Apply(values.Get(rule.field))
		result.values[rule.field] = value
		result.addFailures(rule.field, value, failures)
	}
	return result
}

// Multi normalizes a multi-valued field: absent yields an empty slice, a
// single value a one-element slice, and several values are kept in order.
func Multi(values url.Values, field string) []string {
	raw, ok := values[field]
	if !ok || raw == nil {
		return []string{}
	}
	out := make([]string, len(raw))
	copy(out, raw)
	return out
}

// Result holds the sanitized values and the collected failures.
type Result struct {
	values map[string]string
	multi  map[string][]string
	Errors Errors
}

func (r *Result) addFailures(field, value string, failures []string) {
	for _, msg := range failures {
		r.Errors = append(r.Errors, FieldError{Field: field, Message: msg, Value: value})
	}
}

// Fail attaches a failure found outside the rules, such as a reference to a
// record that does not exist.
func (r *Result) Fail(field, message string) {
	r.addFailures(field, r.values[field], []string{message})
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the sanitized value of a single-valued field.
func (r Result) Get(field string) string {
	return r.values[field]
}

// All returns the sanitized values of a multi-valued field, never nil.
func (r Result) All(field string) []string {
	if values, ok := r.multi[field]; ok {
		return values
	}
	return []string{}
}

// Date returns the field as a date, or nil when empty or invalid.
func (r Result) Date(field string) *time.Time {
	t, err := time.Parse(entities.ISODateLayout, r.values[field])
	if err != nil {
		return nil
	}
	return &t
}

// ID returns the field as an identifier, or 0 when it is not one.
func (r Result) ID(field string) uint {
	return parseID(r.values[field])
}

// IDs returns every value of a multi-valued field that parses as an identifier.
func (r Result) IDs(field string) []uint {
	var ids []uint
	for _, v := range r.All(field) {
		if id := parseID(v); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseID(value string) uint {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
