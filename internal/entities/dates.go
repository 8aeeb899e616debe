package entities

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ISODateLayout is the layout used for date form fields.
const ISODateLayout = "2006-01-02"

// FormatLongDate renders t as "June 5th, 1775". A nil date renders as "".
func FormatLongDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// FormatISODate renders t for a date input, or "" when unset.
func FormatISODate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(ISODateLayout)
}
