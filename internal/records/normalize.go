package records

import (
	"strings"
	"time"
)

// Record is the schema-less document shape used across the five
// collections. Unknown caller fields pass through storage untouched.
type Record = map[string]any

// DayLayout is the calendar-date form used for derived identifiers.
const DayLayout = "2006-01-02"

// timestampLayouts are tried in order before falling back to a bare
// calendar date. A trailing Z parses as UTC via RFC3339.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate attempts the two-tier parse: full timestamp first, bare
// calendar date second.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseDay accepts a native time or a date-bearing string.
func ParseDay(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		return ParseDate(d)
	default:
		return time.Time{}, false
	}
}

// DayString renders a date value as YYYY-MM-DD for identifier derivation.
// A string that does not parse is returned verbatim, so malformed input
// degrades to an opaque id component rather than an error.
func DayString(v any) string {
	switch d := v.(type) {
	case time.Time:
		return d.Format(DayLayout)
	case string:
		if t, ok := ParseDate(d); ok {
			return t.Format(DayLayout)
		}
		return d
	default:
		return ""
	}
}

// StringField returns the named field as a trimmed string, or "" when
// the field is absent or not a string.
func StringField(rec Record, key string) string {
	s, _ := rec[key].(string)
	return strings.TrimSpace(s)
}

// Normalize produces the storage-ready form of a raw record: absent and
// empty-string fields are dropped, fields named in dateFields are parsed
// into time values, and everything else passes through unchanged.
//
// An unparseable date string is kept as-is. That is deliberate graceful
// degradation, not an error path: malformed optional dates are stored as
// opaque strings instead of being rejected.
func Normalize(record Record, dateFields []string) Record {
	isDate := make(map[string]bool, len(dateFields))
	for _, f := range dateFields {
		isDate[f] = true
	}

	out := make(Record, len(record))
	for key, value := range record {
		if value == nil || value == "" {
			continue
		}

		if isDate[key] {
			if s, ok := value.(string); ok {
				if t, parsed := ParseDate(s); parsed {
					out[key] = t
					continue
				}
			}
			// native temporal values and unparseable strings pass through
		}
		out[key] = value
	}
	return out
}
