package reports

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RequiredFields is the base required-field set for a report submission.
// Validation failures always enumerate the full set, not just the missing
// fields, so clients see one stable shape.
var RequiredFields = []string{"collegeCode", "incidentCategory", "incidentType", "description"}

// Submission is the normalized result of validating a raw request payload.
type Submission struct {
	CollegeCode      string
	IncidentCategory string
	IncidentType     string
	Description      string
	// Date is the raw client-supplied value; ResolveDate turns it into a
	// concrete timestamp before persistence.
	Date string
}

type ValidationError struct {
	Missing        []string
	RequiredFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Required returns the effective required-field set for the given policy.
func Required(dateRequired bool) []string {
	if !dateRequired {
		return RequiredFields
	}
	fields := make([]string, 0, len(RequiredFields)+1)
	fields = append(fields, RequiredFields...)
	return append(fields, "date")
}

// Validate checks presence of the required fields on an untyped payload.
// Empty strings, nulls and absent keys are all rejected. It has no side
// effects and never touches the store.
func Validate(payload map[string]any, dateRequired bool) (*Submission, error) {
	required := Required(dateRequired)
	values := make(map[string]string, len(required))
	var missing []string
	for _, field := range required {
		v, ok := fieldValue(payload[field])
		if !ok {
			missing = append(missing, field)
			continue
		}
		values[field] = v
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing, RequiredFields: required}
	}
	sub := &Submission{
		CollegeCode:      values["collegeCode"],
		IncidentCategory: values["incidentCategory"],
		IncidentType:     values["incidentType"],
		Description:      values["description"],
		Date:             values["date"],
	}
	if sub.Date == "" {
		if raw, ok := fieldValue(payload["date"]); ok {
			sub.Date = raw
		}
	}
	return sub, nil
}

// fieldValue mirrors a falsiness check: "", null, absent, 0 and false are
// all treated as missing. Numeric zero is never a legitimate value for the
// report fields, so the proxy is safe.
func fieldValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		if t == 0 {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if !t {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveDate parses the client-supplied date, falling back to now when the
// value is absent or unparsable. The result is always a concrete timestamp.
func ResolveDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now
}
