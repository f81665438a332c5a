package reports

import (
	"reflect"
	"testing"
	"time"
)

func validPayload() map[string]any {
	return map[string]any{
		"collegeCode":      "CLG042",
		"incidentCategory": "Safety",
		"incidentType":     "Fire Drill Failure",
		"description":      "Alarm did not sound in block B",
	}
}

func TestValidateAcceptsCompletePayload(t *testing.T) {
	sub, err := Validate(validPayload(), false)
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if sub.CollegeCode != "CLG042" || sub.Description != "Alarm did not sound in block B" {
		t.Fatalf("unexpected normalized submission: %+v", sub)
	}
	if sub.Date != "" {
		t.Fatalf("expected empty date passthrough, got %q", sub.Date)
	}
}

func TestValidateAnyMissingFieldListsFullRequiredSet(t *testing.T) {
	for _, field := range RequiredFields {
		payload := validPayload()
		delete(payload, field)
		_, err := Validate(payload, false)
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("field %s: expected *ValidationError, got %v", field, err)
		}
		want := []string{"collegeCode", "incidentCategory", "incidentType", "description"}
		if !reflect.DeepEqual(verr.RequiredFields, want) {
			t.Fatalf("field %s: required list %v, want %v", field, verr.RequiredFields, want)
		}
		if len(verr.Missing) != 1 || verr.Missing[0] != field {
			t.Fatalf("field %s: missing %v", field, verr.Missing)
		}
	}
}

func TestValidateRejectsFalsyValues(t *testing.T) {
	for name, value := range map[string]any{
		"empty string": "",
		"null":         nil,
		"zero":         float64(0),
		"false":        false,
	} {
		payload := validPayload()
		payload["description"] = value
		if _, err := Validate(payload, false); err == nil {
			t.Fatalf("%s: expected validation failure", name)
		}
	}
}

func TestValidateNilPayloadReportsEverythingMissing(t *testing.T) {
	_, err := Validate(nil, false)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Missing) != len(RequiredFields) {
		t.Fatalf("expected all fields missing, got %v", verr.Missing)
	}
}

func TestValidateDateRequiredPolicy(t *testing.T) {
	payload := validPayload()
	_, err := Validate(payload, true)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected date to be required, got %v", err)
	}
	if verr.RequiredFields[len(verr.RequiredFields)-1] != "date" {
		t.Fatalf("required set should end with date: %v", verr.RequiredFields)
	}

	payload["date"] = "2025-11-02T10:00:00Z"
	sub, err := Validate(payload, true)
	if err != nil {
		t.Fatalf("payload with date should pass: %v", err)
	}
	if sub.Date != "2025-11-02T10:00:00Z" {
		t.Fatalf("date passthrough broken: %q", sub.Date)
	}
}

func TestValidateOptionalDateIsCarried(t *testing.T) {
	payload := validPayload()
	payload["date"] = "2025-11-02"
	sub, err := Validate(payload, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Date != "2025-11-02" {
		t.Fatalf("optional date not carried: %q", sub.Date)
	}
}

func TestResolveDateParsesKnownLayouts(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2025-11-02T10:30:00Z": time.Date(2025, 11, 2, 10, 30, 0, 0, time.UTC),
		"2025-11-02":           time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		"2025-11-02 08:15:00":  time.Date(2025, 11, 2, 8, 15, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		if got := ResolveDate(raw, now); !got.Equal(want) {
			t.Fatalf("ResolveDate(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestResolveDateFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	for _, raw := range []string{"", "   ", "not-a-date", "02/31/2026"} {
		if got := ResolveDate(raw, now); !got.Equal(now) {
			t.Fatalf("ResolveDate(%q) = %v, want now", raw, got)
		}
	}
}
