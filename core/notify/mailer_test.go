package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"

	"campusguard/config"
	"campusguard/core/store"
)

func sampleReport() *store.Report {
	return &store.Report{
		ID:               primitive.NewObjectID(),
		CollegeCode:      "CLG042",
		IncidentCategory: "Safety",
		IncidentType:     "Lab Accident",
		Description:      "Chemical spill in <lab 3>",
		Date:             time.Date(2025, 11, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestNotifySendsFormattedMessage(t *testing.T) {
	m := NewMailer(config.MailConfig{
		Host:     "smtp.example.edu",
		Port:     587,
		Username: "ops@example.edu",
		To:       []string{"security@example.edu"},
	}, nil)
	var captured *gomail.Message
	m.send = func(msg *gomail.Message) error {
		captured = msg
		return nil
	}

	res := m.Notify(context.Background(), sampleReport())
	if !res.Sent {
		t.Fatalf("expected sent result, got %+v", res)
	}
	if captured == nil {
		t.Fatalf("no message captured")
	}
	if got := captured.GetHeader("Subject"); len(got) != 1 || got[0] != "New Incident Report" {
		t.Fatalf("subject %v", got)
	}
	if got := captured.GetHeader("To"); len(got) != 1 || got[0] != "security@example.edu" {
		t.Fatalf("recipient %v", got)
	}
}

func TestNotifyAbsorbsTransportFailure(t *testing.T) {
	m := NewMailer(config.MailConfig{Username: "ops@example.edu"}, nil)
	m.send = func(msg *gomail.Message) error {
		return errors.New("535 authentication failed")
	}
	res := m.Notify(context.Background(), sampleReport())
	if res.Sent {
		t.Fatalf("transport failure must not report sent")
	}
	if !strings.Contains(res.Reason, "authentication failed") {
		t.Fatalf("reason %q", res.Reason)
	}
}

func TestNotifyWithoutRecipientFailsSoft(t *testing.T) {
	m := NewMailer(config.MailConfig{}, nil)
	m.send = func(msg *gomail.Message) error {
		t.Fatalf("send must not be attempted without a recipient")
		return nil
	}
	res := m.Notify(context.Background(), sampleReport())
	if res.Sent || res.Reason == "" {
		t.Fatalf("expected soft failure, got %+v", res)
	}
}

func TestNotifyDefaultsRecipientToAccount(t *testing.T) {
	m := NewMailer(config.MailConfig{Username: "ops@example.edu"}, nil)
	var captured *gomail.Message
	m.send = func(msg *gomail.Message) error {
		captured = msg
		return nil
	}
	if res := m.Notify(context.Background(), sampleReport()); !res.Sent {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if got := captured.GetHeader("To"); len(got) != 1 || got[0] != "ops@example.edu" {
		t.Fatalf("recipient should default to the mail account, got %v", got)
	}
	if got := captured.GetHeader("From"); len(got) != 1 || got[0] != "ops@example.edu" {
		t.Fatalf("from should default to the mail account, got %v", got)
	}
}

func TestRenderReportBodyEscapesAndIncludesID(t *testing.T) {
	report := sampleReport()
	body := renderReportBody(report)
	for _, want := range []string{
		"College Code:</strong> CLG042",
		"Category:</strong> Safety",
		"Type:</strong> Lab Accident",
		report.ID.Hex(),
		"02 Nov 2025",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<lab 3>") {
		t.Fatalf("description must be html-escaped:\n%s", body)
	}
}
