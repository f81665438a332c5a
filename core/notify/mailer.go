package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"campusguard/config"
	"campusguard/core/store"
	"campusguard/core/utils"
)

// Result reports the outcome of one notification attempt. Both outcomes are
// non-fatal to the caller; Reason is only ever used for logging.
type Result struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, report *store.Report) Result
}

const subjectNewReport = "New Incident Report"

// Mailer sends the operator notification over SMTP. Transport failures never
// escape its boundary.
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
	logger *utils.Logger

	// send is swappable in tests; defaults to a full SMTP dial-and-send.
	send func(msg *gomail.Message) error
}

func NewMailer(cfg config.MailConfig, logger *utils.Logger) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{cfg: cfg, dialer: d, logger: logger, send: func(msg *gomail.Message) error {
		return d.DialAndSend(msg)
	}}
}

// Verify dials the SMTP server once so credential or network problems
// surface at startup. A failure is logged by the caller and does not prevent
// serving requests.
func (m *Mailer) Verify() error {
	sc, err := m.dialer.Dial()
	if err != nil {
		return err
	}
	return sc.Close()
}

func (m *Mailer) Notify(ctx context.Context, report *store.Report) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{Sent: false, Reason: fmt.Sprintf("panic during send: %v", rec)}
		}
	}()
	if report == nil {
		return Result{Sent: false, Reason: "nil report"}
	}
	to := m.recipients()
	if len(to) == 0 {
		return Result{Sent: false, Reason: "no notification recipient configured"}
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender())
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subjectNewReport)
	msg.SetBody("text/html", renderReportBody(report))
	if err := m.send(msg); err != nil {
		return Result{Sent: false, Reason: err.Error()}
	}
	return Result{Sent: true}
}

func (m *Mailer) sender() string {
	if from := strings.TrimSpace(m.cfg.From); from != "" {
		return from
	}
	return m.cfg.Username
}

func (m *Mailer) recipients() []string {
	var to []string
	for _, raw := range m.cfg.To {
		if addr := strings.TrimSpace(raw); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		if addr := strings.TrimSpace(m.cfg.Username); addr != "" {
			to = append(to, addr)
		}
	}
	return to
}

func renderReportBody(report *store.Report) string {
	esc := html.EscapeString
	lines := []string{
		"<h2>New Incident Report</h2>",
		fmt.Sprintf("<p><strong>College Code:</strong> %s</p>", esc(report.CollegeCode)),
		fmt.Sprintf("<p><strong>Category:</strong> %s</p>", esc(report.IncidentCategory)),
		fmt.Sprintf("<p><strong>Type:</strong> %s</p>", esc(report.IncidentType)),
		fmt.Sprintf("<p><strong>Description:</strong> %s</p>", esc(report.Description)),
		fmt.Sprintf("<p><strong>Date:</strong> %s</p>", report.Date.UTC().Format("02 Jan 2006 15:04:05 MST")),
	}
	if !report.ID.IsZero() {
		lines = append(lines, fmt.Sprintf("<p><strong>Report ID:</strong> %s</p>", report.ID.Hex()))
	}
	return strings.Join(lines, "\n")
}
