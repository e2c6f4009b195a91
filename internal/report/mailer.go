package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// Mailer delivers finished reports by email over SMTP.
type Mailer struct {
	cfg       config.ReportConfig
	server    string
	auth      smtp.Auth
	templates *Templates

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a mailer from the reporting configuration.
// Delivery is disabled when no SMTP host is configured; IsConfigured
// reports this and SendReport returns an error in that case.
func NewMailer(cfg config.ReportConfig, templates *Templates) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	return &Mailer{
		cfg:       cfg,
		server:    cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth:      auth,
		templates: templates,
		send:      smtp.SendMail,
	}
}

// SetSendFunc overrides SMTP delivery. Used by tests.
func (m *Mailer) SetSendFunc(fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	m.send = fn
}

// IsConfigured returns true if SMTP delivery is configured.
func (m *Mailer) IsConfigured() bool {
	return m.cfg.SMTPHost != "" && m.cfg.SMTPPort != "" && m.cfg.SMTPFrom != ""
}

// SendReport emails a completed report run to the recipients, with the CSV
// artifact attached.
func (m *Mailer) SendReport(run *domain.ReportRun, recipients []string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email delivery not configured")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	body, err := m.templates.Render(run)
	if err != nil {
		return fmt.Errorf("render report email: %w", err)
	}

	subject := fmt.Sprintf("MarketingKreis Report: %s", run.Kind)
	filename := fmt.Sprintf("%s-%s.csv", run.Kind, run.StartedAt.Format("2006-01-02"))

	msg := m.buildMessage(recipients, subject, body, filename, []byte(run.CSV))

	return m.send(m.server, m.auth, m.cfg.SMTPFrom, recipients, msg)
}

// buildMessage assembles a multipart/mixed message with a text body and a
// base64-encoded CSV attachment.
func (m *Mailer) buildMessage(to []string, subject, body, filename string, attachment []byte) []byte {
	from := m.cfg.SMTPFrom
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.SMTPFrom)
	}

	boundary := "boundary-marketingkreis-" + time.Now().Format("20060102150405")

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	fmt.Fprintf(&msg, "\r\n")

	// Text part
	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", body)
	fmt.Fprintf(&msg, "\r\n")

	// CSV attachment
	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/csv; charset=UTF-8; name=%q\r\n", filename)
	fmt.Fprintf(&msg, "Content-Disposition: attachment; filename=%q\r\n", filename)
	fmt.Fprintf(&msg, "Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&msg, "\r\n")

	encoded := base64.StdEncoding.EncodeToString(attachment)
	// Wrap base64 lines at 76 chars per RFC 2045.
	for len(encoded) > 76 {
		msg.WriteString(encoded[:76])
		msg.WriteString("\r\n")
		encoded = encoded[76:]
	}
	msg.WriteString(encoded)
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return msg.Bytes()
}
