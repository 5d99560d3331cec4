// Package email implements an SMTP-based email notifier
package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier"
)

// Email implements the Notifier interface for SMTP email
type Email struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
}

// New creates a new Email notifier
func New(host string, port int, username, password, from string, to []string) *Email {
	return &Email{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Init(cfg notifier.Config) error {
	if host, ok := cfg.Params["host"].(string); ok {
		e.host = host
	}
	if port, ok := cfg.Params["port"].(int); ok {
		e.port = port
	}
	if username, ok := cfg.Params["username"].(string); ok {
		e.username = username
	}
	if password, ok := cfg.Params["password"].(string); ok {
		e.password = password
	}
	if from, ok := cfg.Params["from"].(string); ok {
		e.from = from
	}
	if to, ok := cfg.Params["to"].([]string); ok {
		e.to = to
	}

	if e.host == "" || e.from == "" || len(e.to) == 0 {
		return fmt.Errorf("email: host, from, and to are required")
	}
	return nil
}

func (e *Email) Send(alert notifier.Alert) error {
	subject := fmt.Sprintf("Deal Alert: %s grade %s in %s, %s",
		alert.Strategy, alert.Grade, alert.City, alert.State)
	body := e.formatAlert(alert)
	return e.sendEmail(subject, body)
}

func (e *Email) SendBatch(alerts []notifier.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Deal Digest: %d Deal Alerts", len(alerts))

	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString("<h2>Deal Alerts</h2>")
	sb.WriteString(fmt.Sprintf("<p>Generated at: %s</p>", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString("<hr>")

	for _, a := range alerts {
		sb.WriteString(e.formatAlertHTML(a))
		sb.WriteString("<hr>")
	}

	sb.WriteString("</body></html>")

	return e.sendEmail(subject, sb.String())
}

func (e *Email) formatAlert(alert notifier.Alert) string {
	return fmt.Sprintf(`
Deal Alert

Property: %s, %s, %s
Strategy: %s
Grade: %s
Profit: %s
ROI: %.1f%%
Buyer matches: %d
Message: %s
Time: %s
`,
		alert.Address,
		alert.City,
		alert.State,
		alert.Strategy,
		alert.Grade,
		alert.Profit,
		alert.ROI,
		alert.Matches,
		alert.Message,
		alert.GeneratedAt.Format("2006-01-02 15:04:05"),
	)
}

func (e *Email) formatAlertHTML(alert notifier.Alert) string {
	gradeColor := "#28a745" // green for profitable grades
	if alert.Profit.IsNegative() {
		gradeColor = "#dc3545"
	}

	return fmt.Sprintf(`
<div style="margin: 10px 0;">
  <h3 style="color: %s;">%s - grade %s</h3>
  <p><strong>Property:</strong> %s, %s, %s</p>
  <p><strong>Profit:</strong> %s (ROI %.1f%%)</p>
  <p><strong>Buyer matches:</strong> %d</p>
  <p><strong>Message:</strong> %s</p>
  <p><small>%s</small></p>
</div>
`,
		gradeColor,
		alert.Strategy,
		alert.Grade,
		alert.Address,
		alert.City,
		alert.State,
		alert.Profit,
		alert.ROI,
		alert.Matches,
		alert.Message,
		alert.GeneratedAt.Format("2006-01-02 15:04:05"),
	)
}

func (e *Email) sendEmail(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", e.host, e.port)

	var auth smtp.Auth
	if e.username != "" {
		auth = smtp.PlainAuth("", e.username, e.password, e.host)
	}

	contentType := "text/plain"
	if strings.Contains(body, "<html>") {
		contentType = "text/html"
	}

	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: %s; charset=UTF-8\r\n"+
		"\r\n"+
		"%s",
		e.from,
		strings.Join(e.to, ","),
		subject,
		contentType,
		body,
	)

	return smtp.SendMail(addr, auth, e.from, e.to, []byte(msg))
}
