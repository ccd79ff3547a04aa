package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"healthkeeper/internal/models/db_models"
)

type IMailService interface {
	SendReminderDigest(to, recipientName string, reminders []db_models.Reminder) error
}

// SMTPConfig holds the SMTP + branding config.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

type smtpMailService struct {
	cfg       SMTPConfig
	digestTpl *template.Template
}

const reminderDigestTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>{{.AppName}} — reminders due</h2>
  <p>Hello {{.Name}}, the following reminders are due:</p>
  <ul>
  {{range .Reminders}}
    <li><strong>{{.Title}}</strong> ({{.Type}}) — {{.Date}} {{.Time}}</li>
  {{end}}
  </ul>
</body>
</html>`

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	tpl := template.Must(template.New("reminderDigest").Parse(reminderDigestTemplate))
	return &smtpMailService{cfg: cfg, digestTpl: tpl}, nil
}

func (s *smtpMailService) SendReminderDigest(to, recipientName string, reminders []db_models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	var body bytes.Buffer
	err := s.digestTpl.Execute(&body, map[string]interface{}{
		"AppName":   s.cfg.AppName,
		"Name":      recipientName,
		"Reminders": reminders,
	})
	if err != nil {
		return fmt.Errorf("rendering reminder digest: %w", err)
	}

	subject := fmt.Sprintf("%s: %d reminder(s) due", s.cfg.AppName, len(reminders))
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// NoopMailService is wired when SMTP is not configured.
type NoopMailService struct{}

func (NoopMailService) SendReminderDigest(string, string, []db_models.Reminder) error {
	return nil
}
