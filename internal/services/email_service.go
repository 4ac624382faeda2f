package services

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// EmailService renders a named template with a variable map and delivers it.
// Callers that must not block dispatch it on their own goroutine; delivery is
// best effort and failures stay on this side of the request boundary.
type EmailService interface {
	SendTemplated(to, subject, templateName string, vars map[string]any) error
}

const (
	TemplateVerifyAccount = "verify-account"
	TemplateResetPassword = "reset-password"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "verify-account"}}
<h2>Welcome, {{.userName}}!</h2>
<p>Confirm your email address to activate your account.</p>
<p>Your verification code: <strong>{{.verificationCode}}</strong></p>
<p><a href="{{.verificationUrl}}">Verify your account</a></p>
<p>The link expires in 24 hours. If you did not sign up, ignore this email.</p>
{{end}}

{{define "reset-password"}}
<h3>Password reset requested</h3>
<p>Hello {{.userName}},</p>
<p>Your reset code: <strong>{{.resetCode}}</strong></p>
<p><a href="{{.resetUrl}}">Reset your password</a></p>
<p>The link expires in 1 hour. If you did not request this change, you can ignore this email.</p>
{{end}}
`))

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendTemplated(to, subject, templateName string, vars map[string]any) error {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, templateName, vars); err != nil {
		return fmt.Errorf("render mail template %q: %w", templateName, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %q email: %w", templateName, err)
	}
	return nil
}
