package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Sender is what the auth and user services need from the mailer
type Sender interface {
	SendPasswordResetEmail(toEmail, token string) error
	SendWelcomeEmail(toEmail, name string) error
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail}
}

var (
	resetTmpl   = template.Must(template.New("password_reset").Parse(passwordResetTemplate))
	welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeTemplate))
)

// SendPasswordResetEmail mails a one-time reset link
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	body, err := s.render(resetTmpl, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
		"ShopName": s.config.FromName,
	})
	if err != nil {
		return err
	}

	return s.sendEmail(toEmail, "Reset your password - "+s.config.FromName, body)
}

// SendWelcomeEmail tells a new staff member where to sign in
func (s *EmailService) SendWelcomeEmail(toEmail, name string) error {
	body, err := s.render(welcomeTmpl, map[string]string{
		"Name":     name,
		"LoginURL": s.config.FrontendURL + "/login",
		"ShopName": s.config.FromName,
	})
	if err != nil {
		return err
	}

	return s.sendEmail(toEmail, "Your "+s.config.FromName+" billing account", body)
}

func (s *EmailService) render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func (s *EmailService) sendEmail(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	message := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n%s",
		s.config.FromName, s.config.FromEmail, to, subject, htmlBody,
	)

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

const passwordResetTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:24px;font-family:Arial,Helvetica,sans-serif;background:#f3f4f6;">
  <div style="max-width:520px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin:0 0 16px 0;color:#111827;">{{.ShopName}}</h2>
    <p style="color:#374151;">A password reset was requested for <strong>{{.Email}}</strong>.</p>
    <p style="color:#374151;">The link below works once and expires in one hour.</p>
    <p style="margin:24px 0;">
      <a href="{{.ResetURL}}" style="background:#0f766e;color:#ffffff;padding:12px 24px;border-radius:6px;text-decoration:none;">Reset password</a>
    </p>
    <p style="color:#6b7280;font-size:13px;">If you did not ask for this, ignore this mail.</p>
    <p style="color:#6b7280;font-size:13px;word-break:break-all;">{{.ResetURL}}</p>
  </div>
</body>
</html>
`

const welcomeTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:24px;font-family:Arial,Helvetica,sans-serif;background:#f3f4f6;">
  <div style="max-width:520px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin:0 0 16px 0;color:#111827;">Welcome to {{.ShopName}}, {{.Name}}</h2>
    <p style="color:#374151;">An account has been created for you on the billing counter.</p>
    <p style="color:#374151;">Sign in with the password your manager gave you and change it from your profile.</p>
    <p style="margin:24px 0;">
      <a href="{{.LoginURL}}" style="background:#0f766e;color:#ffffff;padding:12px 24px;border-radius:6px;text-decoration:none;">Sign in</a>
    </p>
  </div>
</body>
</html>
`
