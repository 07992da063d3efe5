package services

import (
	"fmt"
	"net/smtp"
	"os"
)

// SMTPMailer delivers notification emails through a plain SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPMailerFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "25"
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@fomenta.dev"
	}

	return &SMTPMailer{
		Host: host,
		Port: port,
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := m.Host + ":" + m.Port

	msg := "From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		renderNotification(body)

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func renderNotification(body string) string {
	return fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`+
			`<div style="max-width: 600px; margin: 0 auto; border: 1px solid #eee; border-radius: 8px;">`+
			`<div style="background-color: #0D47A1; padding: 20px; text-align: center;">`+
			`<h1 style="color: white; margin: 0;">Fomenta</h1>`+
			`</div>`+
			`<div style="padding: 20px;"><p style="font-size: 16px;">%s</p></div>`+
			`<div style="background-color: #f1f1f1; padding: 15px; text-align: center; font-size: 12px; color: #777;">`+
			`This is an automated message. Please do not reply.`+
			`</div></div></div>`,
		body,
	)
}
