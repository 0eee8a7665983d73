package notify

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const codeMailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4a6bff;">SkilledWork Account Verification</h2>
  <p>Thank you for registering with SkilledWork. Please use the following verification code to complete your registration:</p>
  <div style="background: #f8f9fa; padding: 20px; text-align: center; margin: 20px 0; font-size: 24px; font-weight: bold;">{{.Code}}</div>
  <p>If you didn't request this, please ignore this email.</p>
</div>`

type MailSender struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	mailFrom     string
	mailFromName string
	subject      string
	tmpl         *template.Template
}

func NewMailSender(host, port, user, password, mailFrom, mailFromName, subject string) *MailSender {
	return &MailSender{
		smtpHost:     host,
		smtpPort:     port,
		smtpUser:     user,
		smtpPassword: password,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		subject:      subject,
		tmpl:         template.Must(template.New("code-mail").Parse(codeMailTemplate)),
	}
}

func (s *MailSender) SendCodeEmail(to string, code string) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, map[string]string{"Code": code}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", s.subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s", to, s.addr())

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailSender) addr() string {
	return net.JoinHostPort(s.smtpHost, s.smtpPort)
}

func (s *MailSender) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", s.addr(), 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole session so a dead server cannot stall us
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
