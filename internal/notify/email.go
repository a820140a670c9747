package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends HTML mail over plain SMTP with AUTH.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

func (m *SMTPMailer) IsReady() bool {
	return m != nil && m.host != "" && m.user != ""
}

func (m *SMTPMailer) SendHTML(to, subject, htmlBody string) error {
	if !m.IsReady() {
		return fmt.Errorf("smtp not configured")
	}
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.from, m.user)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := m.host + ":" + m.port

	return smtp.SendMail(addr, auth, m.user, []string{to}, []byte(msg.String()))
}
