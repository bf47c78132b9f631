package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/dmarkovic/jobster/internal/domain"
)

// SMTPMailer sends contact-form notifications over plain SMTP with AUTH.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	to   string
}

func NewSMTPMailer(host, port, user, pass, to string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, to: to}
}

func (m *SMTPMailer) SendContactNotification(ctx context.Context, msg *domain.ContactMessage) error {
	if m.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s <%s>\r\n", msg.Name, m.user)
	fmt.Fprintf(body, "To: %s\r\n", m.to)
	fmt.Fprintf(body, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(body, "Subject: [contact] %s\r\n", msg.Subject)
	fmt.Fprintf(body, "\r\n%s\r\n", msg.Message)

	addr := net.JoinHostPort(m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	// net/smtp has no context support; run the send in a goroutine so the
	// caller's timeout still applies.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.user, []string{m.to}, []byte(body.String()))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
