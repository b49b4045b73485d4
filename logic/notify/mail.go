package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

var ErrNoSender = errors.New("EMAIL_SENDER is not configured")

// Mailer 通过 SMTP over SSL 发送纯文本邮件，一次发送一封，不重试
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewMailer(host string, port int, sender, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
	}
}

// Send 建立会话、登录、发送、关闭
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := m.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.sender),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client failed: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s failed: %w", to, err)
	}
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	if m.sender == "" {
		return nil, ErrNoSender
	}
	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.sender, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
