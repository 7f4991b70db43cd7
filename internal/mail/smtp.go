package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds the relay address and the account used to authenticate.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// ErrMissingCredentials is returned when the relay account is not configured.
var ErrMissingCredentials = errors.New("SMTP credentials not configured")

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends mail with PLAIN auth over STARTTLS.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSender creates a sender for cfg.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail, now: time.Now}
}

// Send delivers msg. The context is checked before the relay is contacted;
// net/smtp offers no way to abort a send in progress.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrMissingCredentials
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	from := msg.From
	if from == "" {
		from = s.cfg.Username
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	body := BuildMessage(Message{From: from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}, s.now())

	if err := s.sendMail(addr, auth, from, []string{msg.To}, body); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// BuildMessage renders msg as an RFC 5322 message with an HTML body.
func BuildMessage(msg Message, date time.Time) []byte {
	var b bytes.Buffer
	writeHeader(&b, "From", msg.From)
	writeHeader(&b, "To", msg.To)
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&b, "Date", date.Format(time.RFC1123Z))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/html; charset="UTF-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(normalizeNewlines(msg.HTML))
	b.WriteString("\r\n")
	return b.Bytes()
}

// writeHeader drops CR and LF from the value so user input cannot add headers.
func writeHeader(b *bytes.Buffer, key, value string) {
	value = strings.NewReplacer("\r", "", "\n", "").Replace(value)
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
