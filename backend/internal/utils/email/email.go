package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yamdb-dev/yamdb/shared/config"
	"github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
)

// Message is what a Sender delivers
type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Email delivers messages over SMTP
type Email struct {
	config *config.Email
	auth   smtp.Auth
}

func New(config *config.Email) *Email {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	return &Email{
		config: config,
		auth:   auth,
	}
}

// IsCorrect rejects recipients no SMTP server would accept
func IsCorrect(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.Validation(err.Error())
	}
	return nil
}

func (e *Email) Send(ctx context.Context, msg Message) error {
	if err := IsCorrect(msg.To); err != nil {
		return err
	}
	raw := e.buildMessage(msg)
	address := fmt.Sprintf("%s:%d", e.config.SMTPServer, e.config.SMTPPort)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if e.config.SMTPPort == 465 {
		return e.sendImplicitTLS(ctx, address, msg.To, raw)
	}
	return e.sendSTARTTLS(ctx, address, msg.To, raw)
}

func (e *Email) timeout() time.Duration {
	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

func (e *Email) dial(ctx context.Context, address string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: e.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	// bound the whole SMTP conversation, not just the dial
	conn.SetDeadline(time.Now().Add(e.timeout()))
	return conn, nil
}

// sendImplicitTLS sends over a connection that is TLS from the start (port 465).
func (e *Email) sendImplicitTLS(ctx context.Context, address, recipient string, msg []byte) error {
	raw, err := e.dial(ctx, address)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	conn := tls.Client(raw, &tls.Config{ServerName: e.config.SMTPServer})
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return e.sendViaClient(client, recipient, msg)
}

// sendSTARTTLS upgrades a plain connection to TLS (port 587).
func (e *Email) sendSTARTTLS(ctx context.Context, address, recipient string, msg []byte) error {
	conn, err := e.dial(ctx, address)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: e.config.SMTPServer}); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return e.sendViaClient(client, recipient, msg)
}

func (e *Email) sendViaClient(client *smtp.Client, recipient string, msg []byte) error {
	if err := client.Auth(e.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(e.config.Username); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	if err := client.Rcpt(recipient); err != nil {
		logger.Log.Error("failed to set recipient", "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to get data writer", "error", err)
		return err
	}

	if _, err = w.Write(msg); err != nil {
		logger.Log.Error("failed to write message", "error", err)
		return err
	}

	if err = w.Close(); err != nil {
		logger.Log.Error("failed to close data writer", "error", err)
		return err
	}

	return client.Quit()
}

// messageID is unique per message and scoped to the sender's domain
func messageID(sender string) string {
	domain := "localhost"
	if _, host, found := strings.Cut(sender, "@"); found && host != "" {
		domain = host
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func (e *Email) buildMessage(msg Message) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", msg.Subject)
	from := e.config.Username
	if e.config.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", e.config.SenderName), e.config.Username)
	}

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		messageID(e.config.Username), time.Now().Format(time.RFC1123Z), msg.To, from, encodedSubject, msg.Body,
	)
}
