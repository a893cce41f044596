// internal/workers/notification_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stock-ledger/internal/pkg/config"
)

// MailSender matches smtp.SendMail
type MailSender func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// NotificationProcessor delivers stock alerts by e-mail, or logs them when
// no SMTP relay is configured
type NotificationProcessor struct {
	config config.NotificationsConfig
	send   MailSender
	logger *slog.Logger
}

// NewNotificationProcessor creates a new notification processor
func NewNotificationProcessor(cfg config.NotificationsConfig, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		config: cfg,
		send:   smtp.SendMail,
		logger: logger.With(slog.String("processor", "notification")),
	}
}

// WithSender replaces the SMTP transport
func (p *NotificationProcessor) WithSender(send MailSender) *NotificationProcessor {
	p.send = send
	return p
}

// SendNotification handles TypeSendNotification
func (p *NotificationProcessor) SendNotification(ctx context.Context, t *asynq.Task) error {
	var payload NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	attrs := []any{
		slog.String("kind", string(payload.Kind)),
		slog.String("subject", payload.Subject),
	}
	if payload.ProductID != nil {
		attrs = append(attrs, slog.Int64("product_id", *payload.ProductID))
	}

	if p.config.SMTPHost == "" || len(p.config.To) == 0 {
		p.logger.InfoContext(ctx, "notification would be sent",
			append(attrs, slog.String("body", payload.Body))...)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		p.config.From, strings.Join(p.config.To, ", "), payload.Subject, payload.Body,
	))

	var auth smtp.Auth
	if p.config.SMTPUser != "" {
		auth = smtp.PlainAuth("", p.config.SMTPUser, p.config.SMTPPassword, p.config.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%s", p.config.SMTPHost, p.config.SMTPPort)
	if err := p.send(addr, auth, p.config.From, p.config.To, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	p.logger.InfoContext(ctx, "notification sent", attrs...)
	return nil
}
