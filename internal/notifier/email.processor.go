package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/payformhq/payform/internal/mailer"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/queue"
	"github.com/payformhq/payform/pkg/logger"
	"github.com/payformhq/payform/pkg/prom"
)

// Mailer delivers one message to the relay.
type Mailer interface {
	Send(ctx context.Context, req *mailer.SendRequest) (*mailer.SendResponse, error)
}

// EmailProcessor turns payment notifications into owner emails. Delivery is
// best effort with a single attempt: a failed send is logged and counted,
// never retried. The recorded payment is the durable artifact, the email is
// only a courtesy.
type EmailProcessor struct {
	mailer Mailer
}

func NewEmailProcessor(mailer Mailer) *EmailProcessor {
	return &EmailProcessor{mailer: mailer}
}

func (p *EmailProcessor) GetType() string {
	return "payment-email"
}

// Process decodes and delivers one notification. It always returns nil so the
// message is acknowledged regardless of the delivery outcome.
func (p *EmailProcessor) Process(ctx context.Context, queueMessage *queue.Message) error {
	var notification model.PaymentNotification
	if err := json.Unmarshal(queueMessage.Data, &notification); err != nil {
		logger.Error("Failed to unmarshal notification", "message_id", queueMessage.ID, "error", err)
		prom.IncCounter(prom.SystemNotifications, prom.MetricNotificationsFailed)
		return nil // malformed payloads never succeed on retry
	}

	req := &mailer.SendRequest{
		To:      notification.OwnerEmail,
		Subject: fmt.Sprintf("Payment received on %q", notification.FormName),
		Body:    buildBody(&notification),
	}

	start := time.Now()
	res, err := p.mailer.Send(ctx, req)
	prom.AddHistogram(prom.SystemNotifications, prom.MetricNotificationSendDuration, time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to deliver notification",
			"message_id", queueMessage.ID,
			"owner_email", notification.OwnerEmail,
			"transaction_id", notification.Transaction.ID,
			"error", err)
		prom.IncCounter(prom.SystemNotifications, prom.MetricNotificationsFailed)
		return nil
	}

	logger.Info("Notification delivered",
		"message_id", queueMessage.ID,
		"owner_email", notification.OwnerEmail,
		"transaction_id", notification.Transaction.ID,
		"relay_message_id", res.MessageID)
	prom.IncCounter(prom.SystemNotifications, prom.MetricNotificationsDispatched)
	return nil
}

func buildBody(n *model.PaymentNotification) string {
	return fmt.Sprintf(
		"You received a payment of %.2f %s on %q from %s.",
		n.Transaction.AmountPaid,
		n.Transaction.Currency,
		n.FormName,
		n.Transaction.PayerEmail,
	)
}
