package delivery

import (
	"context"

	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/pkg/email"
)

// EmailTransport delivers reminders as plain-text mail.
type EmailTransport struct {
	client *email.Client
}

func NewEmailTransport(client *email.Client) *EmailTransport {
	return &EmailTransport{client: client}
}

func (t *EmailTransport) Deliver(ctx context.Context, to string, msg reminder.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := msg.Body
	if msg.URL != "" {
		body += "\r\n\r\n" + msg.URL
	}
	return t.client.SendEmail(to, msg.Subject, body)
}
