package notifier

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// TopicFor is the FCM topic devices subscribe to for a checklist.
func TopicFor(checklistID string) string {
	return "checklist-" + checklistID
}

type messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Push sends collaborator notifications to the checklist's FCM topic.
type Push struct {
	client messenger
}

func NewPush(client *messaging.Client) *Push {
	return &Push{client: client}
}

func (p *Push) Name() string { return "fcm" }

func (p *Push) Publish(ctx context.Context, ev Event) error {
	n := ev.Notification
	if n == nil {
		return nil
	}
	message := &messaging.Message{
		Data: map[string]string{
			"payload":     "notification",
			"checklistId": n.ChecklistID,
			"userId":      n.UserID,
		},
		Notification: &messaging.Notification{
			Title: "CheckSync",
			Body:  n.Text,
		},
		Topic: TopicFor(n.ChecklistID),
	}
	if _, err := p.client.Send(ctx, message); err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	return nil
}
