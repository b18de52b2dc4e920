package notifier

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Slack posts notification texts to one channel.
type Slack struct {
	api     *slack.Client
	channel string
}

func NewSlack(api *slack.Client, channel string) *Slack {
	return &Slack{api: api, channel: channel}
}

func (s *Slack) Name() string { return "slack" }

func (s *Slack) Publish(ctx context.Context, ev Event) error {
	if ev.Notification == nil {
		return nil
	}
	_, _, err := s.api.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(ev.Notification.Text, false),
	)
	if err != nil {
		return fmt.Errorf("post to %s: %w", s.channel, err)
	}
	return nil
}
