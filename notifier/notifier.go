// Package notifier broadcasts committed activities and notifications to
// external sinks: a Firestore feed, Redis pub/sub, FCM topics and Slack.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"checksync/model"
	"checksync/store"
)

const publishTimeout = 5 * time.Second

// Event is what sinks receive. At least one field is set.
type Event struct {
	Activity     *model.Activity     `json:"activity,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

type Sink interface {
	Name() string
	Publish(ctx context.Context, ev Event) error
}

// Fanout delivers every event to all sinks. A failing sink is logged and
// does not stop the others.
type Fanout struct {
	sinks []Sink
	log   *slog.Logger
}

func NewFanout(log *slog.Logger, sinks ...Sink) *Fanout {
	if log == nil {
		log = slog.Default()
	}
	return &Fanout{sinks: sinks, log: log}
}

func (f *Fanout) Len() int { return len(f.sinks) }

// Observe implements store.Observer.
func (f *Fanout) Observe(ctx context.Context, ch store.Change) {
	if ch.Activity == nil && ch.Notification == nil {
		return
	}
	f.Publish(ctx, Event{Activity: ch.Activity, Notification: ch.Notification})
}

func (f *Fanout) Publish(ctx context.Context, ev Event) {
	// sinks outlive the HTTP request that produced the change
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, s := range f.sinks {
		if err := s.Publish(ctx, ev); err != nil {
			f.log.Warn("sink publish failed", "sink", s.Name(), "err", err)
		}
	}
}
