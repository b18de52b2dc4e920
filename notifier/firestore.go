package notifier

import (
	"context"
	"fmt"
	"time"

	"checksync/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreFeed mirrors the activity log to
// Checklists/{checklistId}/Activities/{activityId}.
type FirestoreFeed struct {
	client *firestore.Client
}

func NewFirestoreFeed(client *firestore.Client) *FirestoreFeed {
	return &FirestoreFeed{client: client}
}

func (f *FirestoreFeed) Name() string { return "firestore" }

func (f *FirestoreFeed) activities(checklistID string) *firestore.CollectionRef {
	return f.client.Collection("Checklists").Doc(checklistID).Collection("Activities")
}

func (f *FirestoreFeed) Publish(ctx context.Context, ev Event) error {
	a := ev.Activity
	if a == nil {
		return nil
	}
	_, err := f.activities(a.ChecklistID).Doc(a.ID).Set(ctx, map[string]interface{}{
		"ActivityID":  a.ID,
		"Type":        string(a.Type),
		"UserID":      a.UserID,
		"UserName":    a.UserName,
		"TargetName":  a.TargetName,
		"ChecklistID": a.ChecklistID,
		"Timestamp":   a.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("set activity %s: %w", a.ID, err)
	}
	return nil
}

// List returns up to limit feed entries for a checklist, newest first.
// A checklist without a feed yields an empty list.
func (f *FirestoreFeed) List(ctx context.Context, checklistID string, limit int) ([]model.Activity, error) {
	iter := f.activities(checklistID).OrderBy("Timestamp", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	out := make([]model.Activity, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return out, nil
			}
			return nil, fmt.Errorf("list activities of %s: %w", checklistID, err)
		}
		out = append(out, activityFromDoc(doc.Data()))
	}
	return out, nil
}

func activityFromDoc(data map[string]interface{}) model.Activity {
	str := func(k string) string {
		s, _ := data[k].(string)
		return s
	}
	a := model.Activity{
		ID:          str("ActivityID"),
		Type:        model.ActivityType(str("Type")),
		UserID:      str("UserID"),
		UserName:    str("UserName"),
		TargetName:  str("TargetName"),
		ChecklistID: str("ChecklistID"),
	}
	if ts, ok := data["Timestamp"].(time.Time); ok {
		a.Timestamp = ts
	}
	return a
}
