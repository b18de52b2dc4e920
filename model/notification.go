package model

import (
	"time"
)

// Notification is a transient message about something a collaborator did.
type Notification struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	UserID      string    `json:"userId"`
	ChecklistID string    `json:"checklistId"`
	CreatedAt   time.Time `json:"createdAt"`
}
