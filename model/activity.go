package model

import "time"

type ActivityType string

const (
	ActivityCompleted   ActivityType = "COMPLETED"
	ActivityUncompleted ActivityType = "UNCOMPLETED"
	ActivityAdded       ActivityType = "ADDED"
	ActivityRemoved     ActivityType = "REMOVED"
	ActivityCommented   ActivityType = "COMMENTED"
	ActivityUpdated     ActivityType = "UPDATED"
)

// Activity is an append-only feed entry. UserName and TargetName are copied
// at write time so the feed renders without joins.
type Activity struct {
	ID          string       `gorm:"column:activity_id;primaryKey;type:varchar(64)" json:"id"`
	Type        ActivityType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	UserID      string       `gorm:"column:user_id;type:varchar(64)" json:"userId"`
	UserName    string       `gorm:"column:user_name;type:varchar(255)" json:"userName"`
	TargetName  string       `gorm:"column:target_name;type:varchar(255)" json:"targetName"`
	ChecklistID string       `gorm:"column:checklist_id;type:varchar(64);index" json:"checklistId"`
	Timestamp   time.Time    `gorm:"column:timestamp;index" json:"timestamp"`
}

func (Activity) TableName() string {
	return "activities"
}
