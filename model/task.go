package model

import (
	"slices"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"column:task_id;primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	ChecklistID string     `gorm:"column:checklist_id;type:varchar(64);not null;index" json:"checklistId" yaml:"checklistId"`
	Title       string     `gorm:"column:title;type:varchar(255);not null" json:"title" yaml:"title"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty" yaml:"description"`
	IsCompleted bool       `gorm:"column:is_completed" json:"isCompleted" yaml:"isCompleted"`
	AssignedTo  []string   `gorm:"column:assigned_to;type:text;serializer:json" json:"assignedTo" yaml:"assignedTo"`
	Priority    Priority   `gorm:"column:priority;type:varchar(10);default:'medium'" json:"priority" yaml:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"dueDate,omitempty" yaml:"dueDate"`
	CompletedBy string     `gorm:"column:completed_by;type:varchar(64)" json:"completedBy,omitempty" yaml:"completedBy"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty" yaml:"completedAt"`

	// Position keeps insertion order in the database.
	Position int `gorm:"column:position;index" json:"-" yaml:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsAssigned reports whether userID is in the task's assignee set.
func (t Task) IsAssigned(userID string) bool {
	return slices.Contains(t.AssignedTo, userID)
}

// IsOverdue is true for an open task whose due date is before now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}
