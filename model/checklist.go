// model/checklist.go
package model

import (
	"time"
)

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Share grants a collaborator a role badge on a checklist.
type Share struct {
	UserID string `json:"userId" yaml:"userId"`
	Role   Role   `json:"role" yaml:"role"`
}

type Checklist struct {
	ID                          string    `gorm:"column:checklist_id;primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	Title                       string    `gorm:"column:title;type:varchar(255);not null" json:"title" yaml:"title"`
	Description                 string    `gorm:"column:description;type:text" json:"description" yaml:"description"`
	OwnerID                     string    `gorm:"column:owner_id;type:varchar(64);not null" json:"ownerId" yaml:"ownerId"`
	SharedWith                  []Share   `gorm:"column:shared_with;type:text;serializer:json" json:"sharedWith" yaml:"sharedWith"`
	Category                    string    `gorm:"column:category;type:varchar(100)" json:"category" yaml:"category"`
	RestrictViewToAssignedTasks bool      `gorm:"column:restrict_view" json:"restrictViewToAssignedTasks" yaml:"restrictViewToAssignedTasks"`
	CreatedAt                   time.Time `gorm:"column:created_at" json:"createdAt" yaml:"createdAt"`
	UpdatedAt                   time.Time `gorm:"column:updated_at" json:"updatedAt" yaml:"updatedAt"`
}

func (Checklist) TableName() string {
	return "checklists"
}

// SharedRole returns the role userID was shared with, or "" if none.
func (c Checklist) SharedRole(userID string) Role {
	for _, s := range c.SharedWith {
		if s.UserID == userID {
			return s.Role
		}
	}
	return ""
}
