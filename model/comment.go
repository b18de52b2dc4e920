package model

import "time"

// Comment keeps the author's name as it was when the comment was written.
type Comment struct {
	ID        string    `gorm:"column:comment_id;primaryKey;type:varchar(64)" json:"id"`
	TaskID    string    `gorm:"column:task_id;type:varchar(64);not null;index" json:"taskId"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null" json:"userId"`
	UserName  string    `gorm:"column:user_name;type:varchar(255)" json:"userName"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
