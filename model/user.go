// model/user.go
package model

type User struct {
	ID       string `gorm:"column:user_id;primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	Name     string `gorm:"column:name;type:varchar(255);not null" json:"name" yaml:"name"`
	Email    string `gorm:"column:email;type:varchar(255);not null" json:"email" yaml:"email"`
	Avatar   string `gorm:"column:avatar;type:varchar(512)" json:"avatar" yaml:"avatar"`
	IsOnline bool   `gorm:"column:is_online" json:"isOnline" yaml:"isOnline"`
}

func (User) TableName() string {
	return "user"
}
