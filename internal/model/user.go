package model

import "time"

// User 用户模型，ID 为 Google 账号的 subject，登录成功时 upsert
type User struct {
	ID        string    `gorm:"primaryKey;size:64;comment:用户标识（Google sub）" json:"id"`
	Email     string    `gorm:"size:255;index:idx_users_email;comment:邮箱" json:"email"`
	Name      string    `gorm:"size:255;comment:显示名" json:"name"`
	Picture   string    `gorm:"size:500;comment:头像地址" json:"picture"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
