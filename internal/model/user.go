package model

import "time"

// User 用户表 — 对应 users
// 本服务只维护操作者/负责人引用所需的最小字段，账号体系由身份服务管理
type User struct {
	UserID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Email     string    `gorm:"type:varchar(255);not null"                     json:"email"`
	Slug      string    `gorm:"type:varchar(120);not null;uniqueIndex:uq_users_slug" json:"slug"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
