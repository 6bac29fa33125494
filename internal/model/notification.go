package model

import "time"

// 通知类型
const (
	NotificationTypeStatusChanged = "task_status_changed"
	NotificationTypeAssigned      = "task_assigned"
	NotificationTypeCommented     = "task_commented"
)

// Notification 通知消息表 — 对应 notifications
// 投递由外部订阅方完成，本服务只落库并向事件通道发布
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type           string    `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string    `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string   `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // task | board | plan
	RelatedID      *string   `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
