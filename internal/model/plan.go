package model

import "time"

// 计划状态
const (
	PlanStatusActive = "ACTIVE"
	PlanStatusClosed = "CLOSED"
)

// Plan 计划表 — 对应 plans
// 看板内的时间盒（类似迭代/冲刺）
type Plan struct {
	PlanID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`
	BoardID   string    `gorm:"type:uuid;not null;index"                       json:"board_id"`
	Name      string    `gorm:"type:varchar(200);not null"                     json:"name"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"` // ACTIVE | CLOSED
	BaseModel
}

// TableName 指定表名
func (Plan) TableName() string { return "plans" }

// Milestone 里程碑表 — 对应 milestones
// 隶属于一个计划，任务可选地挂到里程碑上
type Milestone struct {
	MilestoneID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"milestone_id"`
	PlanID      string     `gorm:"type:uuid;not null;index"                       json:"plan_id"`
	Name        string     `gorm:"type:varchar(200);not null"                     json:"name"`
	DueDate     *time.Time `gorm:"type:date"                                      json:"due_date,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy   *string    `gorm:"type:uuid"                                      json:"created_by,omitempty"`
}

// TableName 指定表名
func (Milestone) TableName() string { return "milestones" }
