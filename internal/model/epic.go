package model

// Epic 史诗表 — 对应 epics
// 隶属于一个看板，可选地归入该看板下的一个计划
type Epic struct {
	EpicID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"epic_id"`
	BoardID string  `gorm:"type:uuid;not null;index"                       json:"board_id"`
	PlanID  *string `gorm:"type:uuid"                                      json:"plan_id,omitempty"`
	Title   string  `gorm:"type:varchar(200);not null"                     json:"title"`
	BaseModel
}

// TableName 指定表名
func (Epic) TableName() string { return "epics" }
