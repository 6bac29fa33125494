package model

import "time"

// 看板访问角色
const (
	BoardRoleAdmin  = "ADMIN"
	BoardRoleMember = "MEMBER"
	BoardRoleViewer = "VIEWER"
)

// Board 看板表 — 对应 boards
// 工作项层级的顶层容器，slug 在看板之间全局唯一
type Board struct {
	BoardID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"board_id"`
	Name    string `gorm:"type:varchar(200);not null"                     json:"name"`
	Slug    string `gorm:"type:varchar(120);not null;uniqueIndex:uq_boards_slug" json:"slug"`
	OwnerID string `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID;references:UserID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Board) TableName() string { return "boards" }

// BoardAccess 看板访问授权表 — 对应 board_access
// (board, user) 二元组唯一
type BoardAccess struct {
	AccessID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"access_id"`
	BoardID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_board_access" json:"board_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_board_access" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null;default:'MEMBER'"     json:"role"` // ADMIN | MEMBER | VIEWER
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (BoardAccess) TableName() string { return "board_access" }
