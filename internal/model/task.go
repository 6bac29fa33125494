package model

import "time"

// 任务状态工作流：TODO → IN_PROGRESS → IN_REVIEW → DONE，BLOCKED 可从任意非 DONE 状态进入。
// 数据模型层不设终态，任意状态间的直接流转均被接受（包括重开 DONE）。
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusInReview   = "IN_REVIEW"
	TaskStatusDone       = "DONE"
	TaskStatusBlocked    = "BLOCKED"
)

// 任务类型
const (
	TaskTypeTask  = "TASK"
	TaskTypeBug   = "BUG"
	TaskTypeSpike = "SPIKE"
	TaskTypeChore = "CHORE"
)

// 任务优先级
const (
	TaskPriorityLow      = "LOW"
	TaskPriorityMedium   = "MEDIUM"
	TaskPriorityHigh     = "HIGH"
	TaskPriorityCritical = "CRITICAL"
)

// 活动日志类型
const (
	ActivityCreated           = "created"
	ActivityUpdated           = "updated"
	ActivityStatusChanged     = "status_changed"
	ActivityAssigned          = "assigned"
	ActivityUnassigned        = "unassigned"
	ActivityCommented         = "commented"
	ActivityCommentDeleted    = "comment_deleted"
	ActivityAttachmentAdded   = "attachment_added"
	ActivityAttachmentRemoved = "attachment_removed"
)

// ValidTaskStatus 校验状态枚举值
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

// ValidTaskType 校验类型枚举值
func ValidTaskType(s string) bool {
	switch s {
	case TaskTypeTask, TaskTypeBug, TaskTypeSpike, TaskTypeChore:
		return true
	}
	return false
}

// ValidTaskPriority 校验优先级枚举值
func ValidTaskPriority(s string) bool {
	switch s {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task 任务表 — 对应 tasks
// 结构不变量：epic_id 非空时 epic.board_id 必须等于 task.board_id；
// 若 plan_id 同时设置且史诗归入计划，则二者计划必须一致。
type Task struct {
	TaskID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	BoardID     string     `gorm:"type:uuid;not null;index"                       json:"board_id"`
	PlanID      *string    `gorm:"type:uuid;index"                                json:"plan_id,omitempty"`
	EpicID      *string    `gorm:"type:uuid;index"                                json:"epic_id,omitempty"`
	MilestoneID *string    `gorm:"type:uuid"                                      json:"milestone_id,omitempty"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string     `gorm:"type:text;not null;default:''"                  json:"description"`
	Type        string     `gorm:"type:varchar(20);not null;default:'TASK'"       json:"type"`     // TASK | BUG | SPIKE | CHORE
	Priority    string     `gorm:"type:varchar(20);not null;default:'MEDIUM'"     json:"priority"` // LOW | MEDIUM | HIGH | CRITICAL
	Status      string     `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	StartDate   *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	DueDate     *time.Time `gorm:"type:date"                                      json:"due_date,omitempty"`
	BaseModel

	// 关联
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// TaskAssignment 任务指派表 — 对应 task_assignments
// (task, user) 二元组唯一，一行代表一位负责人
type TaskAssignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"assignment_id"`
	TaskID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_task_assignments" json:"task_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_task_assignments" json:"user_id"`
	AssignedBy   *string   `gorm:"type:uuid"                                          json:"assigned_by,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`
}

// TableName 指定表名
func (TaskAssignment) TableName() string { return "task_assignments" }

// TaskComment 任务评论表 — 对应 task_comments
type TaskComment struct {
	CommentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	TaskID    string    `gorm:"type:uuid;not null;index"                       json:"task_id"`
	AuthorID  string    `gorm:"type:uuid;not null"                             json:"author_id"`
	Body      string    `gorm:"type:text;not null"                             json:"body"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (TaskComment) TableName() string { return "task_comments" }

// TaskAttachment 任务附件表 — 对应 task_attachments
// 只保存元数据与外部文件存储返回的引用，文件本体不经过本服务
type TaskAttachment struct {
	AttachmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attachment_id"`
	TaskID       string    `gorm:"type:uuid;not null;index"                       json:"task_id"`
	FileRef      string    `gorm:"type:varchar(500);not null"                     json:"file_ref"`
	Filename     string    `gorm:"type:varchar(255);not null"                     json:"filename"`
	Size         int64     `gorm:"not null;default:0"                             json:"size"`
	UploadedBy   *string   `gorm:"type:uuid"                                      json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TaskAttachment) TableName() string { return "task_attachments" }

// TaskActivity 任务活动日志表 — 对应 task_activities（仅追加，正常运行中不更新不删除）
type TaskActivity struct {
	ActivityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	TaskID     string    `gorm:"type:uuid;not null;index"                       json:"task_id"`
	ActorID    string    `gorm:"type:uuid;not null"                             json:"actor_id"`
	Kind       string    `gorm:"type:varchar(40);not null"                      json:"kind"`
	Detail     string    `gorm:"type:text;not null;default:''"                  json:"detail"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TaskActivity) TableName() string { return "task_activities" }
