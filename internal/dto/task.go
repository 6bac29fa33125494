package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
// status 省略时取工作流初始状态 TODO
type CreateTaskRequest struct {
	BoardID     string `json:"board_id"     binding:"required,uuid"`
	PlanID      string `json:"plan_id"      binding:"omitempty,uuid"`
	EpicID      string `json:"epic_id"      binding:"omitempty,uuid"`
	MilestoneID string `json:"milestone_id" binding:"omitempty,uuid"`
	Title       string `json:"title"        binding:"required,min=1,max=200"`
	Description string `json:"description"  binding:"omitempty,max=10000"`
	Type        string `json:"type"         binding:"omitempty,oneof=TASK BUG SPIKE CHORE"`
	Priority    string `json:"priority"     binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      string `json:"status"       binding:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE BLOCKED"`
	StartDate   string `json:"start_date"   binding:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date"     binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest 更新任务请求（部分更新，nil 字段不变）
type UpdateTaskRequest struct {
	Title       *string `json:"title"        binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"  binding:"omitempty,max=10000"`
	Type        *string `json:"type"         binding:"omitempty,oneof=TASK BUG SPIKE CHORE"`
	Priority    *string `json:"priority"     binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	PlanID      *string `json:"plan_id"      binding:"omitempty"`
	EpicID      *string `json:"epic_id"      binding:"omitempty"`
	MilestoneID *string `json:"milestone_id" binding:"omitempty"`
	StartDate   *string `json:"start_date"   binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date"     binding:"omitempty,datetime=2006-01-02"`
}

// SetTaskStatusRequest 变更任务状态请求
type SetTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS IN_REVIEW DONE BLOCKED"`
}

// AssignTaskRequest 指派任务请求
type AssignTaskRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// AddCommentRequest 添加评论请求
type AddCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=10000"`
}

// AddAttachmentRequest 添加附件元数据请求
// 文件本体已上传至外部文件存储，这里只登记引用
type AddAttachmentRequest struct {
	FileRef  string `json:"file_ref" binding:"required,max=500"`
	Filename string `json:"filename" binding:"required,max=255"`
	Size     int64  `json:"size"     binding:"omitempty,min=0"`
}

// TaskListRequest 任务列表查询参数
// 所有维度独立可选；留空的维度不过滤
type TaskListRequest struct {
	BoardID     string `form:"board_id"     binding:"omitempty,uuid"`
	Status      string `form:"status"       binding:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE BLOCKED"`
	Priority    string `form:"priority"     binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID  string `form:"assignee_id"  binding:"omitempty,uuid"`
	PlanID      string `form:"plan_id"      binding:"omitempty,uuid"`
	MilestoneID string `form:"milestone_id" binding:"omitempty,uuid"`
	DueFrom     string `form:"due_from"     binding:"omitempty,datetime=2006-01-02"`
	DueTo       string `form:"due_to"       binding:"omitempty,datetime=2006-01-02"`
	Search      string `form:"search"       binding:"omitempty,max=200"`
	Page        int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string   `json:"id"`
	BoardID     string   `json:"board_id"`
	PlanID      string   `json:"plan_id,omitempty"`
	EpicID      string   `json:"epic_id,omitempty"`
	MilestoneID string   `json:"milestone_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	StartDate   string   `json:"start_date,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	AssigneeIDs []string `json:"assignee_ids"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// AttachmentResponse 附件响应
type AttachmentResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	FileRef   string `json:"file_ref"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

// ActivityResponse 活动日志响应
type ActivityResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	ActorID   string `json:"actor_id"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ActivityListRequest 活动日志查询参数
type ActivityListRequest struct {
	Page     int `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=50" binding:"omitempty,min=1,max=200"`
}
