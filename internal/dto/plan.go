package dto

// ── 计划/里程碑模块 DTO ──

// CreatePlanRequest 创建计划请求
type CreatePlanRequest struct {
	BoardID   string `json:"board_id"   binding:"required,uuid"`
	Name      string `json:"name"       binding:"required,min=1,max=200"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// ClosePlanRequest 关闭计划请求（无载荷，占位以便扩展）
type ClosePlanRequest struct{}

// PlanResponse 计划响应
type PlanResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Name    string `json:"name"     binding:"required,min=1,max=200"`
	DueDate string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// MilestoneResponse 里程碑响应
type MilestoneResponse struct {
	ID      string `json:"id"`
	PlanID  string `json:"plan_id"`
	Name    string `json:"name"`
	DueDate string `json:"due_date,omitempty"`
}
