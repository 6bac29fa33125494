package dto

// ── 史诗模块 DTO ──

// CreateEpicRequest 创建史诗请求
type CreateEpicRequest struct {
	BoardID string `json:"board_id" binding:"required,uuid"`
	PlanID  string `json:"plan_id"  binding:"omitempty,uuid"`
	Title   string `json:"title"    binding:"required,min=1,max=200"`
}

// EpicResponse 史诗响应
type EpicResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	PlanID    string `json:"plan_id,omitempty"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
