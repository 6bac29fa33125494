package dto

// ── 看板模块 DTO ──

// CreateBoardRequest 创建看板请求
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// GrantBoardAccessRequest 授予看板访问请求
type GrantBoardAccessRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role"    binding:"required,oneof=ADMIN MEMBER VIEWER"`
}

// BoardResponse 看板响应
type BoardResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	OwnerID   string `json:"owner_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BoardAccessResponse 看板访问授权响应
type BoardAccessResponse struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// BoardListRequest 看板列表查询参数
type BoardListRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
