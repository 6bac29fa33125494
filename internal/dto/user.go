package dto

// ── 用户模块 DTO ──

// CreateUserRequest 用户建档请求
// 账号体系由身份服务管理，这里只登记引用所需的最小字段
type CreateUserRequest struct {
	Name  string `json:"name"  binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email,max=255"`
	Role  string `json:"role"  binding:"omitempty,oneof=admin member"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Slug      string `json:"slug"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
