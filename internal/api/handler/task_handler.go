package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc     service.TaskService
	workflowSvc service.WorkflowService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService, workflowSvc service.WorkflowService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, workflowSvc: workflowSvc}
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.Created(c, task)
}

// GetTask 获取任务详情
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, task)
}

// ListTasks 组合过滤查询任务
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req dto.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tasks, total, err := h.taskSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OKPage(c, tasks, total, req.Page, req.PageSize)
}

// UpdateTask 更新任务（部分更新）
// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, task)
}

// DeleteTask 删除任务（级联删除子记录）
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, nil)
}

// SetStatus 变更任务状态
// PUT /api/v1/tasks/:id/status
func (h *TaskHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.SetTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.workflowSvc.SetStatus(c.Request.Context(), id, req.Status, callerID)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, task)
}

// AssignTask 指派任务（幂等）
// POST /api/v1/tasks/:id/assignees
func (h *TaskHandler) AssignTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Assign(c.Request.Context(), id, req.UserID, callerID); err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, nil)
}

// UnassignTask 取消指派
// DELETE /api/v1/tasks/:id/assignees/:userId
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	id := c.Param("id")
	userID := c.Param("userId")
	if id == "" || userID == "" {
		response.BadRequest(c, 10001, "任务ID与用户ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Unassign(c.Request.Context(), id, userID, callerID); err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, nil)
}

// AddComment 添加评论
// POST /api/v1/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	comment, err := h.taskSvc.AddComment(c.Request.Context(), id, callerID, req.Body)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.Created(c, comment)
}

// ListComments 获取任务评论列表
// GET /api/v1/tasks/:id/comments
func (h *TaskHandler) ListComments(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	comments, err := h.taskSvc.ListComments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, gin.H{"list": comments})
}

// DeleteComment 删除评论（仅作者本人）
// DELETE /api/v1/comments/:id
func (h *TaskHandler) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评论ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.DeleteComment(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrNotCommentAuthor) {
			response.Forbidden(c, 10003, "只有评论作者可以删除评论")
			return
		}
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, nil)
}

// AddAttachment 登记附件元数据
// POST /api/v1/tasks/:id/attachments
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	attachment, err := h.taskSvc.AddAttachment(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.Created(c, attachment)
}

// ListAttachments 获取任务附件列表
// GET /api/v1/tasks/:id/attachments
func (h *TaskHandler) ListAttachments(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	attachments, err := h.taskSvc.ListAttachments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, gin.H{"list": attachments})
}

// DeleteAttachment 删除附件记录
// DELETE /api/v1/attachments/:id
func (h *TaskHandler) DeleteAttachment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "附件ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.DeleteAttachment(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OK(c, nil)
}

// ListActivities 获取任务活动日志（倒序分页）
// GET /api/v1/tasks/:id/activity
func (h *TaskHandler) ListActivities(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	activities, total, err := h.taskSvc.ListActivities(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, taskCodes)
		return
	}

	response.OKPage(c, activities, total, req.Page, req.PageSize)
}
