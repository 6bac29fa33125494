package handler

import (
	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// EpicHandler 史诗模块 HTTP 处理器
type EpicHandler struct {
	epicSvc service.EpicService
}

// NewEpicHandler 创建 EpicHandler
func NewEpicHandler(epicSvc service.EpicService) *EpicHandler {
	return &EpicHandler{epicSvc: epicSvc}
}

// CreateEpic 创建史诗
// POST /api/v1/epics
func (h *EpicHandler) CreateEpic(c *gin.Context) {
	var req dto.CreateEpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	epic, err := h.epicSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err, epicCodes)
		return
	}

	response.Created(c, epic)
}

// GetEpic 获取史诗详情
// GET /api/v1/epics/:id
func (h *EpicHandler) GetEpic(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "史诗ID不能为空")
		return
	}

	epic, err := h.epicSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, epicCodes)
		return
	}

	response.OK(c, epic)
}

// ListEpics 获取看板下的史诗列表
// GET /api/v1/epics?board_id=xxx
func (h *EpicHandler) ListEpics(c *gin.Context) {
	boardID := c.Query("board_id")
	if boardID == "" {
		response.BadRequest(c, 10001, "board_id 不能为空")
		return
	}

	epics, err := h.epicSvc.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, err, epicCodes)
		return
	}

	response.OK(c, gin.H{"list": epics})
}

// DeleteEpic 删除史诗（任务上的引用被清空，任务保留）
// DELETE /api/v1/epics/:id
func (h *EpicHandler) DeleteEpic(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "史诗ID不能为空")
		return
	}

	if err := h.epicSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, epicCodes)
		return
	}

	response.OK(c, nil)
}
