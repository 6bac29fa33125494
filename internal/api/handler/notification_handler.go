package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 获取本人通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	notifications, total, err := h.notificationSvc.List(c.Request.Context(), callerID, &req)
	if err != nil {
		handleServiceError(c, err, notificationCodes)
		return
	}

	response.OKPage(c, notifications, total, req.Page, req.PageSize)
}

// MarkRead 标记通知已读（仅限本人的通知）
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, notificationCodes.notFound, "通知不存在")
			return
		}
		handleServiceError(c, err, notificationCodes)
		return
	}

	response.OK(c, nil)
}
