package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn 签到
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.CheckIn(c.Request.Context(), callerID)
	if err != nil {
		handleServiceError(c, err, attendanceCodes)
		return
	}

	response.Created(c, record)
}

// CheckOut 签退
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.CheckOut(c.Request.Context(), callerID)
	if err != nil {
		handleServiceError(c, err, attendanceCodes)
		return
	}

	response.OK(c, record)
}

// ListRecords 获取本人考勤记录
// GET /api/v1/attendance
func (h *AttendanceHandler) ListRecords(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.List(c.Request.Context(), callerID, &req)
	if err != nil {
		handleServiceError(c, err, attendanceCodes)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// Reconcile 手动触发考勤对账（与定时任务执行同一幂等函数）
// POST /api/v1/attendance/reconcile
func (h *AttendanceHandler) Reconcile(c *gin.Context) {
	result, err := h.attendanceSvc.Reconcile(c.Request.Context(), time.Now())
	if err != nil {
		handleServiceError(c, err, attendanceCodes)
		return
	}

	response.OK(c, result)
}
