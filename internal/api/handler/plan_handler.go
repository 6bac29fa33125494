package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// PlanHandler 计划/里程碑模块 HTTP 处理器
type PlanHandler struct {
	planSvc   service.PlanService
	exportSvc service.ExportService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService, exportSvc service.ExportService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc, exportSvc: exportSvc}
}

// CreatePlan 创建计划
// POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.Created(c, plan)
}

// GetPlan 获取计划详情
// GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	plan, err := h.planSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.OK(c, plan)
}

// ListPlans 获取看板下的计划列表
// GET /api/v1/plans?board_id=xxx
func (h *PlanHandler) ListPlans(c *gin.Context) {
	boardID := c.Query("board_id")
	if boardID == "" {
		response.BadRequest(c, 10001, "board_id 不能为空")
		return
	}

	plans, err := h.planSvc.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.OK(c, gin.H{"list": plans})
}

// ClosePlan 关闭计划（幂等）
// PUT /api/v1/plans/:id/close
func (h *PlanHandler) ClosePlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.Close(c.Request.Context(), id, callerID)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.OK(c, plan)
}

// CreateMilestone 创建里程碑
// POST /api/v1/plans/:id/milestones
func (h *PlanHandler) CreateMilestone(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	milestone, err := h.planSvc.CreateMilestone(c.Request.Context(), planID, &req, callerID)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.Created(c, milestone)
}

// ListMilestones 获取计划下的里程碑列表
// GET /api/v1/plans/:id/milestones
func (h *PlanHandler) ListMilestones(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	milestones, err := h.planSvc.ListMilestones(c.Request.Context(), planID)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.OK(c, gin.H{"list": milestones})
}

// DeleteMilestone 删除里程碑
// DELETE /api/v1/milestones/:id
func (h *PlanHandler) DeleteMilestone(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "里程碑ID不能为空")
		return
	}

	if err := h.planSvc.DeleteMilestone(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	response.OK(c, nil)
}

// ExportCalendar 导出计划日历
// GET /api/v1/plans/:id/calendar.ics
func (h *PlanHandler) ExportCalendar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	content, err := h.exportSvc.PlanICS(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, planCodes)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="plan.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
