package handler

import (
	"github.com/gin-gonic/gin"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/response"
)

// BoardHandler 看板模块 HTTP 处理器
type BoardHandler struct {
	boardSvc service.BoardService
}

// NewBoardHandler 创建 BoardHandler
func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc}
}

// CreateBoard 创建看板
// POST /api/v1/boards
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	board, err := h.boardSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.Created(c, board)
}

// GetBoard 获取看板详情
// GET /api/v1/boards/:id
func (h *BoardHandler) GetBoard(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "看板ID不能为空")
		return
	}

	board, err := h.boardSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.OK(c, board)
}

// ListBoards 获取看板列表
// GET /api/v1/boards
func (h *BoardHandler) ListBoards(c *gin.Context) {
	var req dto.BoardListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	boards, total, err := h.boardSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.OKPage(c, boards, total, req.Page, req.PageSize)
}

// DeleteBoard 删除看板（级联删除全部后代）
// DELETE /api/v1/boards/:id
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "看板ID不能为空")
		return
	}

	if err := h.boardSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.OK(c, nil)
}

// GrantAccess 授予看板访问权限
// POST /api/v1/boards/:id/access
func (h *BoardHandler) GrantAccess(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "看板ID不能为空")
		return
	}

	var req dto.GrantBoardAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	access, err := h.boardSvc.GrantAccess(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.Created(c, access)
}

// ListAccess 获取看板访问授权列表
// GET /api/v1/boards/:id/access
func (h *BoardHandler) ListAccess(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "看板ID不能为空")
		return
	}

	grants, err := h.boardSvc.ListAccess(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, boardCodes)
		return
	}

	response.OK(c, gin.H{"list": grants})
}
