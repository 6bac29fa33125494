package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opsboard/backend/config"
	"opsboard/backend/internal/api/handler"
	"opsboard/backend/internal/api/middleware"
	"opsboard/backend/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("", middleware.RoleAuth("admin"), h.User.CreateUser)
			users.GET("/:id", h.User.GetUser)
		}

		// 看板模块
		boards := v1.Group("/boards")
		{
			boards.POST("", h.Board.CreateBoard)
			boards.GET("", h.Board.ListBoards)
			boards.GET("/:id", h.Board.GetBoard)
			boards.DELETE("/:id", middleware.RoleAuth("admin"), h.Board.DeleteBoard)
			boards.POST("/:id/access", h.Board.GrantAccess)
			boards.GET("/:id/access", h.Board.ListAccess)
		}

		// 计划/里程碑模块
		plans := v1.Group("/plans")
		{
			plans.POST("", h.Plan.CreatePlan)
			plans.GET("", h.Plan.ListPlans)
			plans.GET("/:id", h.Plan.GetPlan)
			plans.PUT("/:id/close", h.Plan.ClosePlan)
			plans.POST("/:id/milestones", h.Plan.CreateMilestone)
			plans.GET("/:id/milestones", h.Plan.ListMilestones)
			plans.GET("/:id/calendar.ics", h.Plan.ExportCalendar)
		}
		v1.DELETE("/milestones/:id", h.Plan.DeleteMilestone)

		// 史诗模块
		epics := v1.Group("/epics")
		{
			epics.POST("", h.Epic.CreateEpic)
			epics.GET("", h.Epic.ListEpics)
			epics.GET("/:id", h.Epic.GetEpic)
			epics.DELETE("/:id", h.Epic.DeleteEpic)
		}

		// 任务模块
		tasks := v1.Group("/tasks")
		{
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/:id", h.Task.GetTask)
			tasks.PUT("/:id", h.Task.UpdateTask)
			tasks.DELETE("/:id", h.Task.DeleteTask)
			tasks.PUT("/:id/status", h.Task.SetStatus)
			tasks.POST("/:id/assignees", h.Task.AssignTask)
			tasks.DELETE("/:id/assignees/:userId", h.Task.UnassignTask)
			tasks.POST("/:id/comments", h.Task.AddComment)
			tasks.GET("/:id/comments", h.Task.ListComments)
			tasks.POST("/:id/attachments", h.Task.AddAttachment)
			tasks.GET("/:id/attachments", h.Task.ListAttachments)
			tasks.GET("/:id/activity", h.Task.ListActivities)
		}
		v1.DELETE("/comments/:id", h.Task.DeleteComment)
		v1.DELETE("/attachments/:id", h.Task.DeleteAttachment)

		// 考勤模块
		attendance := v1.Group("/attendance")
		{
			attendance.POST("/check-in", h.Attendance.CheckIn)
			attendance.POST("/check-out", h.Attendance.CheckOut)
			attendance.GET("", h.Attendance.ListRecords)
			attendance.POST("/reconcile", middleware.RoleAuth("admin"), h.Attendance.Reconcile)
		}

		// 通知模块
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}

	return r
}
