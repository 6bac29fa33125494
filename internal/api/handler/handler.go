package handler

import "opsboard/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User         *UserHandler
	Board        *BoardHandler
	Plan         *PlanHandler
	Epic         *EpicHandler
	Task         *TaskHandler
	Attendance   *AttendanceHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:         NewUserHandler(svc.User),
		Board:        NewBoardHandler(svc.Board),
		Plan:         NewPlanHandler(svc.Plan, svc.Export),
		Epic:         NewEpicHandler(svc.Epic),
		Task:         NewTaskHandler(svc.Task, svc.Workflow),
		Attendance:   NewAttendanceHandler(svc.Attendance),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
