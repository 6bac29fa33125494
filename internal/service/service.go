package service

import (
	"time"

	"go.uber.org/zap"

	"opsboard/backend/internal/repository"
)

// Service 业务层聚合
type Service struct {
	User         UserService
	Board        BoardService
	Plan         PlanService
	Epic         EpicService
	Task         TaskService
	Workflow     WorkflowService
	Attendance   AttendanceService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建业务层聚合实例
// pub 可以为 nil，此时通知降级为仅落库
func NewService(repo *repository.Repository, pub EventPublisher, location *time.Location, logger *zap.Logger) *Service {
	notifier := NewNotificationService(repo, pub, logger)
	return &Service{
		User:         NewUserService(repo, logger),
		Board:        NewBoardService(repo, logger),
		Plan:         NewPlanService(repo, logger),
		Epic:         NewEpicService(repo, logger),
		Task:         NewTaskService(repo, notifier, logger),
		Workflow:     NewWorkflowService(repo, notifier, logger),
		Attendance:   NewAttendanceService(repo, location, logger),
		Notification: notifier,
		Export:       NewExportService(repo, logger),
	}
}
