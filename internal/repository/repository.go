package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Board        BoardRepository
	Plan         PlanRepository
	Milestone    MilestoneRepository
	Epic         EpicRepository
	Task         TaskRepository
	TaskDetail   TaskDetailRepository
	Attendance   AttendanceRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Board:        NewBoardRepo(db),
		Plan:         NewPlanRepo(db),
		Milestone:    NewMilestoneRepo(db),
		Epic:         NewEpicRepo(db),
		Task:         NewTaskRepo(db),
		TaskDetail:   NewTaskDetailRepo(db),
		Attendance:   NewAttendanceRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
