package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
	"opsboard/backend/internal/repository"
	pkgerrors "opsboard/backend/pkg/errors"
)

// WorkflowService 任务状态工作流接口
// 工作流采用宽松模型：任意两个合法状态之间可以直接流转，包括重开 DONE；
// 唯一校验是目标值必须在状态枚举内。
type WorkflowService interface {
	SetStatus(ctx context.Context, taskID, status, actorID string) (*dto.TaskResponse, error)
}

type workflowService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewWorkflowService 创建 WorkflowService 实例
func NewWorkflowService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) WorkflowService {
	return &workflowService{repo: repo, notifier: notifier, logger: logger}
}

func (s *workflowService) SetStatus(ctx context.Context, taskID, status, actorID string) (*dto.TaskResponse, error) {
	if !model.ValidTaskStatus(status) {
		return nil, pkgerrors.NewValidation("未知的任务状态")
	}

	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		s.logger.Error("查询任务失败", zap.String("id", taskID), zap.Error(err))
		return nil, err
	}

	from := task.Status
	if from != status {
		if err := s.repo.Task.UpdateStatus(ctx, taskID, status, actorID); err != nil {
			s.logger.Error("更新任务状态失败",
				zap.String("task_id", taskID),
				zap.String("status", status),
				zap.Error(err))
			return nil, err
		}
		task.Status = status
	}

	// 同状态流转也记录一条活动，保留操作痕迹
	s.appendStatusActivity(ctx, taskID, actorID, from, status)

	if from != status {
		s.notifyAssignees(ctx, task, from, status, actorID)
	}

	return toTaskResponse(task), nil
}

// appendStatusActivity 追加状态流转活动；失败只记日志
func (s *workflowService) appendStatusActivity(ctx context.Context, taskID, actorID, from, to string) {
	activity := &model.TaskActivity{
		TaskID:  taskID,
		ActorID: actorID,
		Kind:    model.ActivityStatusChanged,
		Detail:  fmt.Sprintf("%s -> %s", from, to),
	}
	if err := s.repo.TaskDetail.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("追加状态流转日志失败",
			zap.String("task_id", taskID),
			zap.Error(err))
	}
}

// notifyAssignees 向全部被指派人发送状态变更通知；操作者本人除外
func (s *workflowService) notifyAssignees(ctx context.Context, task *model.Task, from, to, actorID string) {
	assignments, err := s.repo.TaskDetail.ListAssignments(ctx, task.TaskID)
	if err != nil {
		s.logger.Warn("查询任务指派失败", zap.String("task_id", task.TaskID), zap.Error(err))
		return
	}
	for _, a := range assignments {
		if a.UserID == actorID {
			continue
		}
		s.notifier.Notify(ctx, a.UserID,
			"任务状态变更",
			fmt.Sprintf("任务「%s」状态由 %s 变更为 %s", task.Title, from, to),
			model.NotificationTypeStatusChanged, "task", task.TaskID)
	}
}
