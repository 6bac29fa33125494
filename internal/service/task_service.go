package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
	"opsboard/backend/internal/repository"
	pkgerrors "opsboard/backend/pkg/errors"
)

// ── 任务模块业务错误 ──

var ErrNotCommentAuthor = errors.New("只有评论作者可以删除评论")

// TaskService 任务层级业务接口
// 创建与结构变更在持久化前校验 §层级结构不变量：
// epic 非空 ⇒ epic.board == task.board；plan 同时设置且 epic 已归入计划 ⇒ 计划一致
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, createdBy string) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TaskResponse, error)
	List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error)
	// Delete 级联删除任务的指派、评论、附件与活动日志
	Delete(ctx context.Context, id string) error

	// Assign 幂等：重复指派同一用户是 no-op 而非错误
	Assign(ctx context.Context, taskID, userID, actorID string) error
	Unassign(ctx context.Context, taskID, userID, actorID string) error

	AddComment(ctx context.Context, taskID, authorID, body string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, taskID string) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, requesterID string) error

	AddAttachment(ctx context.Context, taskID string, req *dto.AddAttachmentRequest, uploadedBy string) (*dto.AttachmentResponse, error)
	ListAttachments(ctx context.Context, taskID string) ([]dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, attachmentID, actorID string) error

	ListActivities(ctx context.Context, taskID string, req *dto.ActivityListRequest) ([]dto.ActivityResponse, int64, error)
}

type taskService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, createdBy string) (*dto.TaskResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	task := &model.Task{
		BoardID:     req.BoardID,
		Title:       req.Title,
		Description: req.Description,
		Type:        model.TaskTypeTask,
		Priority:    model.TaskPriorityMedium,
		Status:      model.TaskStatusTodo, // 工作流初始状态
	}
	task.CreatedBy = &createdBy
	task.UpdatedBy = &createdBy

	if req.Type != "" {
		task.Type = req.Type
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.PlanID != "" {
		task.PlanID = &req.PlanID
	}
	if req.EpicID != "" {
		task.EpicID = &req.EpicID
	}
	if req.MilestoneID != "" {
		task.MilestoneID = &req.MilestoneID
	}

	var err error
	if task.StartDate, err = parseOptionalDate(req.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if task.DueDate, err = parseOptionalDate(req.DueDate, "due_date"); err != nil {
		return nil, err
	}

	if err := s.validateStructure(ctx, task); err != nil {
		return nil, err
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.String("board_id", req.BoardID), zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, task.TaskID, createdBy, model.ActivityCreated, "")

	return toTaskResponse(task), nil
}

// validateStructure 校验任务的层级结构不变量
func (s *taskService) validateStructure(ctx context.Context, task *model.Task) error {
	if task.PlanID != nil {
		plan, err := s.repo.Plan.GetByID(ctx, *task.PlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFound("计划不存在")
			}
			return err
		}
		if plan.BoardID != task.BoardID {
			return pkgerrors.NewValidation("计划不属于该看板")
		}
	}

	if task.EpicID != nil {
		epic, err := s.repo.Epic.GetByID(ctx, *task.EpicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFound("史诗不存在")
			}
			return err
		}
		if epic.BoardID != task.BoardID {
			return pkgerrors.NewValidation("史诗不属于该看板")
		}
		if task.PlanID != nil && epic.PlanID != nil && *epic.PlanID != *task.PlanID {
			return pkgerrors.NewValidation("史诗与任务归属的计划不一致")
		}
	}

	if task.MilestoneID != nil {
		if task.PlanID == nil {
			return pkgerrors.NewValidation("里程碑必须与计划一同指定")
		}
		milestone, err := s.repo.Milestone.GetByID(ctx, *task.MilestoneID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFound("里程碑不存在")
			}
			return err
		}
		if milestone.PlanID != *task.PlanID {
			return pkgerrors.NewValidation("里程碑不属于该计划")
		}
	}

	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *taskService) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		s.logger.Error("查询任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTaskResponse(task), nil
}

// List 组合过滤查询
// 里程碑维度只有与计划维度联用才有意义（§过滤器组合）
func (s *taskService) List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error) {
	if req.MilestoneID != "" && req.PlanID == "" {
		return nil, 0, pkgerrors.NewValidation("里程碑过滤必须与计划过滤联用")
	}

	filters := &repository.TaskListFilters{
		BoardID:     req.BoardID,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		PlanID:      req.PlanID,
		MilestoneID: req.MilestoneID,
		Search:      req.Search,
	}
	var err error
	if filters.DueFrom, err = parseOptionalDate(req.DueFrom, "due_from"); err != nil {
		return nil, 0, err
	}
	if filters.DueTo, err = parseOptionalDate(req.DueTo, "due_to"); err != nil {
		return nil, 0, err
	}

	offset := (req.Page - 1) * req.PageSize
	tasks, total, err := s.repo.Task.ListWithFilters(ctx, filters, offset, req.PageSize)
	if err != nil {
		s.logger.Error("任务过滤查询失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Type != nil {
		if !model.ValidTaskType(*req.Type) {
			return nil, pkgerrors.NewValidation("未知的任务类型")
		}
		task.Type = *req.Type
	}
	if req.Priority != nil {
		if !model.ValidTaskPriority(*req.Priority) {
			return nil, pkgerrors.NewValidation("未知的优先级")
		}
		task.Priority = *req.Priority
	}
	// 空串表示清除引用，非空表示移动
	if req.PlanID != nil {
		task.PlanID = optionalID(*req.PlanID)
	}
	if req.EpicID != nil {
		task.EpicID = optionalID(*req.EpicID)
	}
	if req.MilestoneID != nil {
		task.MilestoneID = optionalID(*req.MilestoneID)
	}
	if req.StartDate != nil {
		if task.StartDate, err = parseOptionalDate(*req.StartDate, "start_date"); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if task.DueDate, err = parseOptionalDate(*req.DueDate, "due_date"); err != nil {
			return nil, err
		}
	}

	// 结构引用可能被移动，重新校验不变量
	if err := s.validateStructure(ctx, task); err != nil {
		return nil, err
	}

	task.UpdatedBy = &callerID
	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, task.TaskID, callerID, model.ActivityUpdated, "")

	return toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 叶记录（指派/评论/附件/活动日志）先于任务本体删除
func (s *taskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Task.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("任务不存在")
		}
		return err
	}

	if err := s.repo.TaskDetail.DeleteChildrenByTask(ctx, id); err != nil {
		s.logger.Error("删除任务子记录失败", zap.String("task_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Task.Delete(ctx, id); err != nil {
		s.logger.Error("删除任务失败", zap.String("task_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 指派 ──────────────────────

func (s *taskService) Assign(ctx context.Context, taskID, userID, actorID string) error {
	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("任务不存在")
		}
		return err
	}
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("用户不存在")
		}
		return err
	}

	// 已指派则为 no-op
	if _, err := s.repo.TaskDetail.GetAssignment(ctx, taskID, userID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	assignment := &model.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedBy: &actorID,
	}
	if err := s.repo.TaskDetail.CreateAssignment(ctx, assignment); err != nil {
		// 并发重复指派同样按 no-op 处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		s.logger.Error("创建指派失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}

	s.appendActivity(ctx, taskID, actorID, model.ActivityAssigned, userID)
	s.notifier.Notify(ctx, userID,
		"任务指派",
		fmt.Sprintf("你被指派了任务「%s」", task.Title),
		model.NotificationTypeAssigned, "task", taskID)

	return nil
}

func (s *taskService) Unassign(ctx context.Context, taskID, userID, actorID string) error {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("任务不存在")
		}
		return err
	}

	if _, err := s.repo.TaskDetail.GetAssignment(ctx, taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("该用户未被指派此任务")
		}
		return err
	}

	if err := s.repo.TaskDetail.DeleteAssignment(ctx, taskID, userID); err != nil {
		s.logger.Error("删除指派失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}

	s.appendActivity(ctx, taskID, actorID, model.ActivityUnassigned, userID)
	return nil
}

// ────────────────────── 评论 ──────────────────────

func (s *taskService) AddComment(ctx context.Context, taskID, authorID, body string) (*dto.CommentResponse, error) {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, err
	}

	comment := &model.TaskComment{
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.repo.TaskDetail.CreateComment(ctx, comment); err != nil {
		s.logger.Error("创建评论失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, taskID, authorID, model.ActivityCommented, comment.CommentID)

	return toCommentResponse(comment), nil
}

func (s *taskService) ListComments(ctx context.Context, taskID string) ([]dto.CommentResponse, error) {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, err
	}

	comments, err := s.repo.TaskDetail.ListComments(ctx, taskID)
	if err != nil {
		s.logger.Error("列出评论失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, *toCommentResponse(&comments[i]))
	}
	return result, nil
}

func (s *taskService) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	comment, err := s.repo.TaskDetail.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("评论不存在")
		}
		return err
	}
	if comment.AuthorID != requesterID {
		return ErrNotCommentAuthor
	}

	if err := s.repo.TaskDetail.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("删除评论失败", zap.String("comment_id", commentID), zap.Error(err))
		return err
	}

	s.appendActivity(ctx, comment.TaskID, requesterID, model.ActivityCommentDeleted, commentID)
	return nil
}

// ────────────────────── 附件 ──────────────────────

func (s *taskService) AddAttachment(ctx context.Context, taskID string, req *dto.AddAttachmentRequest, uploadedBy string) (*dto.AttachmentResponse, error) {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, err
	}

	attachment := &model.TaskAttachment{
		TaskID:     taskID,
		FileRef:    req.FileRef,
		Filename:   req.Filename,
		Size:       req.Size,
		UploadedBy: &uploadedBy,
	}
	if err := s.repo.TaskDetail.CreateAttachment(ctx, attachment); err != nil {
		s.logger.Error("创建附件记录失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, taskID, uploadedBy, model.ActivityAttachmentAdded, req.Filename)

	return toAttachmentResponse(attachment), nil
}

func (s *taskService) ListAttachments(ctx context.Context, taskID string) ([]dto.AttachmentResponse, error) {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, err
	}

	attachments, err := s.repo.TaskDetail.ListAttachments(ctx, taskID)
	if err != nil {
		s.logger.Error("列出附件失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		result = append(result, *toAttachmentResponse(&attachments[i]))
	}
	return result, nil
}

func (s *taskService) DeleteAttachment(ctx context.Context, attachmentID, actorID string) error {
	attachment, err := s.repo.TaskDetail.GetAttachment(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("附件不存在")
		}
		return err
	}

	if err := s.repo.TaskDetail.DeleteAttachment(ctx, attachmentID); err != nil {
		s.logger.Error("删除附件失败", zap.String("attachment_id", attachmentID), zap.Error(err))
		return err
	}

	s.appendActivity(ctx, attachment.TaskID, actorID, model.ActivityAttachmentRemoved, attachment.Filename)
	return nil
}

// ────────────────────── 活动日志 ──────────────────────

func (s *taskService) ListActivities(ctx context.Context, taskID string, req *dto.ActivityListRequest) ([]dto.ActivityResponse, int64, error) {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, pkgerrors.NewNotFound("任务不存在")
		}
		return nil, 0, err
	}

	offset := (req.Page - 1) * req.PageSize
	activities, total, err := s.repo.TaskDetail.ListActivities(ctx, taskID, offset, req.PageSize)
	if err != nil {
		s.logger.Error("查询活动日志失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		result = append(result, dto.ActivityResponse{
			ID:        a.ActivityID,
			TaskID:    a.TaskID,
			ActorID:   a.ActorID,
			Kind:      a.Kind,
			Detail:    a.Detail,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

// appendActivity 追加活动日志；失败只记日志，不影响主操作结果
func (s *taskService) appendActivity(ctx context.Context, taskID, actorID, kind, detail string) {
	activity := &model.TaskActivity{
		TaskID:  taskID,
		ActorID: actorID,
		Kind:    kind,
		Detail:  detail,
	}
	if err := s.repo.TaskDetail.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("追加活动日志失败",
			zap.String("task_id", taskID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, pkgerrors.NewValidation(field + " 格式无效")
	}
	return &t, nil
}

func optionalID(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:          task.TaskID,
		BoardID:     task.BoardID,
		Title:       task.Title,
		Description: task.Description,
		Type:        task.Type,
		Priority:    task.Priority,
		Status:      task.Status,
		AssigneeIDs: make([]string, 0, len(task.Assignments)),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if task.PlanID != nil {
		resp.PlanID = *task.PlanID
	}
	if task.EpicID != nil {
		resp.EpicID = *task.EpicID
	}
	if task.MilestoneID != nil {
		resp.MilestoneID = *task.MilestoneID
	}
	if task.StartDate != nil {
		resp.StartDate = task.StartDate.Format(dateLayout)
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.Format(dateLayout)
	}
	for _, a := range task.Assignments {
		resp.AssigneeIDs = append(resp.AssigneeIDs, a.UserID)
	}
	return resp
}

func toCommentResponse(c *model.TaskComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.CommentID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toAttachmentResponse(a *model.TaskAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:        a.AttachmentID,
		TaskID:    a.TaskID,
		FileRef:   a.FileRef,
		Filename:  a.Filename,
		Size:      a.Size,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
