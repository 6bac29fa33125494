package repository

import (
	"context"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// TaskDetailRepository 任务子结构（指派/评论/附件/活动日志）数据访问接口
type TaskDetailRepository interface {
	// 指派
	CreateAssignment(ctx context.Context, assignment *model.TaskAssignment) error
	GetAssignment(ctx context.Context, taskID, userID string) (*model.TaskAssignment, error)
	ListAssignments(ctx context.Context, taskID string) ([]model.TaskAssignment, error)
	DeleteAssignment(ctx context.Context, taskID, userID string) error

	// 评论
	CreateComment(ctx context.Context, comment *model.TaskComment) error
	GetComment(ctx context.Context, id string) (*model.TaskComment, error)
	ListComments(ctx context.Context, taskID string) ([]model.TaskComment, error)
	DeleteComment(ctx context.Context, id string) error

	// 附件
	CreateAttachment(ctx context.Context, attachment *model.TaskAttachment) error
	GetAttachment(ctx context.Context, id string) (*model.TaskAttachment, error)
	ListAttachments(ctx context.Context, taskID string) ([]model.TaskAttachment, error)
	DeleteAttachment(ctx context.Context, id string) error

	// 活动日志（仅追加）
	AppendActivity(ctx context.Context, activity *model.TaskActivity) error
	ListActivities(ctx context.Context, taskID string, offset, limit int) ([]model.TaskActivity, int64, error)

	// 级联删除（叶先于父）
	DeleteChildrenByTask(ctx context.Context, taskID string) error
	DeleteChildrenByBoard(ctx context.Context, boardID string) error
}

// taskDetailRepo TaskDetailRepository 的 GORM 实现
type taskDetailRepo struct {
	db *gorm.DB
}

// NewTaskDetailRepo 创建 TaskDetailRepository 实例
func NewTaskDetailRepo(db *gorm.DB) TaskDetailRepository {
	return &taskDetailRepo{db: db}
}

// ── 指派 ──

func (r *taskDetailRepo) CreateAssignment(ctx context.Context, assignment *model.TaskAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *taskDetailRepo) GetAssignment(ctx context.Context, taskID, userID string) (*model.TaskAssignment, error) {
	var assignment model.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *taskDetailRepo) ListAssignments(ctx context.Context, taskID string) ([]model.TaskAssignment, error) {
	var assignments []model.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *taskDetailRepo) DeleteAssignment(ctx context.Context, taskID, userID string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&model.TaskAssignment{}).Error
}

// ── 评论 ──

func (r *taskDetailRepo) CreateComment(ctx context.Context, comment *model.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *taskDetailRepo) GetComment(ctx context.Context, id string) (*model.TaskComment, error) {
	var comment model.TaskComment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *taskDetailRepo) ListComments(ctx context.Context, taskID string) ([]model.TaskComment, error) {
	var comments []model.TaskComment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *taskDetailRepo) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&model.TaskComment{}).Error
}

// ── 附件 ──

func (r *taskDetailRepo) CreateAttachment(ctx context.Context, attachment *model.TaskAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *taskDetailRepo) GetAttachment(ctx context.Context, id string) (*model.TaskAttachment, error) {
	var attachment model.TaskAttachment
	err := r.db.WithContext(ctx).
		Where("attachment_id = ?", id).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *taskDetailRepo) ListAttachments(ctx context.Context, taskID string) ([]model.TaskAttachment, error) {
	var attachments []model.TaskAttachment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *taskDetailRepo) DeleteAttachment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attachment_id = ?", id).
		Delete(&model.TaskAttachment{}).Error
}

// ── 活动日志 ──

func (r *taskDetailRepo) AppendActivity(ctx context.Context, activity *model.TaskActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *taskDetailRepo) ListActivities(ctx context.Context, taskID string, offset, limit int) ([]model.TaskActivity, int64, error) {
	var activities []model.TaskActivity
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TaskActivity{}).
		Where("task_id = ?", taskID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, total, err
}

// ── 级联删除 ──

// DeleteChildrenByTask 删除单个任务的全部子记录
func (r *taskDetailRepo) DeleteChildrenByTask(ctx context.Context, taskID string) error {
	for _, m := range []interface{}{
		&model.TaskActivity{},
		&model.TaskAttachment{},
		&model.TaskComment{},
		&model.TaskAssignment{},
	} {
		if err := r.db.WithContext(ctx).
			Where("task_id = ?", taskID).
			Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteChildrenByBoard 删除整个看板下所有任务的子记录
func (r *taskDetailRepo) DeleteChildrenByBoard(ctx context.Context, boardID string) error {
	sub := r.db.Model(&model.Task{}).Select("task_id").Where("board_id = ?", boardID)
	for _, m := range []interface{}{
		&model.TaskActivity{},
		&model.TaskAttachment{},
		&model.TaskComment{},
		&model.TaskAssignment{},
	} {
		if err := r.db.WithContext(ctx).
			Where("task_id IN (?)", sub).
			Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
