package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// TaskListFilters 任务列表过滤维度
// 所有维度独立可选，未设置的维度不产生约束；各维度之间为 AND 组合
type TaskListFilters struct {
	BoardID     string
	Status      string // 空串表示 ALL
	Priority    string
	AssigneeID  string // 存在任一指派即匹配
	PlanID      string
	MilestoneID string // 仅与 PlanID 联用才有意义
	DueFrom     *time.Time
	DueTo       *time.Time
	Search      string // 标题/描述大小写不敏感子串匹配
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	UpdateStatus(ctx context.Context, taskID, status string, updatedBy string) error
	ListWithFilters(ctx context.Context, filters *TaskListFilters, offset, limit int) ([]model.Task, int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByBoard(ctx context.Context, boardID string) error
	ClearEpic(ctx context.Context, epicID string) error
	ClearMilestone(ctx context.Context, milestoneID string) error
}

// taskRepo TaskRepository 的 GORM 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) UpdateStatus(ctx context.Context, taskID, status string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}).Error
}

// ListWithFilters 按过滤维度组合查询任务
// 指派维度使用 EXISTS 子查询（存在任一指派即匹配，而非唯一指派）
func (r *taskRepo) ListWithFilters(ctx context.Context, filters *TaskListFilters, offset, limit int) ([]model.Task, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Task{})

	if filters.BoardID != "" {
		db = db.Where("board_id = ?", filters.BoardID)
	}
	if filters.Status != "" {
		db = db.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		db = db.Where("priority = ?", filters.Priority)
	}
	if filters.PlanID != "" {
		db = db.Where("plan_id = ?", filters.PlanID)
	}
	if filters.MilestoneID != "" {
		db = db.Where("milestone_id = ?", filters.MilestoneID)
	}
	if filters.AssigneeID != "" {
		db = db.Where("EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.task_id = tasks.task_id AND ta.user_id = ?)",
			filters.AssigneeID)
	}
	if filters.DueFrom != nil {
		db = db.Where("due_date >= ?", filters.DueFrom)
	}
	if filters.DueTo != nil {
		db = db.Where("due_date <= ?", filters.DueTo)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := db.Preload("Assignments").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, total, err
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.Task{}).Error
}

func (r *taskRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&model.Task{}).Error
}

// ClearEpic 将引用指定史诗的任务的 epic_id 置空（删除史诗前调用）
func (r *taskRepo) ClearEpic(ctx context.Context, epicID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("epic_id = ?", epicID).
		Update("epic_id", nil).Error
}

// ClearMilestone 将引用指定里程碑的任务的 milestone_id 置空（删除里程碑前调用）
func (r *taskRepo) ClearMilestone(ctx context.Context, milestoneID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("milestone_id = ?", milestoneID).
		Update("milestone_id", nil).Error
}
