package repository

import (
	"context"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// PlanRepository 计划数据访问接口
type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	GetByID(ctx context.Context, id string) (*model.Plan, error)
	ListByBoard(ctx context.Context, boardID string) ([]model.Plan, error)
	Update(ctx context.Context, plan *model.Plan) error
	DeleteByBoard(ctx context.Context, boardID string) error
}

// MilestoneRepository 里程碑数据访问接口
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	GetByID(ctx context.Context, id string) (*model.Milestone, error)
	ListByPlan(ctx context.Context, planID string) ([]model.Milestone, error)
	Delete(ctx context.Context, id string) error
	DeleteByBoard(ctx context.Context, boardID string) error
}

// ── Plan Repository 实现 ──

type planRepo struct {
	db *gorm.DB
}

// NewPlanRepo 创建 PlanRepository 实例
func NewPlanRepo(db *gorm.DB) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepo) GetByID(ctx context.Context, id string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepo) ListByBoard(ctx context.Context, boardID string) ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("start_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *planRepo) Update(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *planRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&model.Plan{}).Error
}

// ── Milestone Repository 实现 ──

type milestoneRepo struct {
	db *gorm.DB
}

// NewMilestoneRepo 创建 MilestoneRepository 实例
func NewMilestoneRepo(db *gorm.DB) MilestoneRepository {
	return &milestoneRepo{db: db}
}

func (r *milestoneRepo) Create(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepo) GetByID(ctx context.Context, id string) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.db.WithContext(ctx).
		Where("milestone_id = ?", id).
		First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepo) ListByPlan(ctx context.Context, planID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("due_date ASC NULLS LAST").
		Find(&milestones).Error
	return milestones, err
}

func (r *milestoneRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("milestone_id = ?", id).
		Delete(&model.Milestone{}).Error
}

func (r *milestoneRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).
		Where("plan_id IN (?)",
			r.db.Model(&model.Plan{}).Select("plan_id").Where("board_id = ?", boardID)).
		Delete(&model.Milestone{}).Error
}
