package repository

import (
	"context"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// EpicRepository 史诗数据访问接口
type EpicRepository interface {
	Create(ctx context.Context, epic *model.Epic) error
	GetByID(ctx context.Context, id string) (*model.Epic, error)
	ListByBoard(ctx context.Context, boardID string) ([]model.Epic, error)
	Delete(ctx context.Context, id string) error
	DeleteByBoard(ctx context.Context, boardID string) error
}

// epicRepo EpicRepository 的 GORM 实现
type epicRepo struct {
	db *gorm.DB
}

// NewEpicRepo 创建 EpicRepository 实例
func NewEpicRepo(db *gorm.DB) EpicRepository {
	return &epicRepo{db: db}
}

func (r *epicRepo) Create(ctx context.Context, epic *model.Epic) error {
	return r.db.WithContext(ctx).Create(epic).Error
}

func (r *epicRepo) GetByID(ctx context.Context, id string) (*model.Epic, error) {
	var epic model.Epic
	err := r.db.WithContext(ctx).
		Where("epic_id = ?", id).
		First(&epic).Error
	if err != nil {
		return nil, err
	}
	return &epic, nil
}

func (r *epicRepo) ListByBoard(ctx context.Context, boardID string) ([]model.Epic, error) {
	var epics []model.Epic
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&epics).Error
	return epics, err
}

func (r *epicRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("epic_id = ?", id).
		Delete(&model.Epic{}).Error
}

func (r *epicRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&model.Epic{}).Error
}
