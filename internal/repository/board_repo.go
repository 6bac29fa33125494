package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// BoardRepository 看板数据访问接口
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id string) (*model.Board, error)
	List(ctx context.Context, offset, limit int) ([]model.Board, int64, error)
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	GrantAccess(ctx context.Context, access *model.BoardAccess) error
	GetAccess(ctx context.Context, boardID, userID string) (*model.BoardAccess, error)
	ListAccess(ctx context.Context, boardID string) ([]model.BoardAccess, error)
	DeleteAccessByBoard(ctx context.Context, boardID string) error
}

// boardRepo BoardRepository 的 GORM 实现
type boardRepo struct {
	db *gorm.DB
}

// NewBoardRepo 创建 BoardRepository 实例
func NewBoardRepo(db *gorm.DB) BoardRepository {
	return &boardRepo{db: db}
}

func (r *boardRepo) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepo) GetByID(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("board_id = ?", id).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepo) List(ctx context.Context, offset, limit int) ([]model.Board, int64, error) {
	var boards []model.Board
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Board{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

func (r *boardRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", id).
		Delete(&model.Board{}).Error
}

func (r *boardRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Select("board_id").
		Where("slug = ?", slug).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ── 访问授权 ──

func (r *boardRepo) GrantAccess(ctx context.Context, access *model.BoardAccess) error {
	return r.db.WithContext(ctx).Create(access).Error
}

func (r *boardRepo) GetAccess(ctx context.Context, boardID, userID string) (*model.BoardAccess, error) {
	var access model.BoardAccess
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&access).Error
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *boardRepo) ListAccess(ctx context.Context, boardID string) ([]model.BoardAccess, error) {
	var grants []model.BoardAccess
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

func (r *boardRepo) DeleteAccessByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&model.BoardAccess{}).Error
}
