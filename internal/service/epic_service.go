package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
	"opsboard/backend/internal/repository"
	pkgerrors "opsboard/backend/pkg/errors"
)

// EpicService 史诗业务接口
type EpicService interface {
	Create(ctx context.Context, req *dto.CreateEpicRequest, createdBy string) (*dto.EpicResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EpicResponse, error)
	ListByBoard(ctx context.Context, boardID string) ([]dto.EpicResponse, error)
	Delete(ctx context.Context, id string) error
}

type epicService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEpicService 创建 EpicService 实例
func NewEpicService(repo *repository.Repository, logger *zap.Logger) EpicService {
	return &epicService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *epicService) Create(ctx context.Context, req *dto.CreateEpicRequest, createdBy string) (*dto.EpicResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	epic := &model.Epic{
		BoardID: req.BoardID,
		Title:   req.Title,
	}
	epic.CreatedBy = &createdBy
	epic.UpdatedBy = &createdBy

	if req.PlanID != "" {
		plan, err := s.repo.Plan.GetByID(ctx, req.PlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.NewNotFound("计划不存在")
			}
			return nil, err
		}
		if plan.BoardID != req.BoardID {
			return nil, pkgerrors.NewValidation("计划不属于该看板")
		}
		epic.PlanID = &req.PlanID
	}

	if err := s.repo.Epic.Create(ctx, epic); err != nil {
		s.logger.Error("创建史诗失败", zap.String("board_id", req.BoardID), zap.Error(err))
		return nil, err
	}

	return toEpicResponse(epic), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *epicService) GetByID(ctx context.Context, id string) (*dto.EpicResponse, error) {
	epic, err := s.repo.Epic.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("史诗不存在")
		}
		s.logger.Error("查询史诗失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEpicResponse(epic), nil
}

func (s *epicService) ListByBoard(ctx context.Context, boardID string) ([]dto.EpicResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	epics, err := s.repo.Epic.ListByBoard(ctx, boardID)
	if err != nil {
		s.logger.Error("列出史诗失败", zap.String("board_id", boardID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EpicResponse, 0, len(epics))
	for i := range epics {
		result = append(result, *toEpicResponse(&epics[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除史诗前先清空任务上的引用，任务本身保留
func (s *epicService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Epic.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("史诗不存在")
		}
		return err
	}

	if err := s.repo.Task.ClearEpic(ctx, id); err != nil {
		s.logger.Error("清空任务史诗引用失败", zap.String("epic_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Epic.Delete(ctx, id); err != nil {
		s.logger.Error("删除史诗失败", zap.String("epic_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toEpicResponse(epic *model.Epic) *dto.EpicResponse {
	resp := &dto.EpicResponse{
		ID:        epic.EpicID,
		BoardID:   epic.BoardID,
		Title:     epic.Title,
		CreatedAt: epic.CreatedAt.Format(time.RFC3339),
	}
	if epic.PlanID != nil {
		resp.PlanID = *epic.PlanID
	}
	return resp
}
