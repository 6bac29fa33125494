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

// BoardService 看板业务接口
type BoardService interface {
	Create(ctx context.Context, req *dto.CreateBoardRequest, ownerID string) (*dto.BoardResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BoardResponse, error)
	List(ctx context.Context, req *dto.BoardListRequest) ([]dto.BoardResponse, int64, error)
	GrantAccess(ctx context.Context, boardID string, req *dto.GrantBoardAccessRequest) (*dto.BoardAccessResponse, error)
	ListAccess(ctx context.Context, boardID string) ([]dto.BoardAccessResponse, error)
	// Delete 级联删除看板及其全部后代（计划、里程碑、史诗、任务及任务子记录、授权）
	Delete(ctx context.Context, id string) error
}

type boardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBoardService 创建 BoardService 实例
func NewBoardService(repo *repository.Repository, logger *zap.Logger) BoardService {
	return &boardService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *boardService) Create(ctx context.Context, req *dto.CreateBoardRequest, ownerID string) (*dto.BoardResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("所有者用户不存在")
		}
		s.logger.Error("查询用户失败", zap.String("user_id", ownerID), zap.Error(err))
		return nil, err
	}

	var board *model.Board
	_, err := createWithUniqueSlug(ctx, req.Name,
		s.repo.Board.SlugExists,
		func(ctx context.Context, slug string) error {
			board = &model.Board{
				Name:    req.Name,
				Slug:    slug,
				OwnerID: ownerID,
			}
			board.CreatedBy = &ownerID
			board.UpdatedBy = &ownerID
			return s.repo.Board.Create(ctx, board)
		})
	if err != nil {
		if !pkgerrors.IsConflict(err) {
			s.logger.Error("创建看板失败", zap.String("name", req.Name), zap.Error(err))
		}
		return nil, err
	}

	// 创建者自动获得 ADMIN 授权
	access := &model.BoardAccess{
		BoardID: board.BoardID,
		UserID:  ownerID,
		Role:    model.BoardRoleAdmin,
	}
	if err := s.repo.Board.GrantAccess(ctx, access); err != nil {
		s.logger.Error("授予所有者权限失败", zap.String("board_id", board.BoardID), zap.Error(err))
		return nil, err
	}

	return toBoardResponse(board), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *boardService) GetByID(ctx context.Context, id string) (*dto.BoardResponse, error) {
	board, err := s.repo.Board.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		s.logger.Error("查询看板失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toBoardResponse(board), nil
}

func (s *boardService) List(ctx context.Context, req *dto.BoardListRequest) ([]dto.BoardResponse, int64, error) {
	offset := (req.Page - 1) * req.PageSize
	boards, total, err := s.repo.Board.List(ctx, offset, req.PageSize)
	if err != nil {
		s.logger.Error("列出看板失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.BoardResponse, 0, len(boards))
	for i := range boards {
		result = append(result, *toBoardResponse(&boards[i]))
	}
	return result, total, nil
}

// ────────────────────── 访问授权 ──────────────────────

func (s *boardService) GrantAccess(ctx context.Context, boardID string, req *dto.GrantBoardAccessRequest) (*dto.BoardAccessResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("用户不存在")
		}
		return nil, err
	}

	access := &model.BoardAccess{
		BoardID: boardID,
		UserID:  req.UserID,
		Role:    req.Role,
	}
	if err := s.repo.Board.GrantAccess(ctx, access); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.NewConflict("该用户已拥有此看板的授权")
		}
		s.logger.Error("授予看板权限失败", zap.String("board_id", boardID), zap.Error(err))
		return nil, err
	}

	return &dto.BoardAccessResponse{
		UserID:    access.UserID,
		Role:      access.Role,
		CreatedAt: access.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *boardService) ListAccess(ctx context.Context, boardID string) ([]dto.BoardAccessResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	grants, err := s.repo.Board.ListAccess(ctx, boardID)
	if err != nil {
		s.logger.Error("查询看板授权失败", zap.String("board_id", boardID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.BoardAccessResponse, 0, len(grants))
	for _, g := range grants {
		result = append(result, dto.BoardAccessResponse{
			UserID:    g.UserID,
			Role:      g.Role,
			CreatedAt: g.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 级联删除，叶记录先于父记录，避免出现悬挂外键引用。
// 各步为独立写入，中途失败时已删除的叶记录不回滚，重试可继续推进。
func (s *boardService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Board.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("看板不存在")
		}
		return err
	}

	steps := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"任务子记录", s.repo.TaskDetail.DeleteChildrenByBoard},
		{"任务", s.repo.Task.DeleteByBoard},
		{"史诗", s.repo.Epic.DeleteByBoard},
		{"里程碑", s.repo.Milestone.DeleteByBoard},
		{"计划", s.repo.Plan.DeleteByBoard},
		{"授权", s.repo.Board.DeleteAccessByBoard},
	}
	for _, step := range steps {
		if err := step.fn(ctx, id); err != nil {
			s.logger.Error("级联删除失败",
				zap.String("board_id", id),
				zap.String("step", step.name),
				zap.Error(err))
			return err
		}
	}

	if err := s.repo.Board.Delete(ctx, id); err != nil {
		s.logger.Error("删除看板失败", zap.String("board_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toBoardResponse(board *model.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:        board.BoardID,
		Name:      board.Name,
		Slug:      board.Slug,
		OwnerID:   board.OwnerID,
		CreatedAt: board.CreatedAt.Format(time.RFC3339),
		UpdatedAt: board.UpdatedAt.Format(time.RFC3339),
	}
}
