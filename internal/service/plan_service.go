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

const dateLayout = "2006-01-02"

// PlanService 计划与里程碑业务接口
type PlanService interface {
	Create(ctx context.Context, req *dto.CreatePlanRequest, createdBy string) (*dto.PlanResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListByBoard(ctx context.Context, boardID string) ([]dto.PlanResponse, error)
	Close(ctx context.Context, id string, callerID string) (*dto.PlanResponse, error)

	CreateMilestone(ctx context.Context, planID string, req *dto.CreateMilestoneRequest, createdBy string) (*dto.MilestoneResponse, error)
	ListMilestones(ctx context.Context, planID string) ([]dto.MilestoneResponse, error)
	DeleteMilestone(ctx context.Context, milestoneID string) error
}

type planService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, logger *zap.Logger) PlanService {
	return &planService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *planService) Create(ctx context.Context, req *dto.CreatePlanRequest, createdBy string) (*dto.PlanResponse, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, pkgerrors.NewValidation("start_date 格式无效")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, pkgerrors.NewValidation("end_date 格式无效")
	}
	if end.Before(start) {
		return nil, pkgerrors.NewValidation("结束日期不能早于开始日期")
	}

	if _, err := s.repo.Board.GetByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	plan := &model.Plan{
		BoardID:   req.BoardID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Status:    model.PlanStatusActive,
	}
	plan.CreatedBy = &createdBy
	plan.UpdatedBy = &createdBy

	if err := s.repo.Plan.Create(ctx, plan); err != nil {
		s.logger.Error("创建计划失败", zap.String("board_id", req.BoardID), zap.Error(err))
		return nil, err
	}

	return toPlanResponse(plan), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *planService) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	plan, err := s.repo.Plan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("计划不存在")
		}
		s.logger.Error("查询计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toPlanResponse(plan), nil
}

func (s *planService) ListByBoard(ctx context.Context, boardID string) ([]dto.PlanResponse, error) {
	if _, err := s.repo.Board.GetByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("看板不存在")
		}
		return nil, err
	}

	plans, err := s.repo.Plan.ListByBoard(ctx, boardID)
	if err != nil {
		s.logger.Error("列出计划失败", zap.String("board_id", boardID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *toPlanResponse(&plans[i]))
	}
	return result, nil
}

// ────────────────────── Close ──────────────────────

func (s *planService) Close(ctx context.Context, id string, callerID string) (*dto.PlanResponse, error) {
	plan, err := s.repo.Plan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("计划不存在")
		}
		return nil, err
	}

	if plan.Status != model.PlanStatusClosed {
		plan.Status = model.PlanStatusClosed
		plan.UpdatedBy = &callerID
		if err := s.repo.Plan.Update(ctx, plan); err != nil {
			s.logger.Error("关闭计划失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return toPlanResponse(plan), nil
}

// ────────────────────── 里程碑 ──────────────────────

func (s *planService) CreateMilestone(ctx context.Context, planID string, req *dto.CreateMilestoneRequest, createdBy string) (*dto.MilestoneResponse, error) {
	if _, err := s.repo.Plan.GetByID(ctx, planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("计划不存在")
		}
		return nil, err
	}

	milestone := &model.Milestone{
		PlanID:    planID,
		Name:      req.Name,
		CreatedBy: &createdBy,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, pkgerrors.NewValidation("due_date 格式无效")
		}
		milestone.DueDate = &due
	}

	if err := s.repo.Milestone.Create(ctx, milestone); err != nil {
		s.logger.Error("创建里程碑失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	return toMilestoneResponse(milestone), nil
}

func (s *planService) ListMilestones(ctx context.Context, planID string) ([]dto.MilestoneResponse, error) {
	if _, err := s.repo.Plan.GetByID(ctx, planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("计划不存在")
		}
		return nil, err
	}

	milestones, err := s.repo.Milestone.ListByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("列出里程碑失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		result = append(result, *toMilestoneResponse(&milestones[i]))
	}
	return result, nil
}

// DeleteMilestone 删除里程碑前先清空任务上的引用，避免悬挂外键
func (s *planService) DeleteMilestone(ctx context.Context, milestoneID string) error {
	if _, err := s.repo.Milestone.GetByID(ctx, milestoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("里程碑不存在")
		}
		return err
	}

	if err := s.repo.Task.ClearMilestone(ctx, milestoneID); err != nil {
		s.logger.Error("清空任务里程碑引用失败", zap.String("milestone_id", milestoneID), zap.Error(err))
		return err
	}
	if err := s.repo.Milestone.Delete(ctx, milestoneID); err != nil {
		s.logger.Error("删除里程碑失败", zap.String("milestone_id", milestoneID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toPlanResponse(plan *model.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:        plan.PlanID,
		BoardID:   plan.BoardID,
		Name:      plan.Name,
		StartDate: plan.StartDate.Format(dateLayout),
		EndDate:   plan.EndDate.Format(dateLayout),
		Status:    plan.Status,
		CreatedAt: plan.CreatedAt.Format(time.RFC3339),
	}
}

func toMilestoneResponse(m *model.Milestone) *dto.MilestoneResponse {
	resp := &dto.MilestoneResponse{
		ID:     m.MilestoneID,
		PlanID: m.PlanID,
		Name:   m.Name,
	}
	if m.DueDate != nil {
		resp.DueDate = m.DueDate.Format(dateLayout)
	}
	return resp
}
