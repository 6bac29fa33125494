package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"opsboard/backend/internal/repository"
	pkgerrors "opsboard/backend/pkg/errors"
)

// ExportService 日历导出接口
// PlanICS 把计划范围、里程碑及带截止日的任务导出为 iCalendar 文本，
// 供外部日历客户端订阅。
type ExportService interface {
	PlanICS(ctx context.Context, planID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const icsProdID = "-//opsboard//plan-export//CN"

func (s *exportService) PlanICS(ctx context.Context, planID string) (string, error) {
	plan, err := s.repo.Plan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.NewNotFound("计划不存在")
		}
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProdID)

	// 计划本体作为跨越整个周期的全天事件
	planEvt := cal.AddEvent(fmt.Sprintf("plan-%s@opsboard", plan.PlanID))
	planEvt.SetSummary(plan.Name)
	planEvt.SetAllDayStartAt(plan.StartDate)
	// DTEND 为开区间，需后移一天才覆盖最后一日
	planEvt.SetAllDayEndAt(plan.EndDate.AddDate(0, 0, 1))
	planEvt.SetDtStampTime(time.Now().UTC())

	milestones, err := s.repo.Milestone.ListByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("导出时查询里程碑失败", zap.String("plan_id", planID), zap.Error(err))
		return "", err
	}
	for i := range milestones {
		m := &milestones[i]
		if m.DueDate == nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("milestone-%s@opsboard", m.MilestoneID))
		evt.SetSummary("里程碑: " + m.Name)
		evt.SetAllDayStartAt(*m.DueDate)
		evt.SetAllDayEndAt(m.DueDate.AddDate(0, 0, 1))
		evt.SetDtStampTime(time.Now().UTC())
	}

	tasks, _, err := s.repo.Task.ListWithFilters(ctx,
		&repository.TaskListFilters{PlanID: planID}, 0, 1000)
	if err != nil {
		s.logger.Error("导出时查询任务失败", zap.String("plan_id", planID), zap.Error(err))
		return "", err
	}
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("task-%s@opsboard", t.TaskID))
		evt.SetSummary(t.Title)
		if t.Description != "" {
			evt.SetDescription(t.Description)
		}
		start := *t.DueDate
		if t.StartDate != nil {
			start = *t.StartDate
		}
		evt.SetAllDayStartAt(start)
		evt.SetAllDayEndAt(t.DueDate.AddDate(0, 0, 1))
		evt.SetDtStampTime(time.Now().UTC())
	}

	return cal.Serialize(), nil
}
