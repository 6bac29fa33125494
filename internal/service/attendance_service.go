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

// AttendanceService 考勤业务接口
// Reconcile 为每日对账任务：将签入时刻早于当日零点且未签退的记录批量补签退，
// 补签退时刻取所属工作日的最后一毫秒，来源标记为 SYSTEM_AUTO。重复执行是 no-op。
type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (*dto.AttendanceRecordResponse, error)
	CheckOut(ctx context.Context, userID string) (*dto.AttendanceRecordResponse, error)
	List(ctx context.Context, userID string, req *dto.AttendanceListRequest) ([]dto.AttendanceRecordResponse, error)
	Reconcile(ctx context.Context, now time.Time) (*dto.ReconcileResponse, error)
	// RunScheduledReconcile 定时器入口：吞掉错误，只记日志，下一个触发日自然重试
	RunScheduledReconcile()
}

type attendanceService struct {
	repo     *repository.Repository
	location *time.Location
	logger   *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
// location 为考勤归属时区，工作日边界按该时区计算
func NewAttendanceService(repo *repository.Repository, location *time.Location, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, location: location, logger: logger}
}

// ────────────────────── 签到 / 签退 ──────────────────────

func (s *attendanceService) CheckIn(ctx context.Context, userID string) (*dto.AttendanceRecordResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("用户不存在")
		}
		return nil, err
	}

	now := time.Now().In(s.location)
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	record := &model.AttendanceRecord{
		UserID:      userID,
		WorkDate:    workDate,
		CheckInTime: now,
		Status:      model.AttendanceStatusPresent,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		// (user, work_date) 唯一约束：当日已签到
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.NewConflict("今日已签到")
		}
		s.logger.Error("创建考勤记录失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(record), nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID string) (*dto.AttendanceRecordResponse, error) {
	now := time.Now().In(s.location)
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	record, err := s.repo.Attendance.GetByUserAndDate(ctx, userID, workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("今日尚未签到")
		}
		return nil, err
	}

	rows, err := s.repo.Attendance.CloseRecord(ctx, record.RecordID, now, model.CheckOutSourceManual)
	if err != nil {
		s.logger.Error("签退失败", zap.String("record_id", record.RecordID), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, pkgerrors.NewConflict("今日已签退")
	}

	record.CheckOutTime = &now
	source := model.CheckOutSourceManual
	record.CheckOutSource = &source
	return toAttendanceResponse(record), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *attendanceService) List(ctx context.Context, userID string, req *dto.AttendanceListRequest) ([]dto.AttendanceRecordResponse, error) {
	now := time.Now().In(s.location)
	// 默认查询最近 31 天
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)

	var err error
	if req.From != "" {
		if from, err = time.Parse(dateLayout, req.From); err != nil {
			return nil, pkgerrors.NewValidation("from 格式无效")
		}
	}
	if req.To != "" {
		if to, err = time.Parse(dateLayout, req.To); err != nil {
			return nil, pkgerrors.NewValidation("to 格式无效")
		}
	}
	if to.Before(from) {
		return nil, pkgerrors.NewValidation("to 不能早于 from")
	}

	records, err := s.repo.Attendance.ListByUser(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *toAttendanceResponse(&records[i]))
	}
	return result, nil
}

// ────────────────────── 对账 ──────────────────────

// Reconcile 执行一次考勤对账
// 候选集与批量补签退用同一个 WHERE 条件限定，重复执行第二次影响 0 行
func (s *attendanceService) Reconcile(ctx context.Context, now time.Time) (*dto.ReconcileResponse, error) {
	local := now.In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	// 补签退时刻 = 当日零点前 1 毫秒，即所属工作日的 23:59:59.999
	cutoff := dayStart.Add(-time.Millisecond)

	candidates, err := s.repo.Attendance.CountOpenBefore(ctx, dayStart)
	if err != nil {
		s.logger.Error("统计对账候选集失败", zap.Error(err))
		return nil, pkgerrors.NewScheduler("统计对账候选集失败", err)
	}

	closed, err := s.repo.Attendance.CloseOpenBefore(ctx, dayStart, cutoff)
	if err != nil {
		s.logger.Error("批量补签退失败", zap.Int64("candidates", candidates), zap.Error(err))
		return nil, pkgerrors.NewScheduler("批量补签退失败", err)
	}

	s.logger.Info("考勤对账完成",
		zap.Time("day_start", dayStart),
		zap.Int64("candidates", candidates),
		zap.Int64("closed", closed))

	return &dto.ReconcileResponse{Candidates: candidates, Closed: closed}, nil
}

func (s *attendanceService) RunScheduledReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.Reconcile(ctx, time.Now()); err != nil {
		s.logger.Error("定时考勤对账失败", zap.Error(err))
	}
}

// ── 内部辅助方法 ──

func toAttendanceResponse(r *model.AttendanceRecord) *dto.AttendanceRecordResponse {
	resp := &dto.AttendanceRecordResponse{
		ID:          r.RecordID,
		UserID:      r.UserID,
		WorkDate:    r.WorkDate.Format(dateLayout),
		CheckInTime: r.CheckInTime.Format(time.RFC3339),
		Status:      r.Status,
	}
	if r.CheckOutTime != nil {
		resp.CheckOutTime = r.CheckOutTime.Format(time.RFC3339)
	}
	if r.CheckOutSource != nil {
		resp.CheckOutSource = *r.CheckOutSource
	}
	return resp
}
