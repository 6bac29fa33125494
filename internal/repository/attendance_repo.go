package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error)
	CloseRecord(ctx context.Context, recordID string, checkOut time.Time, source string) (int64, error)
	CountOpenBefore(ctx context.Context, dayStart time.Time) (int64, error)
	CloseOpenBefore(ctx context.Context, dayStart, cutoff time.Time) (int64, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND work_date = ?", userID, workDate.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND work_date >= ? AND work_date <= ?",
			userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("work_date DESC").
		Find(&records).Error
	return records, err
}

// CloseRecord 用户主动签退
// WHERE 限定 check_out_time IS NULL，与对账任务并发时最多一方生效
func (r *attendanceRepo) CloseRecord(ctx context.Context, recordID string, checkOut time.Time, source string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("record_id = ? AND check_out_time IS NULL", recordID).
		Updates(map[string]interface{}{
			"check_out_time":   checkOut,
			"check_out_source": source,
			"updated_at":       time.Now(),
		})
	return result.RowsAffected, result.Error
}

// CountOpenBefore 统计签入时刻早于当日零点且未签退的记录数（对账候选集）
func (r *attendanceRepo) CountOpenBefore(ctx context.Context, dayStart time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("check_out_time IS NULL AND check_in_time < ?", dayStart).
		Count(&count).Error
	return count, err
}

// CloseOpenBefore 批量补签退
// WHERE 条件与候选集一致：任何并发的主动签退会让该行退出候选集，不会被二次覆写
func (r *attendanceRepo) CloseOpenBefore(ctx context.Context, dayStart, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("check_out_time IS NULL AND check_in_time < ?", dayStart).
		Updates(map[string]interface{}{
			"check_out_time":   cutoff,
			"check_out_source": model.CheckOutSourceSystem,
			"status":           model.AttendanceStatusPresent,
			"updated_at":       time.Now(),
		})
	return result.RowsAffected, result.Error
}
