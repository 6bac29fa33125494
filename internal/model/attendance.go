package model

import "time"

// 考勤签退来源
const (
	CheckOutSourceManual = "MANUAL"      // 用户主动签退
	CheckOutSourceSystem = "SYSTEM_AUTO" // 对账任务补签退
)

// 考勤状态
const (
	AttendanceStatusPresent = "PRESENT"
)

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// 每位用户每个日历日至多一条记录；对账任务完成后，
// 不存在 check_out_time 为空且 check_in_time 早于当日零点的记录
type AttendanceRecord struct {
	RecordID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"record_id"`
	UserID         string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_user_date" json:"user_id"`
	WorkDate       time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_user_date" json:"work_date"`
	CheckInTime    time.Time  `gorm:"not null"                                            json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	CheckOutSource *string    `gorm:"type:varchar(20)"                                    json:"check_out_source,omitempty"` // MANUAL | SYSTEM_AUTO
	Status         string     `gorm:"type:varchar(20);not null;default:'PRESENT'"         json:"status"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"updated_at"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }
