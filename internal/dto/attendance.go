package dto

// ── 考勤模块 DTO ──

// AttendanceListRequest 考勤记录查询参数
type AttendanceListRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceRecordResponse 考勤记录响应
type AttendanceRecordResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	WorkDate       string `json:"work_date"`
	CheckInTime    string `json:"check_in_time"`
	CheckOutTime   string `json:"check_out_time,omitempty"`
	CheckOutSource string `json:"check_out_source,omitempty"`
	Status         string `json:"status"`
}

// ReconcileResponse 对账任务执行结果响应
type ReconcileResponse struct {
	Candidates int64 `json:"candidates"`
	Closed     int64 `json:"closed"`
}
