package errors

import "errors"

// 业务错误分类：各 Service 返回这四类错误之一（或包装后的底层错误），
// Handler 层据此映射为 HTTP 状态码。

// ValidationError 输入不合法或层级结构不一致（如日期区间颠倒、史诗与看板不匹配）
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation 构造 ValidationError
func NewValidation(msg string) error { return &ValidationError{Msg: msg} }

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NewNotFound 构造 NotFoundError
func NewNotFound(msg string) error { return &NotFoundError{Msg: msg} }

// ConflictError 唯一性冲突（slug 重试达到上限等）
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NewConflict 构造 ConflictError
func NewConflict(msg string) error { return &ConflictError{Msg: msg} }

// SchedulerError 定时任务单次执行中的瞬时失败，不向请求方传播
type SchedulerError struct {
	Msg string
	Err error
}

func (e *SchedulerError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *SchedulerError) Unwrap() error { return e.Err }

// NewScheduler 构造 SchedulerError
func NewScheduler(msg string, err error) error { return &SchedulerError{Msg: msg, Err: err} }

// ── 分类判断 ──

// IsValidation 判断是否为 ValidationError
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound 判断是否为 NotFoundError
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict 判断是否为 ConflictError
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
