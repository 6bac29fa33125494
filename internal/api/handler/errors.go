package handler

import (
	"github.com/gin-gonic/gin"

	pkgerrors "opsboard/backend/pkg/errors"
	"opsboard/backend/pkg/response"
)

// moduleCodes 各模块业务错误码基数
// 约定：+1 参数校验失败，+2 实体不存在，+3 唯一性冲突
type moduleCodes struct {
	validation int
	notFound   int
	conflict   int
}

var (
	boardCodes        = moduleCodes{11001, 11002, 11003}
	planCodes         = moduleCodes{12001, 12002, 12003}
	epicCodes         = moduleCodes{13001, 13002, 13003}
	taskCodes         = moduleCodes{14001, 14002, 14003}
	attendanceCodes   = moduleCodes{15001, 15002, 15003}
	notificationCodes = moduleCodes{16001, 16002, 16003}
	userCodes         = moduleCodes{17001, 17002, 17003}
)

// handleServiceError 将业务错误分类映射为 HTTP 状态码
// 未识别的错误一律 500，细节只进日志不出响应
func handleServiceError(c *gin.Context, err error, codes moduleCodes) {
	switch {
	case pkgerrors.IsValidation(err):
		response.BadRequest(c, codes.validation, err.Error())
	case pkgerrors.IsNotFound(err):
		response.NotFound(c, codes.notFound, err.Error())
	case pkgerrors.IsConflict(err):
		response.Conflict(c, codes.conflict, err.Error())
	default:
		response.InternalError(c)
	}
}
