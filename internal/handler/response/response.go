package response

import (
	"net/http"

	"savings-core/pkg/errno"
	"savings-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response defines the standard JSON structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error returns an error response
// 业务错误统一返回 HTTP 200，由 code 区分；未识别的错误记录日志且不把内部信息返回给调用方
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	if code == errno.InternalServerError.Code {
		logger.Error("未处理的错误",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		msg = errno.InternalServerError.Message
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: msg,
		Data:    gin.H{},
	})
}
