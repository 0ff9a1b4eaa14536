// file: utils/response.go
package utils

import (
	"log/slog"
	"net/http"

	"vibebuild/apperrors"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

// 业务错误分类到响应码的映射；5000 留给基础设施故障
const (
	codeValidation    = 1001
	codeStateConflict = 3001
	codePermission    = 4003
	codeNotFound      = 4004
	codeInternal      = 5000
)

// FromError 按错误分类返回统一错误响应，非业务错误记日志并归为 5000
func FromError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.Validation:
		Error(c, codeValidation, err.Error())
	case apperrors.StateConflict:
		Error(c, codeStateConflict, err.Error())
	case apperrors.Permission:
		Error(c, codePermission, err.Error())
	case apperrors.NotFound:
		Error(c, codeNotFound, err.Error())
	default:
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		Error(c, codeInternal, "服务器内部错误")
	}
}
