package handler

import (
	"errors"
	"net/http"

	"github.com/blues/edufund/internal/funding"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// EngineErrorResponse 按核心错误分类映射 HTTP 状态码
func EngineErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

// statusForError 核心错误分类到状态码
func statusForError(err error) int {
	var fe *funding.Error
	if !errors.As(err, &fe) {
		return http.StatusInternalServerError
	}
	switch fe.Kind {
	case funding.KindValidation:
		return http.StatusBadRequest
	case funding.KindUnknownCampaign:
		return http.StatusNotFound
	case funding.KindUnauthorized:
		return http.StatusForbidden
	case funding.KindCampaignEnded,
		funding.KindDeadlineNotReached,
		funding.KindAlreadyFinalized,
		funding.KindReentrancy:
		return http.StatusConflict
	case funding.KindTransferFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
