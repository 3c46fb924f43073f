package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/registry"
	"github.com/gin-gonic/gin"
)

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

// LedgerErrorResponse 按账本错误类型映射HTTP状态码
func LedgerErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

// statusForError 账本错误到HTTP状态码的映射
func statusForError(err error) int {
	switch {
	case errors.Is(err, logic.ErrInvalidAddress),
		errors.Is(err, ledger.ErrInvalidGoal),
		errors.Is(err, ledger.ErrInvalidDeadline),
		errors.Is(err, ledger.ErrInvalidBeneficiary),
		errors.Is(err, ledger.ErrContributionTooSmall):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrCampaignNotFound),
		errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrCampaignEnded),
		errors.Is(err, ledger.ErrStillOngoing),
		errors.Is(err, ledger.ErrGoalMet),
		errors.Is(err, ledger.ErrGoalNotMet),
		errors.Is(err, ledger.ErrNothingToRefund),
		errors.Is(err, ledger.ErrAlreadyExtended),
		errors.Is(err, ledger.ErrReentrantCall):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTransferFailed),
		errors.Is(err, ledger.ErrRefundFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
