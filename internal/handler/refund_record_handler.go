package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/logic"
	"github.com/gin-gonic/gin"
)

// RefundRecordHandler 退款记录处理器
type RefundRecordHandler struct {
	refundLogic *logic.RefundRecordLogic
}

// NewRefundRecordHandler 创建退款记录处理器
func NewRefundRecordHandler(refundLogic *logic.RefundRecordLogic) *RefundRecordHandler {
	return &RefundRecordHandler{
		refundLogic: refundLogic,
	}
}

// GetCampaignRefundRecords 获取众筹的退款记录
func (h *RefundRecordHandler) GetCampaignRefundRecords(c *gin.Context) {
	address := c.Param("address")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.refundLogic.GetCampaignRefundRecords(address, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取退款记录成功", gin.H{
		"records":    records,
		"pagination": pagination,
	})
}
