package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/logic"
	"github.com/gin-gonic/gin"
)

// ContributeRecordHandler 出资记录处理器
type ContributeRecordHandler struct {
	contributeLogic *logic.ContributeRecordLogic
}

// NewContributeRecordHandler 创建出资记录处理器
func NewContributeRecordHandler(contributeLogic *logic.ContributeRecordLogic) *ContributeRecordHandler {
	return &ContributeRecordHandler{
		contributeLogic: contributeLogic,
	}
}

// GetCampaignContributeRecords 获取众筹的出资记录
func (h *ContributeRecordHandler) GetCampaignContributeRecords(c *gin.Context) {
	address := c.Param("address")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.contributeLogic.GetCampaignContributeRecords(address, page, pageSize)
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

	SuccessResponse(c, http.StatusOK, "获取出资记录成功", gin.H{
		"records":    records,
		"pagination": pagination,
	})
}

// GetContributeStats 获取众筹的出资统计信息
func (h *ContributeRecordHandler) GetContributeStats(c *gin.Context) {
	address := c.Param("address")

	stats, err := h.contributeLogic.GetContributeStats(address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取出资统计信息成功", stats)
}
