package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/registry"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 众筹处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建众筹处理器
func NewCampaignHandler(db *gorm.DB, reg *registry.Registry) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db, reg),
	}
}

// CreateCampaign 创建众筹
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 调用logic层创建众筹
	campaign, err := h.campaignLogic.CreateCampaign(req.Beneficiary, req.Goal, req.Deadline)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "众筹创建成功", campaign)
}

// GetCampaigns 获取众筹列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	campaigns, total, err := h.campaignLogic.GetCampaigns(status, page, pageSize)
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

	SuccessResponse(c, http.StatusOK, "获取众筹列表成功", gin.H{
		"campaigns":  campaigns,
		"pagination": pagination,
	})
}

// GetCampaign 获取众筹详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	address := c.Param("address")

	campaign, err := h.campaignLogic.GetCampaign(address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	// 附带内存账本的实时状态
	cf, err := h.campaignLogic.GetCrowdfund(address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取众筹详情成功", gin.H{
		"campaign":          campaign,
		"total_raised":      cf.TotalRaised(),
		"goal_met":          cf.IsGoalMet(),
		"deadline":          cf.Deadline(),
		"deadline_extended": cf.DeadlineExtended(),
	})
}

// GetCampaignStats 获取众筹统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	address := c.Param("address")

	stats, err := h.campaignLogic.GetCampaignStats(address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取众筹统计信息成功", stats)
}

// GetContribution 查询出资人的在册出资金额
func (h *CampaignHandler) GetContribution(c *gin.Context) {
	address := c.Param("address")
	contributor := c.Param("contributor")

	cf, err := h.campaignLogic.GetCrowdfund(address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}
	who, err := logic.ParseAddress(contributor)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取出资金额成功", gin.H{
		"contributor": who.Hex(),
		"amount":      cf.ContributionOf(who),
	})
}

// GetCampaignCount 已创建的众筹数量
func (h *CampaignHandler) GetCampaignCount(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取众筹数量成功", gin.H{
		"count": h.campaignLogic.CampaignCount(),
	})
}

// GetCampaignByIndex 按创建序号获取众筹记录
func (h *CampaignHandler) GetCampaignByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的序号")
		return
	}

	record, err := h.campaignLogic.GetCampaignByIndex(index)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取众筹记录成功", record)
}

// Contribute 出资
func (h *CampaignHandler) Contribute(c *gin.Context) {
	address := c.Param("address")

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.Contribute(address, req.Address, req.Amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// Withdraw 受益人提取
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	address := c.Param("address")

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.Withdraw(address, req.Address); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提取成功", nil)
}

// Refund 出资人退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	address := c.Param("address")

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.Refund(address, req.Address); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}

// ExtendDeadline 延长截止时间
func (h *CampaignHandler) ExtendDeadline(c *gin.Context) {
	address := c.Param("address")

	var req ExtendDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.ExtendDeadline(address, req.Address, req.NewDeadline); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "截止时间延长成功", nil)
}
