package handler

import (
	"time"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// CreateCampaignRequest 创建众筹请求
type CreateCampaignRequest struct {
	Beneficiary string    `json:"beneficiary" binding:"required"`
	Goal        int64     `json:"goal" binding:"required"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Address string `json:"address" binding:"required"` // 出资人地址
	Amount  int64  `json:"amount" binding:"required"`  // 出资金额
}

// CallerRequest 仅携带调用者地址的请求（提取、退款）
type CallerRequest struct {
	Address string `json:"address" binding:"required"`
}

// ExtendDeadlineRequest 延长截止时间请求
type ExtendDeadlineRequest struct {
	Address     string    `json:"address" binding:"required"`      // 调用者地址，必须是受益人
	NewDeadline time.Time `json:"new_deadline" binding:"required"` // 新截止时间
}
