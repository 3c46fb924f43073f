package model

import (
	"time"
)

// CampaignModel 众筹活动模型
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 账本信息
	Address     string `json:"address" gorm:"uniqueIndex;not null"` // 账本地址
	Beneficiary string `json:"beneficiary" gorm:"not null"`         // 受益人地址
	Index       int    `json:"index" gorm:"column:idx;not null"`    // 创建序号

	// 众筹信息
	Goal        int64 `json:"goal" gorm:"not null" binding:"required,min=1"` // 目标金额
	TotalRaised int64 `json:"total_raised" gorm:"default:0"`                 // 当前募集总额

	// 时间信息
	Deadline         time.Time `json:"deadline" gorm:"not null"`
	DeadlineExtended bool      `json:"deadline_extended" gorm:"default:false"`

	// 状态
	Status CampaignStatus `json:"status" gorm:"default:'active'"`
}

// CampaignStatus 众筹状态
type CampaignStatus string

const (
	CampaignStatusActive  CampaignStatus = "active"  // 进行中
	CampaignStatusSuccess CampaignStatus = "success" // 达标，等待提取
	CampaignStatusFailed  CampaignStatus = "failed"  // 未达标，可退款
	CampaignStatusSettled CampaignStatus = "settled" // 已提取
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
