package model

import (
	"time"
)

// ContributeRecordModel 出资记录
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignAddress string `json:"campaign_address" gorm:"index;not null"` // 众筹账本地址
	Address         string `json:"address" gorm:"index;not null"`          // 出资人地址
	Amount          int64  `json:"amount" gorm:"not null"`                 // 出资金额
	Status          string `json:"status" gorm:"default:'confirmed'"`      // confirmed, refunded
}

// ContributeStatus 出资记录状态
type ContributeStatus string

const (
	ContributeStatusConfirmed ContributeStatus = "confirmed" // 在册
	ContributeStatusRefunded  ContributeStatus = "refunded"  // 已退款
)

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
