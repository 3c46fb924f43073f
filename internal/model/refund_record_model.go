package model

import (
	"time"
)

// RefundRecordModel 退款记录
type RefundRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignAddress string `json:"campaign_address" gorm:"index;not null"` // 众筹账本地址
	Address         string `json:"address" gorm:"index;not null"`          // 出资人地址
	Amount          int64  `json:"amount" gorm:"not null"`                 // 退款金额
}

// TableName 自定义表名
func (RefundRecordModel) TableName() string {
	return "refund_record"
}
