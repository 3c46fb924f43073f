package model

import (
	"time"
)

// SettlementRecordModel 结算记录，受益人提取成功后写入
type SettlementRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignAddress string    `json:"campaign_address" gorm:"uniqueIndex;not null"` // 众筹账本地址，每个众筹至多结算一次
	Beneficiary     string    `json:"beneficiary" gorm:"not null"`                  // 受益人地址
	Amount          int64     `json:"amount" gorm:"not null"`                       // 结算金额
	SettledAt       time.Time `json:"settled_at" gorm:"not null"`                   // 结算时间
}

// TableName 自定义表名
func (SettlementRecordModel) TableName() string {
	return "settlement_record"
}
