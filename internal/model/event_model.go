package model

import (
	"time"
)

// EventModel 账本事件日志
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignAddress string    `json:"campaign_address" gorm:"index;not null"` // 众筹账本地址
	EventType       string    `json:"event_type" gorm:"not null"`             // 事件类型
	Account         string    `json:"account"`                                // 出资人或受益人地址
	Amount          int64     `json:"amount"`                                 // 涉及金额
	Data            string    `json:"data" gorm:"type:text"`                  // 事件原始内容
	EmittedAt       time.Time `json:"emitted_at" gorm:"index;not null"`       // 事件发生时间
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
