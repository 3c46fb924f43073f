package logic

import (
	"errors"
	"fmt"

	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// SettlementRecordLogic 结算记录业务逻辑
type SettlementRecordLogic struct {
	db *gorm.DB
}

// NewSettlementRecordLogic 创建结算记录业务逻辑
func NewSettlementRecordLogic(db *gorm.DB) *SettlementRecordLogic {
	return &SettlementRecordLogic{db: db}
}

// CreateSettlementRecord 创建结算记录
// campaign_address 上有唯一索引，每个众筹至多结算一次
func (s *SettlementRecordLogic) CreateSettlementRecord(record *model.SettlementRecordModel) error {
	if record.CampaignAddress == "" {
		return errors.New("众筹地址不能为空")
	}
	if record.Beneficiary == "" {
		return errors.New("受益人地址不能为空")
	}
	if record.Amount <= 0 {
		return errors.New("结算金额必须大于0")
	}

	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建结算记录失败: %w", err)
	}

	return nil
}

// GetSettlementRecord 获取众筹的结算记录
func (s *SettlementRecordLogic) GetSettlementRecord(campaignAddress string) (*model.SettlementRecordModel, error) {
	var record model.SettlementRecordModel
	if err := s.db.Where("campaign_address = ?", campaignAddress).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("结算记录不存在")
		}
		return nil, fmt.Errorf("获取结算记录失败: %w", err)
	}
	return &record, nil
}
