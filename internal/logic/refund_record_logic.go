package logic

import (
	"errors"
	"fmt"

	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// RefundRecordLogic 退款记录业务逻辑
type RefundRecordLogic struct {
	db *gorm.DB
}

// NewRefundRecordLogic 创建退款记录业务逻辑
func NewRefundRecordLogic(db *gorm.DB) *RefundRecordLogic {
	return &RefundRecordLogic{db: db}
}

// CreateRefundRecord 创建退款记录
func (r *RefundRecordLogic) CreateRefundRecord(record *model.RefundRecordModel) error {
	if record.CampaignAddress == "" {
		return errors.New("众筹地址不能为空")
	}
	if record.Address == "" {
		return errors.New("出资人地址不能为空")
	}
	if record.Amount <= 0 {
		return errors.New("退款金额必须大于0")
	}

	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建退款记录失败: %w", err)
	}

	return nil
}

// GetCampaignRefundRecords 获取众筹的退款记录
func (r *RefundRecordLogic) GetCampaignRefundRecords(campaignAddress string, page, pageSize int) ([]model.RefundRecordModel, int64, error) {
	var records []model.RefundRecordModel
	var total int64

	query := r.db.Model(&model.RefundRecordModel{}).Where("campaign_address = ?", campaignAddress)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录失败: %w", err)
	}

	return records, total, nil
}
