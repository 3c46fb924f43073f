package logic

import (
	"errors"
	"fmt"

	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// ContributeRecordLogic 出资记录业务逻辑
type ContributeRecordLogic struct {
	db *gorm.DB
}

// NewContributeRecordLogic 创建出资记录业务逻辑
func NewContributeRecordLogic(db *gorm.DB) *ContributeRecordLogic {
	return &ContributeRecordLogic{db: db}
}

// CreateContributeRecord 创建出资记录
func (c *ContributeRecordLogic) CreateContributeRecord(record *model.ContributeRecordModel) error {
	if err := c.validateContributeRecord(record); err != nil {
		return err
	}

	if record.Status == "" {
		record.Status = string(model.ContributeStatusConfirmed)
	}

	if err := c.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建出资记录失败: %w", err)
	}

	return nil
}

// GetCampaignContributeRecords 获取众筹的出资记录
func (c *ContributeRecordLogic) GetCampaignContributeRecords(campaignAddress string, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var records []model.ContributeRecordModel
	var total int64

	query := c.db.Model(&model.ContributeRecordModel{}).Where("campaign_address = ?", campaignAddress)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取出资记录总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取出资记录失败: %w", err)
	}

	return records, total, nil
}

// MarkRefunded 将出资人在某众筹下的全部在册出资标记为已退款
func (c *ContributeRecordLogic) MarkRefunded(campaignAddress, address string) error {
	err := c.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_address = ? AND address = ? AND status = ?",
			campaignAddress, address, string(model.ContributeStatusConfirmed)).
		Update("status", string(model.ContributeStatusRefunded)).Error
	if err != nil {
		return fmt.Errorf("更新出资记录状态失败: %w", err)
	}
	return nil
}

// GetContributeStats 获取众筹的出资统计信息
func (c *ContributeRecordLogic) GetContributeStats(campaignAddress string) (map[string]interface{}, error) {
	var stats struct {
		TotalAmount       int64 `json:"total_amount"`
		ContributorCount  int64 `json:"contributor_count"`
		ContributionCount int64 `json:"contribution_count"`
	}

	err := c.db.Raw(`
		SELECT
			COALESCE(SUM(amount), 0) as total_amount,
			COUNT(DISTINCT address) as contributor_count,
			COUNT(*) as contribution_count
		FROM contribute_record
		WHERE campaign_address = ? AND status = ?
	`, campaignAddress, string(model.ContributeStatusConfirmed)).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("获取出资统计信息失败: %w", err)
	}

	return map[string]interface{}{
		"total_amount":       stats.TotalAmount,
		"contributor_count":  stats.ContributorCount,
		"contribution_count": stats.ContributionCount,
	}, nil
}

// validateContributeRecord 验证出资记录数据
func (c *ContributeRecordLogic) validateContributeRecord(record *model.ContributeRecordModel) error {
	if record.CampaignAddress == "" {
		return errors.New("众筹地址不能为空")
	}
	if record.Address == "" {
		return errors.New("出资人地址不能为空")
	}
	if record.Amount <= 0 {
		return errors.New("出资金额必须大于0")
	}
	return nil
}
