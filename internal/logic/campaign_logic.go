package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

var (
	// ErrCampaignNotFound 众筹不存在
	ErrCampaignNotFound = errors.New("众筹不存在")
	// ErrInvalidAddress 无效的地址
	ErrInvalidAddress = errors.New("无效的地址")
)

// CampaignLogic 众筹业务逻辑
// 写路径调用账本核心，读路径查询数据库投影
type CampaignLogic struct {
	db       *gorm.DB
	registry *registry.Registry
}

// NewCampaignLogic 创建众筹业务逻辑
func NewCampaignLogic(db *gorm.DB, reg *registry.Registry) *CampaignLogic {
	return &CampaignLogic{db: db, registry: reg}
}

// CreateCampaign 创建众筹
func (l *CampaignLogic) CreateCampaign(beneficiary string, goal int64, deadline time.Time) (*model.CampaignModel, error) {
	owner, err := ParseAddress(beneficiary)
	if err != nil {
		return nil, err
	}

	_, record, err := l.registry.CreateCrowdfund(owner, goal, deadline, time.Now())
	if err != nil {
		return nil, err
	}

	campaign := &model.CampaignModel{
		Address:     record.Address.Hex(),
		Beneficiary: record.Owner.Hex(),
		Index:       record.Index,
		Goal:        record.Goal,
		Deadline:    record.Deadline,
		Status:      model.CampaignStatusActive,
	}

	if err := l.db.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("创建众筹记录失败: %w", err)
	}

	return campaign, nil
}

// Contribute 出资
func (l *CampaignLogic) Contribute(address, contributor string, amount int64) error {
	cf, err := l.crowdfund(address)
	if err != nil {
		return err
	}
	caller, err := ParseAddress(contributor)
	if err != nil {
		return err
	}
	return cf.Contribute(caller, amount, time.Now())
}

// Withdraw 受益人提取
func (l *CampaignLogic) Withdraw(address, caller string) error {
	cf, err := l.crowdfund(address)
	if err != nil {
		return err
	}
	who, err := ParseAddress(caller)
	if err != nil {
		return err
	}
	return cf.Withdraw(who, time.Now())
}

// Refund 出资人退款
func (l *CampaignLogic) Refund(address, caller string) error {
	cf, err := l.crowdfund(address)
	if err != nil {
		return err
	}
	who, err := ParseAddress(caller)
	if err != nil {
		return err
	}
	return cf.Refund(who, time.Now())
}

// ExtendDeadline 受益人延长截止时间
func (l *CampaignLogic) ExtendDeadline(address, caller string, newDeadline time.Time) error {
	cf, err := l.crowdfund(address)
	if err != nil {
		return err
	}
	who, err := ParseAddress(caller)
	if err != nil {
		return err
	}
	return cf.ExtendDeadline(who, newDeadline, time.Now())
}

// GetCampaigns 获取众筹列表
func (l *CampaignLogic) GetCampaigns(status string, page, pageSize int) ([]model.CampaignModel, int64, error) {
	var campaigns []model.CampaignModel
	var total int64

	query := l.db.Model(&model.CampaignModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取众筹总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("idx ASC").Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("获取众筹列表失败: %w", err)
	}

	return campaigns, total, nil
}

// GetCampaign 获取众筹详情
func (l *CampaignLogic) GetCampaign(address string) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := l.db.Where("address = ?", address).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取众筹详情失败: %w", err)
	}
	return &campaign, nil
}

// GetCampaignByIndex 按创建序号获取众筹记录
func (l *CampaignLogic) GetCampaignByIndex(index int) (registry.Record, error) {
	return l.registry.CrowdfundAt(index)
}

// CampaignCount 已创建的众筹数量
func (l *CampaignLogic) CampaignCount() int {
	return l.registry.CrowdfundCount()
}

// GetCrowdfund 获取内存账本，用于实时查询 totalRaised、contributions 等
func (l *CampaignLogic) GetCrowdfund(address string) (*ledger.Crowdfund, error) {
	return l.crowdfund(address)
}

// GetCampaignStats 获取众筹统计信息
func (l *CampaignLogic) GetCampaignStats(address string) (map[string]interface{}, error) {
	cf, err := l.crowdfund(address)
	if err != nil {
		return nil, err
	}

	// 使用一个 SQL 查询获取出资统计
	var stats struct {
		ContributorCount  int64 `json:"contributor_count"`
		ContributionCount int64 `json:"contribution_count"`
	}
	err = l.db.Raw(`
		SELECT
			COUNT(DISTINCT address) as contributor_count,
			COUNT(*) as contribution_count
		FROM contribute_record
		WHERE campaign_address = ? AND status = ?
	`, address, string(model.ContributeStatusConfirmed)).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("获取众筹统计信息失败: %w", err)
	}

	totalRaised := cf.TotalRaised()
	goal := cf.Goal()

	// 计算完成百分比
	completionPercentage := float64(0)
	if goal > 0 {
		completionPercentage = float64(totalRaised) / float64(goal) * 100
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if deadline := cf.Deadline(); time.Now().Before(deadline) {
		remainingTime = time.Until(deadline)
	}

	return map[string]interface{}{
		"address":               address,
		"total_raised":          totalRaised,
		"goal":                  goal,
		"goal_met":              cf.IsGoalMet(),
		"completion_percentage": completionPercentage,
		"contributor_count":     stats.ContributorCount,
		"contribution_count":    stats.ContributionCount,
		"remaining_time":        remainingTime.String(),
		"deadline":              cf.Deadline(),
		"deadline_extended":     cf.DeadlineExtended(),
	}, nil
}

// Restore 服务启动时从数据库恢复内存账本
// 已结算的众筹只恢复记录不恢复余额（账本已排空，永久惰性）
func (l *CampaignLogic) Restore() error {
	var campaigns []model.CampaignModel
	if err := l.db.Order("idx ASC").Find(&campaigns).Error; err != nil {
		return fmt.Errorf("加载众筹记录失败: %w", err)
	}

	for _, campaign := range campaigns {
		record := registry.Record{
			Index:    campaign.Index,
			Address:  common.HexToAddress(campaign.Address),
			Owner:    common.HexToAddress(campaign.Beneficiary),
			Goal:     campaign.Goal,
			Deadline: campaign.Deadline,
		}
		cf := l.registry.Restore(record, campaign.DeadlineExtended)

		if campaign.Status == model.CampaignStatusSettled {
			continue
		}

		var records []model.ContributeRecordModel
		err := l.db.Where("campaign_address = ? AND status = ?",
			campaign.Address, string(model.ContributeStatusConfirmed)).Find(&records).Error
		if err != nil {
			return fmt.Errorf("加载出资记录失败: %w", err)
		}
		for _, r := range records {
			cf.LoadContribution(common.HexToAddress(r.Address), r.Amount)
		}
	}

	return nil
}

// crowdfund 按地址查找内存账本
func (l *CampaignLogic) crowdfund(address string) (*ledger.Crowdfund, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrInvalidAddress
	}
	cf, ok := l.registry.Get(common.HexToAddress(address))
	if !ok {
		return nil, ErrCampaignNotFound
	}
	return cf, nil
}

// ParseAddress 解析十六进制地址
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}
