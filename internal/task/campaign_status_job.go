package task

import (
	"time"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignStatusJob 众筹状态更新任务
// 只更新数据库投影的状态标签，时间和金额门禁始终由账本核心裁决
type CampaignStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewCampaignStatusJob 创建众筹状态更新任务
func NewCampaignStatusJob(db *gorm.DB, cfg *config.Config) *CampaignStatusJob {
	return &CampaignStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_updater"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	logger.Info("Starting campaign status update task")

	now := time.Now()

	// 查找需要更新状态的众筹
	var campaigns []model.CampaignModel
	err := j.db.Where("status = ?", model.CampaignStatusActive).Find(&campaigns).Error
	if err != nil {
		logger.Error("Failed to fetch campaigns: %v", err)
		return
	}

	updatedCount := 0

	for _, campaign := range campaigns {
		var newStatus model.CampaignStatus
		shouldUpdate := false

		if now.After(campaign.Deadline) {
			if campaign.TotalRaised >= campaign.Goal {
				newStatus = model.CampaignStatusSuccess
			} else {
				newStatus = model.CampaignStatusFailed
			}
			shouldUpdate = true
		} else if campaign.TotalRaised >= campaign.Goal {
			// 提前达标，受益人可以提前提取
			newStatus = model.CampaignStatusSuccess
			shouldUpdate = true
		}

		if shouldUpdate {
			if err := j.db.Model(&campaign).Update("status", newStatus).Error; err != nil {
				logger.Error("Failed to update campaign %s status: %v", campaign.Address, err)
				continue
			}

			logger.Info("Updated campaign %s status from %s to %s",
				campaign.Address, campaign.Status, newStatus)
			updatedCount++
		}
	}

	logger.Info("Campaign status update completed. Updated %d campaigns", updatedCount)
}
