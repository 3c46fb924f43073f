package event

import (
	"fmt"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// CampaignProcessor 众筹事件处理器，处理截止时间延长事件
type CampaignProcessor struct {
	db *gorm.DB
}

// NewCampaignProcessor 创建众筹事件处理器
func NewCampaignProcessor(db *gorm.DB) *CampaignProcessor {
	return &CampaignProcessor{db: db}
}

// Process 更新众筹投影的截止时间和延长标志
func (p *CampaignProcessor) Process(evt ledger.Event) error {
	err := p.db.Model(&model.CampaignModel{}).
		Where("address = ?", evt.Crowdfund.Hex()).
		Updates(map[string]interface{}{
			"deadline":          evt.Deadline,
			"deadline_extended": true,
		}).Error
	if err != nil {
		return fmt.Errorf("更新众筹截止时间失败: %w", err)
	}

	logger.Info("Recorded deadline extension for campaign %s to %s",
		evt.Crowdfund.Hex(), evt.Deadline)
	return nil
}
