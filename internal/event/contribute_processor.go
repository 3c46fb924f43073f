package event

import (
	"fmt"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// ContributeProcessor 出资事件处理器
type ContributeProcessor struct {
	db              *gorm.DB
	contributeLogic *logic.ContributeRecordLogic
}

// NewContributeProcessor 创建出资事件处理器
func NewContributeProcessor(db *gorm.DB) *ContributeProcessor {
	return &ContributeProcessor{
		db:              db,
		contributeLogic: logic.NewContributeRecordLogic(db),
	}
}

// Process 写入出资记录并累加众筹投影金额
func (p *ContributeProcessor) Process(evt ledger.Event) error {
	record := &model.ContributeRecordModel{
		CampaignAddress: evt.Crowdfund.Hex(),
		Address:         evt.Account.Hex(),
		Amount:          evt.Amount,
		Status:          string(model.ContributeStatusConfirmed),
	}
	if err := p.contributeLogic.CreateContributeRecord(record); err != nil {
		return err
	}

	err := p.db.Model(&model.CampaignModel{}).
		Where("address = ?", evt.Crowdfund.Hex()).
		Update("total_raised", gorm.Expr("total_raised + ?", evt.Amount)).Error
	if err != nil {
		return fmt.Errorf("更新众筹募集金额失败: %w", err)
	}

	logger.Info("Recorded contribution of %d from %s to campaign %s",
		evt.Amount, evt.Account.Hex(), evt.Crowdfund.Hex())
	return nil
}
