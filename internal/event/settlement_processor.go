package event

import (
	"fmt"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// SettlementProcessor 结算事件处理器，受益人提取成功后触发
type SettlementProcessor struct {
	db              *gorm.DB
	settlementLogic *logic.SettlementRecordLogic
}

// NewSettlementProcessor 创建结算事件处理器
func NewSettlementProcessor(db *gorm.DB) *SettlementProcessor {
	return &SettlementProcessor{
		db:              db,
		settlementLogic: logic.NewSettlementRecordLogic(db),
	}
}

// Process 写入结算记录并将众筹标记为已结算
func (p *SettlementProcessor) Process(evt ledger.Event) error {
	record := &model.SettlementRecordModel{
		CampaignAddress: evt.Crowdfund.Hex(),
		Beneficiary:     evt.Account.Hex(),
		Amount:          evt.Amount,
		SettledAt:       evt.EmittedAt,
	}
	if err := p.settlementLogic.CreateSettlementRecord(record); err != nil {
		return err
	}

	err := p.db.Model(&model.CampaignModel{}).
		Where("address = ?", evt.Crowdfund.Hex()).
		Update("status", model.CampaignStatusSettled).Error
	if err != nil {
		return fmt.Errorf("更新众筹状态失败: %w", err)
	}

	logger.Info("Recorded settlement of %d to beneficiary %s for campaign %s",
		evt.Amount, evt.Account.Hex(), evt.Crowdfund.Hex())
	return nil
}
