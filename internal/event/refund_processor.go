package event

import (
	"fmt"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// RefundProcessor 退款事件处理器
type RefundProcessor struct {
	db              *gorm.DB
	refundLogic     *logic.RefundRecordLogic
	contributeLogic *logic.ContributeRecordLogic
}

// NewRefundProcessor 创建退款事件处理器
func NewRefundProcessor(db *gorm.DB) *RefundProcessor {
	return &RefundProcessor{
		db:              db,
		refundLogic:     logic.NewRefundRecordLogic(db),
		contributeLogic: logic.NewContributeRecordLogic(db),
	}
}

// Process 写入退款记录，标记对应出资为已退款，并扣减众筹投影金额
func (p *RefundProcessor) Process(evt ledger.Event) error {
	record := &model.RefundRecordModel{
		CampaignAddress: evt.Crowdfund.Hex(),
		Address:         evt.Account.Hex(),
		Amount:          evt.Amount,
	}
	if err := p.refundLogic.CreateRefundRecord(record); err != nil {
		return err
	}

	if err := p.contributeLogic.MarkRefunded(evt.Crowdfund.Hex(), evt.Account.Hex()); err != nil {
		return err
	}

	err := p.db.Model(&model.CampaignModel{}).
		Where("address = ?", evt.Crowdfund.Hex()).
		Update("total_raised", gorm.Expr("total_raised - ?", evt.Amount)).Error
	if err != nil {
		return fmt.Errorf("更新众筹募集金额失败: %w", err)
	}

	logger.Info("Recorded refund of %d to %s from campaign %s",
		evt.Amount, evt.Account.Hex(), evt.Crowdfund.Hex())
	return nil
}
