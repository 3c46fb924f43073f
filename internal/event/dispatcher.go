package event

import (
	"encoding/json"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Processor 事件处理器
type Processor interface {
	Process(evt ledger.Event) error
}

// Dispatcher 账本事件分发器
// 实现 ledger.Sink，事件在协程池中落库并分发给对应的处理器
type Dispatcher struct {
	pool       *ants.Pool
	eventLogic *logic.EventLogic
	processors map[ledger.EventType]Processor
}

// NewDispatcher 创建事件分发器
func NewDispatcher(db *gorm.DB, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		pool:       pool,
		eventLogic: logic.NewEventLogic(db),
		processors: map[ledger.EventType]Processor{
			ledger.EventContributed:      NewContributeProcessor(db),
			ledger.EventRefunded:         NewRefundProcessor(db),
			ledger.EventWithdrawn:        NewSettlementProcessor(db),
			ledger.EventDeadlineExtended: NewCampaignProcessor(db),
		},
	}, nil
}

// Emit 接收账本事件并提交到协程池处理
func (d *Dispatcher) Emit(evt ledger.Event) {
	if err := d.pool.Submit(func() { d.handle(evt) }); err != nil {
		logger.Error("Failed to submit event %s to pool: %v", evt.Type, err)
	}
}

// handle 落库事件日志并路由到处理器
func (d *Dispatcher) handle(evt ledger.Event) {
	data, _ := json.Marshal(evt)
	record := &model.EventModel{
		CampaignAddress: evt.Crowdfund.Hex(),
		EventType:       string(evt.Type),
		Account:         evt.Account.Hex(),
		Amount:          evt.Amount,
		Data:            string(data),
		EmittedAt:       evt.EmittedAt,
	}
	if err := d.eventLogic.CreateEvent(record); err != nil {
		logger.Error("Failed to persist event %s for campaign %s: %v",
			evt.Type, evt.Crowdfund.Hex(), err)
	}

	processor, ok := d.processors[evt.Type]
	if !ok {
		return
	}
	if err := processor.Process(evt); err != nil {
		logger.Error("Failed to process event %s for campaign %s: %v",
			evt.Type, evt.Crowdfund.Hex(), err)
	}
}

// Close 释放协程池
func (d *Dispatcher) Close() {
	d.pool.Release()
}
