package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType 事件类型
type EventType string

const (
	EventCrowdfundCreated EventType = "CrowdfundCreated" // 众筹创建
	EventContributed      EventType = "Contributed"      // 出资
	EventWithdrawn        EventType = "Withdrawn"        // 受益人提取
	EventRefunded         EventType = "Refunded"         // 出资人退款
	EventDeadlineExtended EventType = "DeadlineExtended" // 截止时间延长
)

// Event 账本事件
type Event struct {
	Type      EventType      `json:"type"`
	Crowdfund common.Address `json:"crowdfund"`          // 众筹账本地址
	Account   common.Address `json:"account"`            // 出资人或受益人
	Amount    int64          `json:"amount"`             // 涉及金额
	Deadline  time.Time      `json:"deadline,omitempty"` // 创建或延长后的截止时间
	Goal      int64          `json:"goal,omitempty"`     // 创建时的目标金额
	EmittedAt time.Time      `json:"emitted_at"`
}

// Sink 事件接收器
type Sink interface {
	Emit(event Event)
}

// emit 向接收器发送事件，接收器可以为空
func emit(sink Sink, event Event) {
	if sink == nil {
		return
	}
	event.EmittedAt = time.Now()
	sink.Emit(event)
}
