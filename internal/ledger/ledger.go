package ledger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blues/cfl/internal/treasury"
	"github.com/ethereum/go-ethereum/common"
)

// MinContribution 最低出资限额（最小单位）
// 策略常量：金额必须大于0，部署方如需更高门槛只改这一处
const MinContribution int64 = 1

// Crowdfund 单个众筹活动的托管账本
// 所有出资状态由账本独占管理，资金存放在托管账户中，
// 账户余额除出账转账瞬间外始终等于 totalRaised
type Crowdfund struct {
	addr        common.Address
	beneficiary common.Address
	goal        int64
	treasury    treasury.Treasury
	sink        Sink

	// guard 重入保护标志，Withdraw/Refund 进入时置位，退出时清除
	guard atomic.Bool

	mu               sync.Mutex
	deadline         time.Time
	deadlineExtended bool
	totalRaised      int64
	contributions    map[common.Address]int64
}

// New 创建众筹账本
// goal 必须大于0，deadline 必须晚于 now，beneficiary 不能为空地址
func New(addr, beneficiary common.Address, goal int64, deadline, now time.Time, t treasury.Treasury, sink Sink) (*Crowdfund, error) {
	if goal <= 0 {
		return nil, ErrInvalidGoal
	}
	if !deadline.After(now) {
		return nil, ErrInvalidDeadline
	}
	if beneficiary == (common.Address{}) {
		return nil, ErrInvalidBeneficiary
	}

	return &Crowdfund{
		addr:          addr,
		beneficiary:   beneficiary,
		goal:          goal,
		deadline:      deadline,
		treasury:      t,
		sink:          sink,
		contributions: make(map[common.Address]int64),
	}, nil
}

// Contribute 出资
// 截止时间之后不再接受出资，同一出资人多次出资金额累加
func (c *Crowdfund) Contribute(caller common.Address, amount int64, now time.Time) error {
	c.mu.Lock()
	if !now.Before(c.deadline) {
		c.mu.Unlock()
		return ErrCampaignEnded
	}
	if amount < MinContribution {
		c.mu.Unlock()
		return ErrContributionTooSmall
	}

	c.contributions[caller] += amount
	c.totalRaised += amount
	c.treasury.Deposit(c.addr, amount)
	c.mu.Unlock()

	emit(c.sink, Event{
		Type:      EventContributed,
		Crowdfund: c.addr,
		Account:   caller,
		Amount:    amount,
	})
	return nil
}

// Withdraw 受益人提取全部募集资金
// 仅在达到目标金额后允许提取（提前达标可提前提取，否则须等到截止时间）。
// 转账是最后一个效果，转账失败时整体回滚，不留下任何部分状态
func (c *Crowdfund) Withdraw(caller common.Address, now time.Time) error {
	if !c.guard.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer c.guard.Store(false)

	c.mu.Lock()
	if caller != c.beneficiary {
		c.mu.Unlock()
		return ErrUnauthorized
	}
	if c.totalRaised < c.goal {
		stillOpen := now.Before(c.deadline)
		c.mu.Unlock()
		if stillOpen {
			return ErrStillOngoing
		}
		return ErrGoalNotMet
	}

	amount := c.totalRaised
	c.totalRaised = 0
	c.mu.Unlock()

	if err := c.treasury.Transfer(c.addr, c.beneficiary, amount); err != nil {
		c.mu.Lock()
		c.totalRaised += amount
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	emit(c.sink, Event{
		Type:      EventWithdrawn,
		Crowdfund: c.addr,
		Account:   c.beneficiary,
		Amount:    amount,
	})
	return nil
}

// Refund 出资人取回自己的出资
// 仅在截止时间之后且未达到目标金额时允许退款。
// 先清零出资记录再转账，转账失败时连同清零一起回滚，不会抹掉出资人的债权
func (c *Crowdfund) Refund(caller common.Address, now time.Time) error {
	if !c.guard.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer c.guard.Store(false)

	c.mu.Lock()
	if now.Before(c.deadline) {
		c.mu.Unlock()
		return ErrStillOngoing
	}
	if c.totalRaised >= c.goal {
		c.mu.Unlock()
		return ErrGoalMet
	}
	amount := c.contributions[caller]
	if amount < MinContribution {
		c.mu.Unlock()
		return ErrNothingToRefund
	}

	c.contributions[caller] = 0
	c.totalRaised -= amount
	c.mu.Unlock()

	if err := c.treasury.Transfer(c.addr, caller, amount); err != nil {
		c.mu.Lock()
		c.contributions[caller] += amount
		c.totalRaised += amount
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	emit(c.sink, Event{
		Type:      EventRefunded,
		Crowdfund: c.addr,
		Account:   caller,
		Amount:    amount,
	})
	return nil
}

// ExtendDeadline 受益人延长截止时间
// 新截止时间必须晚于当前截止时间，每个众筹生命周期内只允许延长一次
func (c *Crowdfund) ExtendDeadline(caller common.Address, newDeadline, now time.Time) error {
	c.mu.Lock()
	if caller != c.beneficiary {
		c.mu.Unlock()
		return ErrUnauthorized
	}
	if !now.Before(c.deadline) {
		c.mu.Unlock()
		return ErrCampaignEnded
	}
	if !newDeadline.After(c.deadline) {
		c.mu.Unlock()
		return ErrInvalidDeadline
	}
	if c.deadlineExtended {
		c.mu.Unlock()
		return ErrAlreadyExtended
	}

	c.deadline = newDeadline
	c.deadlineExtended = true
	c.mu.Unlock()

	emit(c.sink, Event{
		Type:      EventDeadlineExtended,
		Crowdfund: c.addr,
		Account:   caller,
		Deadline:  newDeadline,
	})
	return nil
}

// IsGoalMet 是否已达到目标金额，纯查询，无副作用
func (c *Crowdfund) IsGoalMet() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRaised >= c.goal
}

// Address 账本地址
func (c *Crowdfund) Address() common.Address {
	return c.addr
}

// Beneficiary 受益人地址
func (c *Crowdfund) Beneficiary() common.Address {
	return c.beneficiary
}

// Goal 目标金额
func (c *Crowdfund) Goal() int64 {
	return c.goal
}

// Deadline 当前截止时间
func (c *Crowdfund) Deadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}

// DeadlineExtended 截止时间是否已延长过
func (c *Crowdfund) DeadlineExtended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadlineExtended
}

// TotalRaised 当前募集总额
func (c *Crowdfund) TotalRaised() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRaised
}

// ContributionOf 查询出资人的在册出资金额
func (c *Crowdfund) ContributionOf(contributor common.Address) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contributions[contributor]
}

// Restore 从持久化记录恢复账本，跳过创建时的时间校验
// 仅在服务启动恢复阶段使用
func Restore(addr, beneficiary common.Address, goal int64, deadline time.Time, extended bool, t treasury.Treasury, sink Sink) *Crowdfund {
	return &Crowdfund{
		addr:             addr,
		beneficiary:      beneficiary,
		goal:             goal,
		deadline:         deadline,
		deadlineExtended: extended,
		treasury:         t,
		sink:             sink,
		contributions:    make(map[common.Address]int64),
	}
}

// LoadContribution 恢复一笔在册出资，并向托管账户补记余额
// 仅在服务启动恢复阶段使用
func (c *Crowdfund) LoadContribution(contributor common.Address, amount int64) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contributions[contributor] += amount
	c.totalRaised += amount
	c.treasury.Deposit(c.addr, amount)
}
