package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/blues/cfl/internal/treasury"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	fundAddr    = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	beneficiary = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	alice       = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	bob         = common.HexToAddress("0x0000000000000000000000000000000000000a02")

	baseTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day      = 24 * time.Hour
)

// collectSink 收集事件用于断言
type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) Emit(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *collectSink) byType(t EventType) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, evt := range s.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

func newTestFund(t *testing.T, goal int64, deadline time.Time) (*Crowdfund, *treasury.Vault, *collectSink) {
	t.Helper()
	vault := treasury.NewVault()
	sink := &collectSink{}
	cf, err := New(fundAddr, beneficiary, goal, deadline, baseTime, vault, sink)
	require.NoError(t, err)
	return cf, vault, sink
}

func TestNewValidation(t *testing.T) {
	vault := treasury.NewVault()
	deadline := baseTime.Add(30 * day)

	_, err := New(fundAddr, beneficiary, 0, deadline, baseTime, vault, nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	_, err = New(fundAddr, beneficiary, -5, deadline, baseTime, vault, nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	_, err = New(fundAddr, beneficiary, 10, baseTime, baseTime, vault, nil)
	require.ErrorIs(t, err, ErrInvalidDeadline)

	_, err = New(fundAddr, beneficiary, 10, baseTime.Add(-time.Hour), baseTime, vault, nil)
	require.ErrorIs(t, err, ErrInvalidDeadline)

	_, err = New(fundAddr, common.Address{}, 10, deadline, baseTime, vault, nil)
	require.ErrorIs(t, err, ErrInvalidBeneficiary)

	cf, err := New(fundAddr, beneficiary, 10, deadline, baseTime, vault, nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), cf.TotalRaised())
	require.False(t, cf.DeadlineExtended())
}

func TestContributeAccumulates(t *testing.T) {
	cf, vault, sink := newTestFund(t, 100, baseTime.Add(30*day))

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))
	require.NoError(t, cf.Contribute(bob, 20, baseTime.Add(2*day)))
	require.NoError(t, cf.Contribute(alice, 5, baseTime.Add(3*day)))

	require.Equal(t, int64(35), cf.TotalRaised())
	require.Equal(t, int64(15), cf.ContributionOf(alice))
	require.Equal(t, int64(20), cf.ContributionOf(bob))
	// 募集总额等于各出资之和，托管余额与募集总额一致
	require.Equal(t, cf.ContributionOf(alice)+cf.ContributionOf(bob), cf.TotalRaised())
	require.Equal(t, cf.TotalRaised(), vault.BalanceOf(fundAddr))

	events := sink.byType(EventContributed)
	require.Len(t, events, 3)
	require.Equal(t, alice, events[0].Account)
	require.Equal(t, int64(10), events[0].Amount)
}

func TestContributeGates(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, _ := newTestFund(t, 100, deadline)

	// 截止时间当刻即不再接受出资
	require.ErrorIs(t, cf.Contribute(alice, 10, deadline), ErrCampaignEnded)
	require.ErrorIs(t, cf.Contribute(alice, 10, deadline.Add(time.Hour)), ErrCampaignEnded)

	require.ErrorIs(t, cf.Contribute(alice, 0, baseTime.Add(day)), ErrContributionTooSmall)
	require.ErrorIs(t, cf.Contribute(alice, -10, baseTime.Add(day)), ErrContributionTooSmall)

	require.Equal(t, int64(0), cf.TotalRaised())
}

// 场景A：出资人在截止前分两笔凑满目标，截止后受益人全额提取
func TestWithdrawAfterGoalMet(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, vault, sink := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 5, baseTime.Add(day)))
	require.NoError(t, cf.Contribute(alice, 5, baseTime.Add(2*day)))
	require.Equal(t, int64(10), cf.TotalRaised())
	require.True(t, cf.IsGoalMet())

	require.NoError(t, cf.Withdraw(beneficiary, baseTime.Add(31*day)))
	require.Equal(t, int64(0), cf.TotalRaised())
	require.Equal(t, int64(0), vault.BalanceOf(fundAddr))
	require.Equal(t, int64(10), vault.BalanceOf(beneficiary))

	events := sink.byType(EventWithdrawn)
	require.Len(t, events, 1)
	require.Equal(t, int64(10), events[0].Amount)

	// 第二次提取：余额已排空，goal-met 分支不再成立
	require.ErrorIs(t, cf.Withdraw(beneficiary, baseTime.Add(32*day)), ErrGoalNotMet)
}

func TestWithdrawEarlyWhenGoalMet(t *testing.T) {
	cf, vault, _ := newTestFund(t, 10, baseTime.Add(30*day))

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))

	// 提前达标，截止前即可提取
	require.NoError(t, cf.Withdraw(beneficiary, baseTime.Add(2*day)))
	require.Equal(t, int64(10), vault.BalanceOf(beneficiary))
}

// 场景C：未达标且未到截止时间，提取失败 StillOngoing
func TestWithdrawGates(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, _ := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 9, baseTime.Add(day)))

	require.ErrorIs(t, cf.Withdraw(alice, baseTime.Add(2*day)), ErrUnauthorized)
	require.ErrorIs(t, cf.Withdraw(beneficiary, baseTime.Add(2*day)), ErrStillOngoing)
	require.ErrorIs(t, cf.Withdraw(beneficiary, deadline.Add(day)), ErrGoalNotMet)

	// 失败的提取不改变任何状态
	require.Equal(t, int64(9), cf.TotalRaised())
	require.Equal(t, int64(9), cf.ContributionOf(alice))
}

// 场景B：未达标，截止后出资人取回全部出资
func TestRefundAfterFailedCampaign(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, vault, sink := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 9, baseTime.Add(day)))

	require.NoError(t, cf.Refund(alice, deadline.Add(time.Minute)))
	require.Equal(t, int64(0), cf.ContributionOf(alice))
	require.Equal(t, int64(0), cf.TotalRaised())
	require.Equal(t, int64(9), vault.BalanceOf(alice))

	events := sink.byType(EventRefunded)
	require.Len(t, events, 1)
	require.Equal(t, int64(9), events[0].Amount)

	// 再次退款失败，出资已清零
	require.ErrorIs(t, cf.Refund(alice, deadline.Add(time.Hour)), ErrNothingToRefund)
}

func TestRefundGates(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, _ := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 4, baseTime.Add(day)))
	require.NoError(t, cf.Contribute(bob, 3, baseTime.Add(day)))

	// 截止前不允许退款
	require.ErrorIs(t, cf.Refund(alice, baseTime.Add(2*day)), ErrStillOngoing)

	// 从未出资的人无可退款
	other := common.HexToAddress("0x0000000000000000000000000000000000000a03")
	require.ErrorIs(t, cf.Refund(other, deadline.Add(day)), ErrNothingToRefund)

	// 退款只动自己的出资
	require.NoError(t, cf.Refund(alice, deadline.Add(day)))
	require.Equal(t, int64(0), cf.ContributionOf(alice))
	require.Equal(t, int64(3), cf.ContributionOf(bob))
	require.Equal(t, int64(3), cf.TotalRaised())
}

func TestRefundBlockedWhenGoalMet(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, _ := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))

	// 达标后即使受益人尚未提取也不允许退款
	require.ErrorIs(t, cf.Refund(alice, deadline.Add(day)), ErrGoalMet)
}

// 场景D：延长一次成功，再次延长失败
func TestExtendDeadline(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, sink := newTestFund(t, 10, deadline)

	extended := deadline.Add(15 * day)

	require.ErrorIs(t, cf.ExtendDeadline(alice, extended, baseTime.Add(day)), ErrUnauthorized)
	require.ErrorIs(t, cf.ExtendDeadline(beneficiary, deadline, baseTime.Add(day)), ErrInvalidDeadline)
	require.ErrorIs(t, cf.ExtendDeadline(beneficiary, deadline.Add(-day), baseTime.Add(day)), ErrInvalidDeadline)

	require.NoError(t, cf.ExtendDeadline(beneficiary, extended, baseTime.Add(day)))
	require.True(t, cf.DeadlineExtended())
	require.Equal(t, extended, cf.Deadline())

	// 延长后原截止时间之后仍可出资
	require.NoError(t, cf.Contribute(alice, 5, deadline.Add(day)))

	// 第二次延长无论参数如何都失败
	require.ErrorIs(t, cf.ExtendDeadline(beneficiary, extended.Add(30*day), baseTime.Add(2*day)), ErrAlreadyExtended)

	events := sink.byType(EventDeadlineExtended)
	require.Len(t, events, 1)
	require.Equal(t, extended, events[0].Deadline)
}

func TestExtendDeadlineAfterEnd(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, _, _ := newTestFund(t, 10, deadline)

	require.ErrorIs(t, cf.ExtendDeadline(beneficiary, deadline.Add(day), deadline), ErrCampaignEnded)
	require.ErrorIs(t, cf.ExtendDeadline(beneficiary, deadline.Add(day), deadline.Add(time.Hour)), ErrCampaignEnded)
	require.False(t, cf.DeadlineExtended())
}

// 场景E：收款人拒收转账时操作整体失败，状态完全回滚
func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, vault, sink := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))
	vault.Block(beneficiary)

	err := cf.Withdraw(beneficiary, deadline.Add(day))
	require.ErrorIs(t, err, ErrTransferFailed)

	require.Equal(t, int64(10), cf.TotalRaised())
	require.Equal(t, int64(10), cf.ContributionOf(alice))
	require.Equal(t, int64(10), vault.BalanceOf(fundAddr))
	require.Empty(t, sink.byType(EventWithdrawn))

	// 解除拒收后可重试成功
	vault.Unblock(beneficiary)
	require.NoError(t, cf.Withdraw(beneficiary, deadline.Add(day)))
	require.Equal(t, int64(10), vault.BalanceOf(beneficiary))
}

func TestRefundTransferFailureRollsBack(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, vault, sink := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 9, baseTime.Add(day)))
	vault.Block(alice)

	err := cf.Refund(alice, deadline.Add(day))
	require.ErrorIs(t, err, ErrRefundFailed)

	// 失败的退款不能抹掉出资人的债权
	require.Equal(t, int64(9), cf.ContributionOf(alice))
	require.Equal(t, int64(9), cf.TotalRaised())
	require.Equal(t, int64(9), vault.BalanceOf(fundAddr))
	require.Empty(t, sink.byType(EventRefunded))

	vault.Unblock(alice)
	require.NoError(t, cf.Refund(alice, deadline.Add(day)))
	require.Equal(t, int64(9), vault.BalanceOf(alice))
}

// reentrantTreasury 在转账回调中重入账本
type reentrantTreasury struct {
	inner *treasury.Vault
	cf    *Crowdfund
	now   time.Time
	got   error
}

func (r *reentrantTreasury) Deposit(holder common.Address, amount int64) {
	r.inner.Deposit(holder, amount)
}

func (r *reentrantTreasury) Transfer(holder, to common.Address, amount int64) error {
	// 转账回调中尝试再次提取
	r.got = r.cf.Withdraw(beneficiary, r.now)
	return r.inner.Transfer(holder, to, amount)
}

func (r *reentrantTreasury) BalanceOf(holder common.Address) int64 {
	return r.inner.BalanceOf(holder)
}

func TestWithdrawBlocksReentrancy(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	rt := &reentrantTreasury{inner: treasury.NewVault(), now: deadline.Add(day)}

	cf, err := New(fundAddr, beneficiary, 10, deadline, baseTime, rt, nil)
	require.NoError(t, err)
	rt.cf = cf

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))

	// 外层提取成功，回调中的重入被守卫拦下
	require.NoError(t, cf.Withdraw(beneficiary, deadline.Add(day)))
	require.ErrorIs(t, rt.got, ErrReentrantCall)
	require.Equal(t, int64(10), rt.inner.BalanceOf(beneficiary))
}

func TestRefundAfterDrainFailsAtVault(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	cf, vault, _ := newTestFund(t, 10, deadline)

	require.NoError(t, cf.Contribute(alice, 10, baseTime.Add(day)))
	require.NoError(t, cf.Withdraw(beneficiary, deadline.Add(day)))

	// 排空后的退款尝试在托管账户处失败并回滚
	err := cf.Refund(alice, deadline.Add(2*day))
	require.ErrorIs(t, err, ErrRefundFailed)
	require.Equal(t, int64(10), cf.ContributionOf(alice))
	require.Equal(t, int64(0), vault.BalanceOf(alice))
}

func TestRestore(t *testing.T) {
	deadline := baseTime.Add(30 * day)
	vault := treasury.NewVault()

	cf := Restore(fundAddr, beneficiary, 10, deadline, true, vault, nil)
	cf.LoadContribution(alice, 4)
	cf.LoadContribution(bob, 3)

	require.Equal(t, int64(7), cf.TotalRaised())
	require.Equal(t, int64(7), vault.BalanceOf(fundAddr))
	require.True(t, cf.DeadlineExtended())

	// 恢复后的账本照常执行退款
	require.NoError(t, cf.Refund(alice, deadline.Add(day)))
	require.Equal(t, int64(4), vault.BalanceOf(alice))
	require.Equal(t, int64(3), cf.TotalRaised())
}
