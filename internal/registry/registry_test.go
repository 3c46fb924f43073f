package registry

import (
	"testing"
	"time"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/treasury"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	owner = common.HexToAddress("0x0000000000000000000000000000000000000b01")

	baseTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day      = 24 * time.Hour
)

type collectSink struct {
	events []ledger.Event
}

func (s *collectSink) Emit(evt ledger.Event) {
	s.events = append(s.events, evt)
}

func TestCreateCrowdfund(t *testing.T) {
	sink := &collectSink{}
	reg := New(treasury.NewVault(), sink)
	deadline := baseTime.Add(30 * day)

	cf, record, err := reg.CreateCrowdfund(owner, 100, deadline, baseTime)
	require.NoError(t, err)
	require.NotNil(t, cf)
	require.Equal(t, 0, record.Index)
	require.Equal(t, owner, record.Owner)
	require.Equal(t, int64(100), record.Goal)
	require.Equal(t, deadline, record.Deadline)
	require.NotEqual(t, common.Address{}, record.Address)
	require.Equal(t, record.Address, cf.Address())

	require.Equal(t, 1, reg.CrowdfundCount())

	got, err := reg.CrowdfundAt(0)
	require.NoError(t, err)
	require.Equal(t, record, got)

	found, ok := reg.Get(record.Address)
	require.True(t, ok)
	require.Same(t, cf, found)

	require.Len(t, sink.events, 1)
	require.Equal(t, ledger.EventCrowdfundCreated, sink.events[0].Type)
	require.Equal(t, record.Address, sink.events[0].Crowdfund)
}

func TestCreateCrowdfundValidation(t *testing.T) {
	reg := New(treasury.NewVault(), nil)
	deadline := baseTime.Add(30 * day)

	_, _, err := reg.CreateCrowdfund(owner, 0, deadline, baseTime)
	require.ErrorIs(t, err, ledger.ErrInvalidGoal)

	_, _, err = reg.CreateCrowdfund(owner, 100, baseTime, baseTime)
	require.ErrorIs(t, err, ledger.ErrInvalidDeadline)

	_, _, err = reg.CreateCrowdfund(common.Address{}, 100, deadline, baseTime)
	require.ErrorIs(t, err, ledger.ErrInvalidBeneficiary)

	// 创建失败不占用序号
	require.Equal(t, 0, reg.CrowdfundCount())
}

func TestCrowdfundIndexing(t *testing.T) {
	reg := New(treasury.NewVault(), nil)
	deadline := baseTime.Add(30 * day)

	_, first, err := reg.CreateCrowdfund(owner, 100, deadline, baseTime)
	require.NoError(t, err)
	_, second, err := reg.CreateCrowdfund(owner, 200, deadline.Add(day), baseTime)
	require.NoError(t, err)

	// 同一创建者的不同序号派生出不同地址
	require.NotEqual(t, first.Address, second.Address)
	require.Equal(t, 0, first.Index)
	require.Equal(t, 1, second.Index)
	require.Equal(t, 2, reg.CrowdfundCount())

	got, err := reg.CrowdfundAt(1)
	require.NoError(t, err)
	require.Equal(t, second, got)

	// 记录创建后不可变
	_, err = reg.CrowdfundAt(2)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = reg.CrowdfundAt(-1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRestore(t *testing.T) {
	vault := treasury.NewVault()
	reg := New(vault, nil)

	record := Record{
		Address:  common.HexToAddress("0x00000000000000000000000000000000000000f0"),
		Owner:    owner,
		Goal:     100,
		Deadline: baseTime.Add(-day), // 已过截止时间的众筹也要恢复
	}

	cf := reg.Restore(record, true)
	require.NotNil(t, cf)
	require.True(t, cf.DeadlineExtended())
	require.Equal(t, 1, reg.CrowdfundCount())

	found, ok := reg.Get(record.Address)
	require.True(t, ok)
	require.Same(t, cf, found)
}
