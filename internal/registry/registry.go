package registry

import (
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/treasury"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNotFound 指定序号的众筹记录不存在
var ErrNotFound = errors.New("众筹记录不存在")

// Record 众筹创建记录，创建后不可变，按创建序号从0开始排列
type Record struct {
	Index    int            `json:"index"`
	Address  common.Address `json:"address"`
	Owner    common.Address `json:"owner"`
	Goal     int64          `json:"goal"`
	Deadline time.Time      `json:"deadline"`
}

// Registry 众筹工厂
// 按需创建相互独立的众筹账本，并为每次创建保存一条轻量记录
type Registry struct {
	treasury treasury.Treasury
	sink     ledger.Sink

	mu         sync.Mutex
	records    []Record
	crowdfunds map[common.Address]*ledger.Crowdfund
}

// New 创建众筹工厂
func New(t treasury.Treasury, sink ledger.Sink) *Registry {
	return &Registry{
		treasury:   t,
		sink:       sink,
		crowdfunds: make(map[common.Address]*ledger.Crowdfund),
	}
}

// CreateCrowdfund 创建新的众筹账本
// 参数校验失败时返回账本的构造错误，成功时返回账本、地址和创建序号
func (r *Registry) CreateCrowdfund(owner common.Address, goal int64, deadline, now time.Time) (*ledger.Crowdfund, Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := uint64(len(r.records))
	addr := deriveAddress(owner, index)

	cf, err := ledger.New(addr, owner, goal, deadline, now, r.treasury, r.sink)
	if err != nil {
		return nil, Record{}, err
	}

	record := Record{
		Index:    int(index),
		Address:  addr,
		Owner:    owner,
		Goal:     goal,
		Deadline: deadline,
	}
	r.records = append(r.records, record)
	r.crowdfunds[addr] = cf

	if r.sink != nil {
		r.sink.Emit(ledger.Event{
			Type:      ledger.EventCrowdfundCreated,
			Crowdfund: addr,
			Account:   owner,
			Goal:      goal,
			Deadline:  deadline,
			EmittedAt: time.Now(),
		})
	}

	return cf, record, nil
}

// CrowdfundCount 已创建的众筹数量，单调递增
func (r *Registry) CrowdfundCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// CrowdfundAt 按创建序号查询记录
func (r *Registry) CrowdfundAt(index int) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.records) {
		return Record{}, ErrNotFound
	}
	return r.records[index], nil
}

// Get 按地址查询众筹账本
func (r *Registry) Get(addr common.Address) (*ledger.Crowdfund, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cf, ok := r.crowdfunds[addr]
	return cf, ok
}

// Restore 从持久化记录恢复账本，保留原地址，不校验截止时间
// 仅在服务启动恢复阶段使用
func (r *Registry) Restore(record Record, extended bool) *ledger.Crowdfund {
	r.mu.Lock()
	defer r.mu.Unlock()

	cf := ledger.Restore(record.Address, record.Owner, record.Goal, record.Deadline, extended, r.treasury, r.sink)
	r.records = append(r.records, record)
	r.crowdfunds[record.Address] = cf
	return cf
}

// deriveAddress 由创建者地址和序号派生账本地址
func deriveAddress(owner common.Address, index uint64) common.Address {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], index)
	hash := crypto.Keccak256(owner.Bytes(), buf[:])
	return common.BytesToAddress(hash[12:])
}
