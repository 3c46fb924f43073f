package treasury

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Treasury 资金托管接口
// 每个众筹账本独占一个托管账户，账户余额与账本的 totalRaised 保持一致
type Treasury interface {
	// Deposit 向托管账户存入资金
	Deposit(holder common.Address, amount int64)
	// Transfer 从托管账户向收款人转出资金，收款人拒收或余额不足时返回错误
	Transfer(holder common.Address, to common.Address, amount int64) error
	// BalanceOf 查询托管账户余额
	BalanceOf(holder common.Address) int64
}

var (
	// ErrInsufficientBalance 托管账户余额不足
	ErrInsufficientBalance = errors.New("托管账户余额不足")
	// ErrRecipientRejected 收款人拒收转账
	ErrRecipientRejected = errors.New("收款人拒收转账")
)

// Vault 内存资金托管
type Vault struct {
	mu       sync.Mutex
	accounts map[common.Address]int64
	blocked  map[common.Address]bool
}

// NewVault 创建资金托管
func NewVault() *Vault {
	return &Vault{
		accounts: make(map[common.Address]int64),
		blocked:  make(map[common.Address]bool),
	}
}

// Deposit 存入资金
func (v *Vault) Deposit(holder common.Address, amount int64) {
	if amount <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.accounts[holder] += amount
}

// Transfer 转出资金
func (v *Vault) Transfer(holder common.Address, to common.Address, amount int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.accounts[holder] < amount {
		return ErrInsufficientBalance
	}
	if v.blocked[to] {
		return ErrRecipientRejected
	}

	v.accounts[holder] -= amount
	v.accounts[to] += amount
	return nil
}

// BalanceOf 查询账户余额
func (v *Vault) BalanceOf(holder common.Address) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.accounts[holder]
}

// Block 将地址标记为拒收，之后向该地址的转账全部失败
func (v *Vault) Block(addr common.Address) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.blocked[addr] = true
}

// Unblock 取消拒收标记
func (v *Vault) Unblock(addr common.Address) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.blocked, addr)
}
