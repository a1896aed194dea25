package funding

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Payout 单笔出账
type Payout struct {
	To     common.Address
	Amount *big.Int
}

// Bank 出账通道。Pay 必须保证整批转账要么全部生效、要么全部不生效，
// 引擎依赖这一点维持结算的原子性
type Bank interface {
	Pay(payouts []Payout) error
}

// MemoryBank 内存账本，默认的 Bank 实现
type MemoryBank struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
}

// NewMemoryBank 创建内存账本
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[common.Address]*big.Int)}
}

// Pay 入账整批转账，先校验后生效
func (b *MemoryBank) Pay(payouts []Payout) error {
	for _, p := range payouts {
		if p.Amount == nil || p.Amount.Sign() < 0 {
			return errors.New("invalid payout amount")
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range payouts {
		bal, ok := b.balances[p.To]
		if !ok {
			bal = new(big.Int)
			b.balances[p.To] = bal
		}
		bal.Add(bal, p.Amount)
	}
	return nil
}

// BalanceOf 查询账户余额
func (b *MemoryBank) BalanceOf(addr common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bal, ok := b.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}
