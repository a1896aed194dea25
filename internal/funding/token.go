package funding

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// RewardRate 每 1 个最小货币单位铸造的 EDU 代币数量
const RewardRate = 100

// RewardToken EDU 奖励代币账本
// 余额单调不减（回滚补偿除外），仅授权铸造者可以铸造
type RewardToken struct {
	mu        sync.RWMutex
	minter    common.Address
	minterSet bool
	balances  map[common.Address]*big.Int
}

// NewRewardToken 创建奖励代币账本
func NewRewardToken() *RewardToken {
	return &RewardToken{balances: make(map[common.Address]*big.Int)}
}

// SetMinter 设置铸造者，只允许设置一次
func (t *RewardToken) SetMinter(minter common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.minterSet {
		return &Error{Kind: KindUnauthorized, Message: "Minter already set"}
	}
	t.minter = minter
	t.minterSet = true
	return nil
}

// Mint 铸造代币，caller 必须是已设置的铸造者
func (t *RewardToken) Mint(caller, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.minterSet || caller != t.minter {
		return &Error{Kind: KindUnauthorized, Message: "Only minter can mint"}
	}
	if amount == nil || amount.Sign() < 0 {
		return &Error{Kind: KindValidation, Message: "Invalid mint amount"}
	}
	t.credit(to, amount)
	return nil
}

// BalanceOf 查询代币余额
func (t *RewardToken) BalanceOf(addr common.Address) *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if bal, ok := t.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

func (t *RewardToken) credit(to common.Address, amount *big.Int) {
	bal, ok := t.balances[to]
	if !ok {
		bal = new(big.Int)
		t.balances[to] = bal
	}
	bal.Add(bal, amount)
}

// burn 结算补偿专用，撤销一次铸造
func (t *RewardToken) burn(from common.Address, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if bal, ok := t.balances[from]; ok {
		bal.Sub(bal, amount)
	}
}
