package funding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// contributionKey (活动, 贡献者) 复合键
type contributionKey struct {
	campaignID  uint64
	contributor common.Address
}

// ContributionLedger 贡献台账
// amounts 记录每个 (活动, 贡献者) 的累计贡献；index 记录每个账户
// 参与过的活动 ID，按账户聚合查询无需扫描全部活动
type ContributionLedger struct {
	amounts map[contributionKey]*big.Int
	index   map[common.Address][]uint64
}

// newContributionLedger 创建贡献台账
func newContributionLedger() *ContributionLedger {
	return &ContributionLedger{
		amounts: make(map[contributionKey]*big.Int),
		index:   make(map[common.Address][]uint64),
	}
}

// record 累加一笔贡献，返回是否是该账户对该活动的首笔
func (l *ContributionLedger) record(campaignID uint64, contributor common.Address, amount *big.Int) bool {
	key := contributionKey{campaignID: campaignID, contributor: contributor}
	bal, ok := l.amounts[key]
	if !ok {
		l.amounts[key] = new(big.Int).Set(amount)
		l.index[contributor] = append(l.index[contributor], campaignID)
		return true
	}
	bal.Add(bal, amount)
	return false
}

// rollback 撤销 record 的效果，出账失败时的补偿路径
func (l *ContributionLedger) rollback(campaignID uint64, contributor common.Address, amount *big.Int, wasFirst bool) {
	key := contributionKey{campaignID: campaignID, contributor: contributor}
	if wasFirst {
		delete(l.amounts, key)
		ids := l.index[contributor]
		for i, id := range ids {
			if id == campaignID {
				l.index[contributor] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(l.index[contributor]) == 0 {
			delete(l.index, contributor)
		}
		return
	}
	if bal, ok := l.amounts[key]; ok {
		bal.Sub(bal, amount)
	}
}

// amount 某账户对某活动的累计贡献，无记录时返回 0
func (l *ContributionLedger) amount(campaignID uint64, contributor common.Address) *big.Int {
	key := contributionKey{campaignID: campaignID, contributor: contributor}
	if bal, ok := l.amounts[key]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// byContributor 某账户的全部贡献，返回平行的活动 ID 与金额序列
func (l *ContributionLedger) byContributor(contributor common.Address) ([]uint64, []*big.Int) {
	ids := l.index[contributor]
	campaignIDs := make([]uint64, len(ids))
	amounts := make([]*big.Int, len(ids))
	for i, id := range ids {
		campaignIDs[i] = id
		amounts[i] = l.amount(id, contributor)
	}
	return campaignIDs, amounts
}
