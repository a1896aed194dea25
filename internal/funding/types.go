package funding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Category 活动类别，闭合枚举
type Category uint8

const (
	CategoryResearch Category = iota // 科研
	CategoryHackathon
	CategoryStartup
	CategoryEvent
)

var categoryNames = []string{"Research", "Hackathon", "Startup", "Event"}

// Valid 是否为已定义的类别
func (c Category) Valid() bool {
	return int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return categoryNames[c]
}

// ParseCategory 按名称解析类别
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// Campaign 众筹活动记录
// ID 从零开始顺序分配；TotalRaised 单调不减；Finalized 只允许 false -> true
type Campaign struct {
	ID          uint64
	Creator     common.Address
	Title       string
	FundingGoal *big.Int
	Deadline    int64 // unix 秒
	TotalRaised *big.Int
	Finalized   bool
	Category    Category
}

// snapshot 返回深拷贝，金额不共享底层 big.Int
func (c *Campaign) snapshot() Campaign {
	out := *c
	out.FundingGoal = new(big.Int).Set(c.FundingGoal)
	out.TotalRaised = new(big.Int).Set(c.TotalRaised)
	return out
}
