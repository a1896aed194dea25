package funding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event 核心状态机发出的事件，每次成功的写操作返回其事件并追加到日志
type Event interface {
	EventName() string
	CampaignID() uint64
}

// CampaignCreated 活动创建事件
type CampaignCreated struct {
	ID       uint64
	Creator  common.Address
	Title    string
	Goal     *big.Int
	Deadline int64
}

func (e CampaignCreated) EventName() string  { return "CampaignCreated" }
func (e CampaignCreated) CampaignID() uint64 { return e.ID }

// ContributionMade 贡献事件
type ContributionMade struct {
	ID          uint64
	Contributor common.Address
	Amount      *big.Int
}

func (e ContributionMade) EventName() string  { return "ContributionMade" }
func (e ContributionMade) CampaignID() uint64 { return e.ID }

// CampaignFinalized 活动定案事件
type CampaignFinalized struct {
	ID          uint64
	TotalRaised *big.Int
}

func (e CampaignFinalized) EventName() string  { return "CampaignFinalized" }
func (e CampaignFinalized) CampaignID() uint64 { return e.ID }
