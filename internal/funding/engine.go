package funding

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// 佣金拆分比例：每笔贡献的 90% 归创建者，剩余归平台
const (
	creatorShareNumerator = 90
	shareDenominator      = 100
)

const secondsPerDay = 86400

// Engine 活动资金核心状态机
// 登记表、贡献台账、代币账本全部由引擎独占持有，外部只能
// 通过引擎的操作读写。写操作整体串行；转账阶段由每活动的
// in-flight 守卫阻止重入
type Engine struct {
	mu       sync.RWMutex
	clock    func() time.Time
	account  common.Address // 引擎自身账户，即代币铸造者身份
	platform common.Address // 平台佣金账户

	registry *CampaignRegistry
	ledger   *ContributionLedger
	token    *RewardToken
	bank     Bank

	inFlight map[uint64]bool
	journal  []Event
}

// Option 引擎可选配置
type Option func(*Engine)

// WithClock 注入时钟，测试用
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine 创建引擎并把代币铸造权一次性绑定到引擎账户
func NewEngine(account, platform common.Address, bank Bank, token *RewardToken, opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:    time.Now,
		account:  account,
		platform: platform,
		registry: newCampaignRegistry(),
		ledger:   newContributionLedger(),
		token:    token,
		bank:     bank,
		inFlight: make(map[uint64]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := token.SetMinter(account); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateCampaign 创建活动，返回分配的 ID 和创建事件
func (e *Engine) CreateCampaign(creator common.Address, title string, fundingGoal *big.Int, durationDays int64, category Category) (uint64, CampaignCreated, error) {
	if fundingGoal == nil || fundingGoal.Sign() <= 0 {
		return 0, CampaignCreated{}, errGoalNotPositive
	}
	if durationDays <= 0 {
		return 0, CampaignCreated{}, errDurationNotPositive
	}
	if !category.Valid() {
		return 0, CampaignCreated{}, errInvalidCategory
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	campaign := &Campaign{
		Creator:     creator,
		Title:       title,
		FundingGoal: new(big.Int).Set(fundingGoal),
		Deadline:    e.clock().Unix() + durationDays*secondsPerDay,
		TotalRaised: new(big.Int),
		Category:    category,
	}
	id := e.registry.add(campaign)

	event := CampaignCreated{
		ID:       id,
		Creator:  campaign.Creator,
		Title:    campaign.Title,
		Goal:     new(big.Int).Set(campaign.FundingGoal),
		Deadline: campaign.Deadline,
	}
	e.journal = append(e.journal, event)
	return id, event, nil
}

// Contribute 结算一笔贡献
// 顺序：校验 -> 内部状态全部落账（总额、台账、铸币）-> 设置
// in-flight 守卫 -> 出账拆分转账。出账失败则补偿全部已落账的
// 状态，对外表现为零变更
func (e *Engine) Contribute(campaignID uint64, contributor common.Address, amount *big.Int) (ContributionMade, error) {
	e.mu.Lock()

	campaign, err := e.registry.get(campaignID)
	if err != nil {
		e.mu.Unlock()
		return ContributionMade{}, err
	}
	if e.inFlight[campaignID] {
		e.mu.Unlock()
		return ContributionMade{}, errReentrantCall
	}
	if campaign.Finalized {
		e.mu.Unlock()
		return ContributionMade{}, errCampaignFinalized
	}
	if e.clock().Unix() >= campaign.Deadline {
		e.mu.Unlock()
		return ContributionMade{}, errDeadlinePassed
	}
	if amount == nil || amount.Sign() <= 0 {
		e.mu.Unlock()
		return ContributionMade{}, errContributionNotPositive
	}

	// 内部状态先于出账全部落账
	amount = new(big.Int).Set(amount)
	campaign.TotalRaised.Add(campaign.TotalRaised, amount)
	wasFirst := e.ledger.record(campaignID, contributor, amount)

	reward := new(big.Int).Mul(amount, big.NewInt(RewardRate))
	if err := e.token.Mint(e.account, contributor, reward); err != nil {
		campaign.TotalRaised.Sub(campaign.TotalRaised, amount)
		e.ledger.rollback(campaignID, contributor, amount, wasFirst)
		e.mu.Unlock()
		return ContributionMade{}, err
	}

	creatorShare := new(big.Int).Mul(amount, big.NewInt(creatorShareNumerator))
	creatorShare.Div(creatorShare, big.NewInt(shareDenominator))
	platformShare := new(big.Int).Sub(amount, creatorShare)

	creator := campaign.Creator
	e.inFlight[campaignID] = true
	e.mu.Unlock()

	// 出账阶段，守卫保持生效
	payErr := e.bank.Pay([]Payout{
		{To: creator, Amount: creatorShare},
		{To: e.platform, Amount: platformShare},
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, campaignID)

	if payErr != nil {
		// 补偿已落账状态
		campaign.TotalRaised.Sub(campaign.TotalRaised, amount)
		e.ledger.rollback(campaignID, contributor, amount, wasFirst)
		e.token.burn(contributor, reward)
		return ContributionMade{}, &Error{Kind: KindTransferFailed, Message: "Transfer failed", Cause: payErr}
	}

	event := ContributionMade{
		ID:          campaignID,
		Contributor: contributor,
		Amount:      new(big.Int).Set(amount),
	}
	e.journal = append(e.journal, event)
	return event, nil
}

// FinalizeCampaign 定案，单向状态切换，不移动任何资金
func (e *Engine) FinalizeCampaign(campaignID uint64, caller common.Address) (CampaignFinalized, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	campaign, err := e.registry.get(campaignID)
	if err != nil {
		return CampaignFinalized{}, err
	}
	if e.inFlight[campaignID] {
		return CampaignFinalized{}, errReentrantCall
	}
	if caller != campaign.Creator {
		return CampaignFinalized{}, errNotCreator
	}
	if e.clock().Unix() < campaign.Deadline {
		return CampaignFinalized{}, errDeadlineNotReached
	}
	if campaign.Finalized {
		return CampaignFinalized{}, errAlreadyFinalized
	}

	campaign.Finalized = true

	event := CampaignFinalized{
		ID:          campaignID,
		TotalRaised: new(big.Int).Set(campaign.TotalRaised),
	}
	e.journal = append(e.journal, event)
	return event, nil
}

// GetCampaign 活动快照
func (e *Engine) GetCampaign(campaignID uint64) (Campaign, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	campaign, err := e.registry.get(campaignID)
	if err != nil {
		return Campaign{}, err
	}
	return campaign.snapshot(), nil
}

// CampaignCount 活动总数
func (e *Engine) CampaignCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.count()
}

// Campaigns 全部活动快照，按 ID 升序
func (e *Engine) Campaigns() []Campaign {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Campaign, 0, e.registry.count())
	for _, c := range e.registry.campaigns {
		out = append(out, c.snapshot())
	}
	return out
}

// GetContribution 某账户对某活动的累计贡献，无记录时返回 0
func (e *Engine) GetContribution(campaignID uint64, contributor common.Address) *big.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.amount(campaignID, contributor)
}

// GetContributions 某账户的全部贡献，平行的活动 ID 与金额序列
func (e *Engine) GetContributions(contributor common.Address) ([]uint64, []*big.Int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.byContributor(contributor)
}

// Events 事件日志副本
func (e *Engine) Events() []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Event, len(e.journal))
	copy(out, e.journal)
	return out
}

// Token 奖励代币账本
func (e *Engine) Token() *RewardToken {
	return e.token
}

// Account 引擎自身账户
func (e *Engine) Account() common.Address {
	return e.account
}

// Platform 平台佣金账户
func (e *Engine) Platform() common.Address {
	return e.platform
}
