package funding

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	engineAddr  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	platform    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	creator     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	contributor = common.HexToAddress("0x4000000000000000000000000000000000000004")
	other       = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

// fakeClock 可拨动的测试时钟
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// units n * 10^exp
func units(n int64, exp int64) *big.Int {
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
	return pow.Mul(pow, big.NewInt(n))
}

func newTestEngine(t *testing.T) (*Engine, *MemoryBank, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	bank := NewMemoryBank()
	engine, err := NewEngine(engineAddr, platform, bank, NewRewardToken(), WithClock(clock.Now))
	require.NoError(t, err)
	return engine, bank, clock
}

func TestCreateCampaign(t *testing.T) {
	engine, _, clock := newTestEngine(t)

	goal := units(1, 18)
	id, event, err := engine.CreateCampaign(creator, "My Campaign", goal, 7, CategoryStartup)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, uint64(1), engine.CampaignCount())

	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.Equal(t, creator, c.Creator)
	assert.Equal(t, "My Campaign", c.Title)
	assert.Zero(t, c.FundingGoal.Cmp(goal))
	assert.Zero(t, c.TotalRaised.Sign())
	assert.False(t, c.Finalized)
	assert.Equal(t, CategoryStartup, c.Category)
	assert.Equal(t, clock.Now().Unix()+7*86400, c.Deadline)

	assert.Equal(t, CampaignCreated{
		ID:       0,
		Creator:  creator,
		Title:    "My Campaign",
		Goal:     goal,
		Deadline: c.Deadline,
	}, event)
	assert.Equal(t, []Event{event}, engine.Events())
}

func TestCreateCampaignValidation(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, _, err := engine.CreateCampaign(creator, "C", big.NewInt(0), 7, CategoryResearch)
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Funding goal must be > 0")

	_, _, err = engine.CreateCampaign(creator, "C", units(1, 18), 0, CategoryResearch)
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Duration must be > 0")

	_, _, err = engine.CreateCampaign(creator, "C", units(1, 18), 7, Category(4))
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Invalid category")

	assert.Equal(t, uint64(0), engine.CampaignCount())
	assert.Empty(t, engine.Events())
}

func TestContributeSplitsAndMints(t *testing.T) {
	engine, bank, _ := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C1", units(1, 18), 7, CategoryResearch)
	require.NoError(t, err)

	amount := units(5, 17) // 0.5 单位
	event, err := engine.Contribute(0, contributor, amount)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), event.ID)
	assert.Equal(t, contributor, event.Contributor)
	assert.Zero(t, event.Amount.Cmp(amount))

	// 90/10 拆分
	assert.Zero(t, bank.BalanceOf(creator).Cmp(units(45, 16)))
	assert.Zero(t, bank.BalanceOf(platform).Cmp(units(5, 16)))

	// 奖励代币按 1:100 铸造，0.5 单位 -> 50 个代币
	assert.Zero(t, engine.Token().BalanceOf(contributor).Cmp(units(50, 18)))

	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.Zero(t, c.TotalRaised.Cmp(amount))
	assert.Zero(t, engine.GetContribution(0, contributor).Cmp(amount))
}

func TestContributeAccumulates(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C1", units(1, 18), 7, CategoryHackathon)
	require.NoError(t, err)

	_, err = engine.Contribute(0, contributor, units(2, 17))
	require.NoError(t, err)
	_, err = engine.Contribute(0, contributor, units(3, 17))
	require.NoError(t, err)

	assert.Zero(t, engine.GetContribution(0, contributor).Cmp(units(5, 17)))

	ids, amounts := engine.GetContributions(contributor)
	require.Len(t, ids, 1)
	assert.Equal(t, uint64(0), ids[0])
	assert.Zero(t, amounts[0].Cmp(units(5, 17)))
}

func TestContributeFloorSplit(t *testing.T) {
	engine, bank, _ := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C1", units(1, 18), 7, CategoryEvent)
	require.NoError(t, err)

	// 99 * 90 / 100 = 89 (向下取整)，平台得 10
	_, err = engine.Contribute(0, contributor, big.NewInt(99))
	require.NoError(t, err)
	assert.Zero(t, bank.BalanceOf(creator).Cmp(big.NewInt(89)))
	assert.Zero(t, bank.BalanceOf(platform).Cmp(big.NewInt(10)))
}

func TestContributeRejections(t *testing.T) {
	engine, bank, clock := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C2", units(1, 18), 1, CategoryHackathon)
	require.NoError(t, err)

	_, err = engine.Contribute(9, contributor, units(1, 17))
	assert.ErrorIs(t, err, ErrUnknownCampaign)
	assert.EqualError(t, err, "Campaign does not exist")

	_, err = engine.Contribute(0, contributor, big.NewInt(0))
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Contribution must be > 0")

	clock.Advance(24*time.Hour + time.Second)
	_, err = engine.Contribute(0, contributor, units(1, 17))
	assert.ErrorIs(t, err, ErrCampaignEnded)
	assert.EqualError(t, err, "Campaign deadline passed")

	// 全部失败后状态零变更
	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.Zero(t, c.TotalRaised.Sign())
	assert.Zero(t, bank.BalanceOf(creator).Sign())
	assert.Zero(t, engine.Token().BalanceOf(contributor).Sign())
	assert.Len(t, engine.Events(), 1)
}

func TestContributeDeadlineBoundary(t *testing.T) {
	engine, _, clock := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C", units(1, 18), 1, CategoryResearch)
	require.NoError(t, err)

	// 恰好到达截止时刻即拒绝
	clock.Advance(24 * time.Hour)
	_, err = engine.Contribute(0, contributor, units(1, 17))
	assert.ErrorIs(t, err, ErrCampaignEnded)
}

func TestContributeToFinalizedCampaign(t *testing.T) {
	engine, _, clock := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C", units(1, 18), 1, CategoryResearch)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	_, err = engine.FinalizeCampaign(0, creator)
	require.NoError(t, err)

	_, err = engine.Contribute(0, contributor, units(1, 17))
	assert.ErrorIs(t, err, ErrCampaignEnded)
	assert.EqualError(t, err, "Campaign already finalized")
}

// failingBank 出账总是失败
type failingBank struct{}

func (failingBank) Pay([]Payout) error {
	return errors.New("rpc unavailable")
}

func TestContributeTransferFailureCompensates(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	engine, err := NewEngine(engineAddr, platform, failingBank{}, NewRewardToken(), WithClock(clock.Now))
	require.NoError(t, err)

	_, _, err = engine.CreateCampaign(creator, "C", units(1, 18), 7, CategoryStartup)
	require.NoError(t, err)

	_, err = engine.Contribute(0, contributor, units(5, 17))
	assert.ErrorIs(t, err, ErrTransferFailed)

	// 台账、总额、代币全部补偿回滚
	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.Zero(t, c.TotalRaised.Sign())
	assert.Zero(t, engine.GetContribution(0, contributor).Sign())
	assert.Zero(t, engine.Token().BalanceOf(contributor).Sign())
	ids, _ := engine.GetContributions(contributor)
	assert.Empty(t, ids)
	assert.Len(t, engine.Events(), 1) // 仅创建事件
}

// reentrantBank 在出账回调中重入引擎
type reentrantBank struct {
	engine        *Engine
	inner         *MemoryBank
	contributeErr error
	finalizeErr   error
}

func (b *reentrantBank) Pay(payouts []Payout) error {
	_, b.contributeErr = b.engine.Contribute(0, other, units(1, 17))
	_, b.finalizeErr = b.engine.FinalizeCampaign(0, creator)
	return b.inner.Pay(payouts)
}

func TestContributeReentrancyGuard(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	bank := &reentrantBank{inner: NewMemoryBank()}
	engine, err := NewEngine(engineAddr, platform, bank, NewRewardToken(), WithClock(clock.Now))
	require.NoError(t, err)
	bank.engine = engine

	_, _, err = engine.CreateCampaign(creator, "C", units(1, 18), 7, CategoryStartup)
	require.NoError(t, err)

	amount := units(5, 17)
	_, err = engine.Contribute(0, contributor, amount)
	require.NoError(t, err)

	// 守卫拦下转账期间的重入
	assert.ErrorIs(t, bank.contributeErr, ErrReentrancy)
	assert.ErrorIs(t, bank.finalizeErr, ErrReentrancy)

	// 仅外层贡献生效
	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.Zero(t, c.TotalRaised.Cmp(amount))
	assert.Zero(t, engine.GetContribution(0, other).Sign())
}

func TestFinalizeCampaign(t *testing.T) {
	engine, _, clock := newTestEngine(t)
	_, _, err := engine.CreateCampaign(creator, "C3", units(1, 18), 1, CategoryEvent)
	require.NoError(t, err)

	amount := units(3, 17)
	_, err = engine.Contribute(0, contributor, amount)
	require.NoError(t, err)

	// 截止前创建者定案
	_, err = engine.FinalizeCampaign(0, creator)
	assert.ErrorIs(t, err, ErrDeadlineNotReached)
	assert.EqualError(t, err, "Deadline not reached")

	clock.Advance(25 * time.Hour)

	// 截止后非创建者定案
	_, err = engine.FinalizeCampaign(0, other)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Only creator can finalize")

	// 截止后创建者定案
	event, err := engine.FinalizeCampaign(0, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), event.ID)
	assert.Zero(t, event.TotalRaised.Cmp(amount))

	c, err := engine.GetCampaign(0)
	require.NoError(t, err)
	assert.True(t, c.Finalized)

	// 重复定案
	_, err = engine.FinalizeCampaign(0, creator)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.EqualError(t, err, "Already finalized")

	_, err = engine.FinalizeCampaign(7, creator)
	assert.ErrorIs(t, err, ErrUnknownCampaign)
}

func TestGetContributionsAcrossCampaigns(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	for i := 0; i < 3; i++ {
		_, _, err := engine.CreateCampaign(creator, "C", units(1, 18), 7, CategoryResearch)
		require.NoError(t, err)
	}

	_, err := engine.Contribute(0, contributor, units(1, 17))
	require.NoError(t, err)
	_, err = engine.Contribute(2, contributor, units(2, 17))
	require.NoError(t, err)
	_, err = engine.Contribute(2, contributor, units(1, 17))
	require.NoError(t, err)

	ids, amounts := engine.GetContributions(contributor)
	require.Equal(t, []uint64{0, 2}, ids)
	assert.Zero(t, amounts[0].Cmp(units(1, 17)))
	assert.Zero(t, amounts[1].Cmp(units(3, 17)))

	assert.Zero(t, engine.GetContribution(1, contributor).Sign())

	ids, amounts = engine.GetContributions(other)
	assert.Empty(t, ids)
	assert.Empty(t, amounts)
}

func TestEventJournalOrder(t *testing.T) {
	engine, _, clock := newTestEngine(t)
	_, created, err := engine.CreateCampaign(creator, "C", units(1, 18), 1, CategoryStartup)
	require.NoError(t, err)
	made, err := engine.Contribute(0, contributor, units(1, 17))
	require.NoError(t, err)
	clock.Advance(25 * time.Hour)
	finalized, err := engine.FinalizeCampaign(0, creator)
	require.NoError(t, err)

	events := engine.Events()
	require.Len(t, events, 3)
	assert.Equal(t, Event(created), events[0])
	assert.Equal(t, Event(made), events[1])
	assert.Equal(t, Event(finalized), events[2])
}
