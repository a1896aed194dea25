package event

import (
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/blues/edufund/internal/database"
	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logic"
	"github.com/blues/edufund/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	engineAddr  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	platform    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	creator     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	contributor = common.HexToAddress("0x4000000000000000000000000000000000000004")
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// setupPipeline 引擎 + 分发器 + 全部处理器
func setupPipeline(t *testing.T) (*funding.Engine, *Dispatcher, *gorm.DB, *fakeClock) {
	t.Helper()
	db := testDB(t)

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	engine, err := funding.NewEngine(engineAddr, platform,
		funding.NewMemoryBank(), funding.NewRewardToken(), funding.WithClock(clock.Now))
	require.NoError(t, err)

	dispatcher, err := NewDispatcher(db, 4)
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	dispatcher.Register(funding.CampaignCreated{}.EventName(), NewCampaignProcessor(engine, db))
	dispatcher.Register(funding.ContributionMade{}.EventName(), NewContributeProcessor(engine, db))
	dispatcher.Register(funding.CampaignFinalized{}.EventName(), NewFinalizeProcessor(engine, db))

	return engine, dispatcher, db, clock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestPipelineSyncsReadModels(t *testing.T) {
	engine, dispatcher, db, clock := setupPipeline(t)

	goal := big.NewInt(1_000_000)
	_, created, err := engine.CreateCampaign(creator, "Pipeline", goal, 1, funding.CategoryHackathon)
	require.NoError(t, err)
	dispatcher.Dispatch(created)

	made, err := engine.Contribute(0, contributor, big.NewInt(1000))
	require.NoError(t, err)
	dispatcher.Dispatch(made)

	clock.Advance(25 * time.Hour)
	finalized, err := engine.FinalizeCampaign(0, creator)
	require.NoError(t, err)
	dispatcher.Dispatch(finalized)

	dispatcher.Wait()

	// 活动读模型
	campaignLogic := logic.NewCampaignLogic(db)
	campaign, err := campaignLogic.GetCampaign(0)
	require.NoError(t, err)
	assert.Equal(t, "Pipeline", campaign.Title)
	assert.Equal(t, "Hackathon", campaign.Category)
	assert.Equal(t, "1000", campaign.TotalRaised.String())
	assert.True(t, campaign.Finalized)
	assert.Equal(t, model.CampaignStatusFinalized, campaign.Status)

	// 贡献记录带拆分结果
	records, total, err := logic.NewContributeRecordLogic(db).GetCampaignContributeRecords(0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, contributor.Hex(), records[0].Address)
	assert.Equal(t, "1000", records[0].Amount.String())
	assert.Equal(t, "900", records[0].CreatorShare.String())
	assert.Equal(t, "100", records[0].PlatformShare.String())
	assert.Equal(t, "100000", records[0].RewardMinted.String())

	// 奖励余额快照
	balance, err := logic.NewRewardLogic(db).GetBalance(contributor.Hex())
	require.NoError(t, err)
	assert.Zero(t, balance.Cmp(big.NewInt(100_000)))

	// 事件日志全部标记已处理
	events, err := logic.NewEventLogic(db).GetCampaignEvents(0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	names := []string{events[0].EventName, events[1].EventName, events[2].EventName}
	assert.ElementsMatch(t, []string{"CampaignCreated", "ContributionMade", "CampaignFinalized"}, names)
	for _, e := range events {
		assert.True(t, e.Processed)
	}
}

func TestDispatchWithoutProcessorsStillRecorded(t *testing.T) {
	db := testDB(t)
	dispatcher, err := NewDispatcher(db, 2)
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	// 没有处理器注册的事件也会进日志
	dispatcher.Dispatch(funding.CampaignCreated{ID: 7, Creator: creator, Title: "X",
		Goal: big.NewInt(1), Deadline: 1})
	dispatcher.Wait()

	events, err := logic.NewEventLogic(db).GetCampaignEvents(7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CampaignCreated", events[0].EventName)
	assert.True(t, events[0].Processed)
}
