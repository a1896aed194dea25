package event

import (
	"fmt"
	"math/big"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/logic"
	"github.com/blues/edufund/internal/model"
	"gorm.io/gorm"
)

// ContributeProcessor 贡献事件处理器
type ContributeProcessor struct {
	engine          *funding.Engine
	campaignLogic   *logic.CampaignLogic
	contributeLogic *logic.ContributeRecordLogic
	rewardLogic     *logic.RewardLogic
}

// NewContributeProcessor 创建贡献事件处理器
func NewContributeProcessor(engine *funding.Engine, db *gorm.DB) *ContributeProcessor {
	return &ContributeProcessor{
		engine:          engine,
		campaignLogic:   logic.NewCampaignLogic(db),
		contributeLogic: logic.NewContributeRecordLogic(db),
		rewardLogic:     logic.NewRewardLogic(db),
	}
}

// Name 处理器名称
func (p *ContributeProcessor) Name() string {
	return "contribute_processor"
}

// Process 处理贡献事件
func (p *ContributeProcessor) Process(evt funding.Event) error {
	made, ok := evt.(funding.ContributionMade)
	if !ok {
		return fmt.Errorf("unexpected event type %s", evt.EventName())
	}

	// 重算拆分结果，与引擎的结算口径一致
	creatorShare := new(big.Int).Mul(made.Amount, big.NewInt(90))
	creatorShare.Div(creatorShare, big.NewInt(100))
	platformShare := new(big.Int).Sub(made.Amount, creatorShare)
	reward := new(big.Int).Mul(made.Amount, big.NewInt(funding.RewardRate))

	record := &model.ContributeRecordModel{
		CampaignId:    int64(made.ID),
		Address:       made.Contributor.Hex(),
		Amount:        model.NewBigAmount(made.Amount),
		CreatorShare:  model.NewBigAmount(creatorShare),
		PlatformShare: model.NewBigAmount(platformShare),
		RewardMinted:  model.NewBigAmount(reward),
	}
	if err := p.contributeLogic.CreateContributeRecord(record); err != nil {
		return err
	}

	// 同步活动累计金额
	snapshot, err := p.engine.GetCampaign(made.ID)
	if err != nil {
		return fmt.Errorf("活动快照不存在: %w", err)
	}
	if err := p.campaignLogic.SyncCampaign(snapshot); err != nil {
		return err
	}

	// 同步贡献者的奖励代币余额
	balance := p.engine.Token().BalanceOf(made.Contributor)
	if err := p.rewardLogic.UpsertBalance(made.Contributor.Hex(), balance); err != nil {
		return err
	}

	logger.Info("Processed contribution of %s to campaign %d from %s",
		made.Amount.String(), made.ID, made.Contributor.Hex())
	return nil
}
