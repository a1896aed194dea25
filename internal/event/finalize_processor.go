package event

import (
	"fmt"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/logic"
	"gorm.io/gorm"
)

// FinalizeProcessor 定案事件处理器
type FinalizeProcessor struct {
	engine        *funding.Engine
	campaignLogic *logic.CampaignLogic
}

// NewFinalizeProcessor 创建定案事件处理器
func NewFinalizeProcessor(engine *funding.Engine, db *gorm.DB) *FinalizeProcessor {
	return &FinalizeProcessor{
		engine:        engine,
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// Name 处理器名称
func (p *FinalizeProcessor) Name() string {
	return "finalize_processor"
}

// Process 处理定案事件
func (p *FinalizeProcessor) Process(evt funding.Event) error {
	finalized, ok := evt.(funding.CampaignFinalized)
	if !ok {
		return fmt.Errorf("unexpected event type %s", evt.EventName())
	}

	snapshot, err := p.engine.GetCampaign(finalized.ID)
	if err != nil {
		return fmt.Errorf("活动快照不存在: %w", err)
	}
	if err := p.campaignLogic.SyncCampaign(snapshot); err != nil {
		return err
	}

	logger.Info("Campaign %d finalized with total raised %s",
		finalized.ID, finalized.TotalRaised.String())
	return nil
}
