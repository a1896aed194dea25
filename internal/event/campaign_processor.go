package event

import (
	"fmt"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/logic"
	"gorm.io/gorm"
)

// CampaignProcessor 活动创建事件处理器
type CampaignProcessor struct {
	engine        *funding.Engine
	campaignLogic *logic.CampaignLogic
}

// NewCampaignProcessor 创建活动事件处理器
func NewCampaignProcessor(engine *funding.Engine, db *gorm.DB) *CampaignProcessor {
	return &CampaignProcessor{
		engine:        engine,
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// Name 处理器名称
func (p *CampaignProcessor) Name() string {
	return "campaign_processor"
}

// Process 处理活动创建事件
func (p *CampaignProcessor) Process(evt funding.Event) error {
	created, ok := evt.(funding.CampaignCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %s", evt.EventName())
	}

	snapshot, err := p.engine.GetCampaign(created.ID)
	if err != nil {
		return fmt.Errorf("活动快照不存在: %w", err)
	}

	if err := p.campaignLogic.SyncCampaign(snapshot); err != nil {
		return err
	}

	logger.Info("Synced created campaign %d (%s)", created.ID, created.Title)
	return nil
}
