package scheduler

import (
	"time"

	"github.com/blues/edufund/internal/config"
	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/logic"
	"github.com/blues/edufund/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignStatusJob 活动状态同步任务
// 把截止时间的流逝和引擎中的定案标志镜像到读模型
type CampaignStatusJob struct {
	engine        *funding.Engine
	campaignLogic *logic.CampaignLogic
	config        *config.Config
}

// NewCampaignStatusJob 创建活动状态同步任务
func NewCampaignStatusJob(db *gorm.DB, engine *funding.Engine, cfg *config.Config) *CampaignStatusJob {
	return &CampaignStatusJob{
		engine:        engine,
		campaignLogic: logic.NewCampaignLogic(db),
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_updater"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	logger.Debug("Starting campaign status sync task")

	now := time.Now()

	campaigns, err := j.campaignLogic.ListByStatus(model.CampaignStatusActive)
	if err != nil {
		logger.Error("Failed to fetch active campaigns: %v", err)
		return
	}

	updatedCount := 0

	for _, campaign := range campaigns {
		snapshot, err := j.engine.GetCampaign(uint64(campaign.CampaignId))
		if err != nil {
			logger.Error("Campaign %d missing from engine: %v", campaign.CampaignId, err)
			continue
		}

		var newStatus model.CampaignStatus
		switch {
		case snapshot.Finalized:
			newStatus = model.CampaignStatusFinalized
		case now.Unix() >= snapshot.Deadline:
			newStatus = model.CampaignStatusEnded
		default:
			continue
		}

		// 同步快照保证累计金额与引擎一致
		if err := j.campaignLogic.SyncCampaign(snapshot); err != nil {
			logger.Error("Failed to sync campaign %d: %v", campaign.CampaignId, err)
			continue
		}
		if err := j.campaignLogic.UpdateStatus(campaign.CampaignId, newStatus); err != nil {
			logger.Error("Failed to update campaign %d status: %v", campaign.CampaignId, err)
			continue
		}

		logger.Info("Updated campaign %d status from %s to %s",
			campaign.CampaignId, campaign.Status, newStatus)
		updatedCount++
	}

	if updatedCount > 0 {
		logger.Info("Campaign status sync completed. Updated %d campaigns", updatedCount)
	}
}
