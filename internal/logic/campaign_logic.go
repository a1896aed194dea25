package logic

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/model"
	"gorm.io/gorm"
)

// CampaignLogic 活动读模型业务逻辑
type CampaignLogic struct {
	db *gorm.DB
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db}
}

// SyncCampaign 按引擎快照新建或更新活动读模型
func (l *CampaignLogic) SyncCampaign(snapshot funding.Campaign) error {
	var existing model.CampaignModel
	err := l.db.Where("campaign_id = ?", snapshot.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record := campaignFromSnapshot(snapshot)
		if err := l.db.Create(&record).Error; err != nil {
			return fmt.Errorf("创建活动读模型失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询活动读模型失败: %w", err)
	}

	updates := map[string]interface{}{
		"total_raised": model.NewBigAmount(snapshot.TotalRaised),
		"finalized":    snapshot.Finalized,
	}
	if snapshot.Finalized {
		updates["status"] = model.CampaignStatusFinalized
	}
	if err := l.db.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新活动读模型失败: %w", err)
	}
	return nil
}

// campaignFromSnapshot 引擎快照转读模型
func campaignFromSnapshot(snapshot funding.Campaign) model.CampaignModel {
	status := model.CampaignStatusActive
	if snapshot.Finalized {
		status = model.CampaignStatusFinalized
	}
	return model.CampaignModel{
		CampaignId:     int64(snapshot.ID),
		Title:          snapshot.Title,
		Category:       snapshot.Category.String(),
		CreatorAddress: snapshot.Creator.Hex(),
		FundingGoal:    model.NewBigAmount(snapshot.FundingGoal),
		TotalRaised:    model.NewBigAmount(snapshot.TotalRaised),
		Deadline:       time.Unix(snapshot.Deadline, 0),
		Status:         status,
		Finalized:      snapshot.Finalized,
	}
}

// GetCampaigns 获取活动列表，支持状态、类别、创建者过滤
func (l *CampaignLogic) GetCampaigns(status, category, creator string, page, pageSize int) ([]model.CampaignModel, int64, error) {
	query := l.db.Model(&model.CampaignModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if creator != "" {
		query = query.Where("creator_address = ?", creator)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动总数失败: %w", err)
	}

	var campaigns []model.CampaignModel
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("campaign_id ASC").
		Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return campaigns, total, nil
}

// GetCampaign 按引擎活动 ID 获取读模型
func (l *CampaignLogic) GetCampaign(campaignId int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := l.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("活动不存在")
		}
		return nil, fmt.Errorf("获取活动详情失败: %w", err)
	}
	return &campaign, nil
}

// ListByStatus 按状态列出活动
func (l *CampaignLogic) ListByStatus(status model.CampaignStatus) ([]model.CampaignModel, error) {
	var campaigns []model.CampaignModel
	if err := l.db.Where("status = ?", status).Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("按状态获取活动失败: %w", err)
	}
	return campaigns, nil
}

// UpdateStatus 更新活动状态
func (l *CampaignLogic) UpdateStatus(campaignId int64, status model.CampaignStatus) error {
	result := l.db.Model(&model.CampaignModel{}).
		Where("campaign_id = ?", campaignId).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("更新活动状态失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("活动不存在")
	}
	return nil
}

// GetAllCampaignStats 获取全局统计信息
func (l *CampaignLogic) GetAllCampaignStats() (map[string]interface{}, error) {
	var totalCampaigns int64
	l.db.Model(&model.CampaignModel{}).Count(&totalCampaigns)

	var activeCampaigns int64
	l.db.Model(&model.CampaignModel{}).
		Where("status = ?", model.CampaignStatusActive).
		Count(&activeCampaigns)

	var finalizedCampaigns int64
	l.db.Model(&model.CampaignModel{}).
		Where("status = ?", model.CampaignStatusFinalized).
		Count(&finalizedCampaigns)

	// 总筹集金额，numeric 列直接求和
	var totalRaised string
	if err := l.db.Model(&model.CampaignModel{}).
		Select("COALESCE(SUM(total_raised), 0)").
		Scan(&totalRaised).Error; err != nil {
		return nil, fmt.Errorf("获取总筹集金额失败: %w", err)
	}

	// 总贡献者数量（去重）
	var totalContributors int64
	l.db.Model(&model.ContributeRecordModel{}).
		Distinct("address").
		Count(&totalContributors)

	return map[string]interface{}{
		"totalCampaigns":     totalCampaigns,
		"activeCampaigns":    activeCampaigns,
		"finalizedCampaigns": finalizedCampaigns,
		"totalRaised":        totalRaised,
		"totalContributors":  totalContributors,
	}, nil
}

// GetCampaignStats 获取单个活动的统计信息
func (l *CampaignLogic) GetCampaignStats(campaignId int64) (map[string]interface{}, error) {
	campaign, err := l.GetCampaign(campaignId)
	if err != nil {
		return nil, err
	}

	var contributionCount int64
	if err := l.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&contributionCount).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录数失败: %w", err)
	}

	var contributorCount int64
	if err := l.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Distinct("address").
		Count(&contributorCount).Error; err != nil {
		return nil, fmt.Errorf("获取贡献者数量失败: %w", err)
	}

	// 完成百分比，整数运算
	completion := int64(0)
	goal := campaign.FundingGoal.Int()
	if goal.Sign() > 0 {
		pct := new(big.Int).Mul(campaign.TotalRaised.Int(), big.NewInt(100))
		completion = pct.Div(pct, goal).Int64()
	}

	remaining := time.Duration(0)
	if campaign.Status == model.CampaignStatusActive && time.Now().Before(campaign.Deadline) {
		remaining = time.Until(campaign.Deadline)
	}

	return map[string]interface{}{
		"campaign_id":           campaign.CampaignId,
		"funding_goal":          campaign.FundingGoal.String(),
		"total_raised":          campaign.TotalRaised.String(),
		"completion_percentage": completion,
		"contribution_count":    contributionCount,
		"contributor_count":     contributorCount,
		"remaining_time":        remaining.String(),
		"status":                campaign.Status,
	}, nil
}
