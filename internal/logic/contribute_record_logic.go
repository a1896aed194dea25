package logic

import (
	"errors"
	"fmt"

	"github.com/blues/edufund/internal/model"
	"gorm.io/gorm"
)

// ContributeRecordLogic 贡献记录业务逻辑
type ContributeRecordLogic struct {
	db *gorm.DB
}

// NewContributeRecordLogic 创建贡献记录业务逻辑
func NewContributeRecordLogic(db *gorm.DB) *ContributeRecordLogic {
	return &ContributeRecordLogic{db: db}
}

// CreateContributeRecord 创建贡献记录
func (c *ContributeRecordLogic) CreateContributeRecord(record *model.ContributeRecordModel) error {
	if err := c.validateContributeRecord(record); err != nil {
		return err
	}
	if err := c.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建贡献记录失败: %w", err)
	}
	return nil
}

// validateContributeRecord 验证贡献数据
func (c *ContributeRecordLogic) validateContributeRecord(record *model.ContributeRecordModel) error {
	if record.CampaignId < 0 {
		return errors.New("活动ID无效")
	}
	if record.Amount.Int().Sign() <= 0 {
		return errors.New("贡献金额必须大于0")
	}
	if record.Address == "" {
		return errors.New("贡献者地址不能为空")
	}
	return nil
}

// GetCampaignContributeRecords 获取活动贡献记录
func (c *ContributeRecordLogic) GetCampaignContributeRecords(campaignId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var total int64
	if err := c.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录总数失败: %w", err)
	}

	var records []model.ContributeRecordModel
	offset := (page - 1) * pageSize
	if err := c.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	return records, total, nil
}

// GetAccountContributeRecords 获取某账户的全部贡献记录
func (c *ContributeRecordLogic) GetAccountContributeRecords(address string) ([]model.ContributeRecordModel, error) {
	var records []model.ContributeRecordModel
	if err := c.db.Where("address = ?", address).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取账户贡献记录失败: %w", err)
	}
	return records, nil
}

// GetContributeStats 获取活动贡献统计信息
func (c *ContributeRecordLogic) GetContributeStats(campaignId int64) (map[string]interface{}, error) {
	var totalContributions int64
	if err := c.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&totalContributions).Error; err != nil {
		return nil, fmt.Errorf("获取总贡献记录数失败: %w", err)
	}

	var totalAmount string
	if err := c.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount).Error; err != nil {
		return nil, fmt.Errorf("获取总贡献金额失败: %w", err)
	}

	var uniqueContributors int64
	if err := c.db.Model(&model.ContributeRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Distinct("address").
		Count(&uniqueContributors).Error; err != nil {
		return nil, fmt.Errorf("获取唯一贡献者数量失败: %w", err)
	}

	return map[string]interface{}{
		"total_contributions": totalContributions,
		"total_amount":        totalAmount,
		"unique_contributors": uniqueContributors,
	}, nil
}
