package model

import (
	"time"
)

// CampaignModel 众筹活动读模型，镜像引擎中的活动状态
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 引擎分配的活动 ID
	CampaignId int64 `json:"campaign_id" gorm:"uniqueIndex;not null"`

	// 基本信息
	Title          string `json:"title" gorm:"not null"`
	Category       string `json:"category" gorm:"index"`
	CreatorAddress string `json:"creator_address" gorm:"index;not null"`

	// 资金信息，最小货币单位
	FundingGoal BigAmount `json:"funding_goal" gorm:"not null"`
	TotalRaised BigAmount `json:"total_raised"`

	// 时间与状态
	Deadline  time.Time      `json:"deadline" gorm:"not null"`
	Status    CampaignStatus `json:"status" gorm:"default:'active'"`
	Finalized bool           `json:"finalized" gorm:"default:false"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"    // 进行中
	CampaignStatusEnded     CampaignStatus = "ended"     // 已过截止时间
	CampaignStatusFinalized CampaignStatus = "finalized" // 已定案
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
