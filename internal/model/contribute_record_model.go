package model

import (
	"time"
)

// ContributeRecordModel 贡献记录，每笔成功结算一行
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64     `json:"campaign_id" gorm:"index;not null"`
	Address    string    `json:"address" gorm:"index;not null"`
	Amount     BigAmount `json:"amount" gorm:"not null"`

	// 拆分结果
	CreatorShare  BigAmount `json:"creator_share"`
	PlatformShare BigAmount `json:"platform_share"`
	RewardMinted  BigAmount `json:"reward_minted"`
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
