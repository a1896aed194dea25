package model

import (
	"time"
)

// RewardBalanceModel EDU 奖励代币余额快照
type RewardBalanceModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address string    `json:"address" gorm:"uniqueIndex;not null"`
	Balance BigAmount `json:"balance"`
}

// TableName 自定义表名
func (RewardBalanceModel) TableName() string {
	return "reward_balance"
}
