package model

import (
	"time"
)

// EventModel 核心引擎事件日志
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"index;not null"`
	EventName  string `json:"event_name" gorm:"not null"`
	Data       string `json:"data" gorm:"type:text"`
	Processed  bool   `json:"processed" gorm:"default:false"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
