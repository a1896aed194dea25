package logic

import (
	"encoding/json"
	"fmt"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件日志业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件日志业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// RecordEvent 持久化一条核心引擎事件
func (l *EventLogic) RecordEvent(event funding.Event) (*model.EventModel, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("序列化事件失败: %w", err)
	}

	record := &model.EventModel{
		CampaignId: int64(event.CampaignID()),
		EventName:  event.EventName(),
		Data:       string(data),
	}
	if err := l.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("创建事件记录失败: %w", err)
	}
	return record, nil
}

// MarkProcessed 标记事件已处理
func (l *EventLogic) MarkProcessed(id int64) error {
	if err := l.db.Model(&model.EventModel{}).
		Where("id = ?", id).
		Update("processed", true).Error; err != nil {
		return fmt.Errorf("标记事件已处理失败: %w", err)
	}
	return nil
}

// GetCampaignEvents 获取活动的事件日志
func (l *EventLogic) GetCampaignEvents(campaignId int64) ([]model.EventModel, error) {
	var events []model.EventModel
	if err := l.db.Where("campaign_id = ?", campaignId).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取事件日志失败: %w", err)
	}
	return events, nil
}
