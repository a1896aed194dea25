package event

import (
	"fmt"
	"sync"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/logic"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Processor 事件处理器
type Processor interface {
	Name() string
	Process(evt funding.Event) error
}

// Dispatcher 事件分发器
// 把核心引擎发出的事件写入事件日志，并通过协程池分发给
// 已注册的处理器，驱动读模型更新
type Dispatcher struct {
	mu         sync.RWMutex
	pool       *ants.Pool
	eventLogic *logic.EventLogic
	processors map[string][]Processor
	pending    sync.WaitGroup
}

// NewDispatcher 创建事件分发器
func NewDispatcher(db *gorm.DB, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Dispatcher{
		pool:       pool,
		eventLogic: logic.NewEventLogic(db),
		processors: make(map[string][]Processor),
	}, nil
}

// Register 按事件名注册处理器
func (d *Dispatcher) Register(eventName string, p Processor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.processors[eventName] = append(d.processors[eventName], p)
}

// Dispatch 异步分发一条事件
func (d *Dispatcher) Dispatch(evt funding.Event) {
	d.pending.Add(1)
	err := d.pool.Submit(func() {
		defer d.pending.Done()
		d.handle(evt)
	})
	if err != nil {
		d.pending.Done()
		logger.Error("Failed to submit event %s to pool: %v", evt.EventName(), err)
	}
}

// handle 持久化并处理单条事件
func (d *Dispatcher) handle(evt funding.Event) {
	record, err := d.eventLogic.RecordEvent(evt)
	if err != nil {
		logger.Error("Failed to record event %s: %v", evt.EventName(), err)
		return
	}

	d.mu.RLock()
	processors := d.processors[evt.EventName()]
	d.mu.RUnlock()

	failed := false
	for _, p := range processors {
		if err := p.Process(evt); err != nil {
			logger.Error("Processor %s failed on event %s (campaign %d): %v",
				p.Name(), evt.EventName(), evt.CampaignID(), err)
			failed = true
		}
	}

	if !failed {
		if err := d.eventLogic.MarkProcessed(record.Id); err != nil {
			logger.Error("Failed to mark event %d processed: %v", record.Id, err)
		}
	}

	logger.Debug("Dispatched event %s for campaign %d", evt.EventName(), evt.CampaignID())
}

// Wait 等待所有在途事件处理完成
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Close 停止分发器
func (d *Dispatcher) Close() {
	d.pending.Wait()
	d.pool.Release()
}
