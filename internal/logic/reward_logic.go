package logic

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/blues/edufund/internal/model"
	"gorm.io/gorm"
)

// RewardLogic 奖励代币余额快照业务逻辑
type RewardLogic struct {
	db *gorm.DB
}

// NewRewardLogic 创建奖励余额业务逻辑
func NewRewardLogic(db *gorm.DB) *RewardLogic {
	return &RewardLogic{db: db}
}

// UpsertBalance 写入某账户的最新代币余额
func (l *RewardLogic) UpsertBalance(address string, balance *big.Int) error {
	var existing model.RewardBalanceModel
	err := l.db.Where("address = ?", address).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record := model.RewardBalanceModel{
			Address: address,
			Balance: model.NewBigAmount(balance),
		}
		if err := l.db.Create(&record).Error; err != nil {
			return fmt.Errorf("创建余额快照失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询余额快照失败: %w", err)
	}

	if err := l.db.Model(&existing).
		Update("balance", model.NewBigAmount(balance)).Error; err != nil {
		return fmt.Errorf("更新余额快照失败: %w", err)
	}
	return nil
}

// GetBalance 查询某账户的代币余额快照，无记录时返回 0
func (l *RewardLogic) GetBalance(address string) (*big.Int, error) {
	var record model.RewardBalanceModel
	err := l.db.Where("address = ?", address).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询余额快照失败: %w", err)
	}
	return record.Balance.Int(), nil
}
